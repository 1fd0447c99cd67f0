package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-api/internal/domain/user"
	apperrors "user-api/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// every pooled connection would otherwise get its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&UserSchema{}))
	return db
}

func setupRepo(t *testing.T) *UserRepoPG {
	return NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
}

func strPtr(s string) *string { return &s }

func TestUserRepoPG_CreateAssignsIncreasingIDs(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &user.User{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &user.User{Name: "C", Email: "c@d.com"})
	require.NoError(t, err)

	assert.Positive(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, "A", first.Name)
	assert.Equal(t, "a@b.com", first.Email)
}

func TestUserRepoPG_CreateNil(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Create(context.Background(), nil)
	assert.EqualError(t, err, "user cannot be nil")
}

func TestUserRepoPG_CreateDuplicateEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &user.User{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &user.User{Name: "Other", Email: "a@b.com"})
	require.Error(t, err)
	var exists *apperrors.AlreadyExistsError
	assert.True(t, errors.As(err, &exists), "got %v", err)
}

func TestUserRepoPG_GetByID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &user.User{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetByID(ctx, created.ID+100)
	var notFound *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestUserRepoPG_GetByEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &user.User{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@b.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepoPG_UpdatePartial(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &user.User{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, user.Patch{Name: strPtr("B")})
	require.NoError(t, err)
	assert.Equal(t, &user.User{ID: created.ID, Name: "B", Email: "a@b.com"}, updated)

	updated, err = repo.Update(ctx, created.ID, user.Patch{Email: strPtr("b@b.com")})
	require.NoError(t, err)
	assert.Equal(t, &user.User{ID: created.ID, Name: "B", Email: "b@b.com"}, updated)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUserRepoPG_UpdateMissing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Update(context.Background(), 42, user.Patch{Name: strPtr("B")})
	var notFound *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestUserRepoPG_UpdateDuplicateEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &user.User{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)
	other, err := repo.Create(ctx, &user.User{Name: "C", Email: "c@d.com"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, other.ID, user.Patch{Email: strPtr("a@b.com")})
	var exists *apperrors.AlreadyExistsError
	assert.True(t, errors.As(err, &exists), "got %v", err)
}

func TestUserRepoPG_DeleteReturnsPriorRecordOnce(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &user.User{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = repo.Delete(ctx, created.ID)
	var notFound *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))

	_, err = repo.GetByID(ctx, created.ID)
	assert.True(t, errors.As(err, &notFound))
}

func TestUserRepoPG_ListOrderedByID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, u := range []user.User{
		{Name: "John Doe", Email: "john@example.com"},
		{Name: "Jane Smith", Email: "jane@example.com"},
		{Name: "Admin", Email: "admin@example.com"},
	} {
		_, err := repo.Create(ctx, &u)
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "john@example.com", users[0].Email)
	assert.Less(t, users[0].ID, users[1].ID)
	assert.Less(t, users[1].ID, users[2].ID)
}

func TestUserRepoPG_Ping(t *testing.T) {
	assert.NoError(t, setupRepo(t).Ping(context.Background()))
}
