package cached

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-api/internal/adapter/cache"
	domain "user-api/internal/domain/user"
	apperrors "user-api/pkg/errors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, p domain.Patch) (*domain.User, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setup(t *testing.T) (*UserRepository, *MockRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	dbRepo := new(MockRepository)
	repo := NewUserRepository(dbRepo, cache.NewRedisUserCache(client, time.Minute, log), log)
	return repo, dbRepo, mr
}

func TestGetByID_ReadsDatabaseOnceThenCache(t *testing.T) {
	repo, dbRepo, mr := setup(t)
	ctx := context.Background()

	stored := &domain.User{ID: 1, Name: "A", Email: "a@b.com"}
	dbRepo.On("GetByID", ctx, int64(1)).Return(stored, nil).Once()

	first, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, stored, first)
	assert.Equal(t, stored, second)
	assert.True(t, mr.Exists(cache.Key(1)))
	dbRepo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetByID_NotFoundIsNotCached(t *testing.T) {
	repo, dbRepo, mr := setup(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, int64(7)).Return(nil, apperrors.NewNotFoundError("user", ""))

	_, err := repo.GetByID(ctx, 7)
	assert.Error(t, err)
	assert.False(t, mr.Exists(cache.Key(7)))
}

func TestGetByID_FallsBackWhenRedisIsDown(t *testing.T) {
	repo, dbRepo, mr := setup(t)
	ctx := context.Background()
	mr.Close()

	stored := &domain.User{ID: 1, Name: "A", Email: "a@b.com"}
	dbRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo, dbRepo, mr := setup(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Name: "A", Email: "a@b.com"}, nil).Once()
	_, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.Key(1)))

	name := "B"
	dbRepo.On("Update", ctx, int64(1), domain.Patch{Name: &name}).
		Return(&domain.User{ID: 1, Name: "B", Email: "a@b.com"}, nil)

	updated, err := repo.Update(ctx, 1, domain.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Name)
	assert.False(t, mr.Exists(cache.Key(1)))
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo, dbRepo, mr := setup(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(cache.Key(1), `{"id":1,"name":"A","email":"a@b.com"}`))
	dbRepo.On("Delete", ctx, int64(1)).Return(&domain.User{ID: 1, Name: "A", Email: "a@b.com"}, nil)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.ID)
	assert.False(t, mr.Exists(cache.Key(1)))
}

func TestDelete_FailureKeepsCache(t *testing.T) {
	repo, dbRepo, mr := setup(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(cache.Key(1), `{"id":1,"name":"A","email":"a@b.com"}`))
	dbRepo.On("Delete", ctx, int64(1)).Return(nil, assert.AnError)

	_, err := repo.Delete(ctx, 1)
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, mr.Exists(cache.Key(1)))
}
