package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-api/internal/domain/user"
	apperrors "user-api/pkg/errors"
)

// UserRepoPG implements the user Repository with GORM. Despite the package
// name it runs against any GORM dialect; postgres is the production target.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null;uniqueIndex"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{ID: m.ID, Name: m.Name, Email: m.Email}
}

func notFound(id int64) error {
	return apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
}

// isUniqueViolation recognises duplicate key errors from postgres and sqlite,
// with or without GORM error translation enabled.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// Create inserts a new user and returns it with its assigned id.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("duplicate email on insert", zap.String("email", u.Email))
			return nil, apperrors.NewAlreadyExistsError("user", "email already exists")
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Update applies the non-nil patch fields to an existing user.
func (r *UserRepoPG) Update(ctx context.Context, id int64, p user.Patch) (*user.User, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}

		changes := map[string]any{}
		if p.Name != nil {
			model.Name = *p.Name
			changes["name"] = model.Name
		}
		if p.Email != nil {
			model.Email = *p.Email
			changes["email"] = model.Email
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&UserSchema{ID: id}).Updates(changes).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, notFound(id)
		case isUniqueViolation(err):
			r.log.Warn("duplicate email on update", zap.Int64("id", id))
			return nil, apperrors.NewAlreadyExistsError("user", "email already exists")
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	r.log.Info("user updated in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Delete removes a user and returns the record as it was before removal.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}
		res := tx.Delete(&UserSchema{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, notFound(id)
		}
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return model.toDomain(), nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, notFound(id)
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}

// GetByEmail retrieves a user by email address. A missing user is (nil, nil).
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toDomain(), nil
}

// List retrieves every user ordered by id.
func (r *UserRepoPG) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}

	return users, nil
}

// Ping checks that the database is reachable.
func (r *UserRepoPG) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
