package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "user-api/internal/domain/user"
	apperrors "user-api/pkg/errors"
	"user-api/pkg/logger"
)

// Repository defines the interface for user data access operations.
// Lookups of a missing id return *errors.NotFoundError; unique email
// violations return *errors.AlreadyExistsError.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)          // Insert and return the stored user
	GetByID(ctx context.Context, id int64) (*domain.User, error)               // Retrieve user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error)        // Retrieve user by email, nil when absent
	Update(ctx context.Context, id int64, p domain.Patch) (*domain.User, error) // Apply a partial update
	Delete(ctx context.Context, id int64) (*domain.User, error)                // Delete and return the prior record
	List(ctx context.Context) ([]domain.User, error)                           // All users ordered by ID
	Ping(ctx context.Context) error                                            // Datastore liveness
}

// errEmailTaken is returned whenever another user already owns the email.
var errEmailTaken = apperrors.NewAlreadyExistsError("user", "email already exists")

// Usecase orchestrates datastore calls for the user API. Inputs are
// validated by the schema layer before they get here.
type Usecase struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

var _ UserUsecase = (*Usecase)(nil)

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log}
}

// CreateUser creates a new user after checking email uniqueness.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	u, err := uc.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	return toDTO(u), nil
}

// UpdateUser applies a partial update. When the email changes the user must
// exist and the new email must not belong to anyone else.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user", zap.Int64("id", in.ID))

	patch := domain.Patch{Name: in.Name, Email: in.Email}
	if patch.Empty() {
		return nil, apperrors.NewValidationError("", "at least one of email or name must be provided")
	}

	if in.Email != nil {
		// An unknown id is reported before any email conflict.
		if _, err := uc.repo.GetByID(ctx, in.ID); err != nil {
			logFailure(log, "failed to update user", in.ID, err)
			return nil, err
		}
		if err := uc.ensureEmailFree(ctx, *in.Email, in.ID); err != nil {
			return nil, err
		}
	}

	u, err := uc.repo.Update(ctx, in.ID, patch)
	if err != nil {
		logFailure(log, "failed to update user", in.ID, err)
		return nil, err
	}
	return toDTO(u), nil
}

// DeleteUser deletes a user and returns the record as it was before deletion.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.Int64("id", in.ID))

	u, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		logFailure(log, "failed to delete user", in.ID, err)
		return nil, err
	}
	return toDTO(u), nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		logFailure(logger.WithContext(ctx, uc.log), "failed to get user", in.ID, err)
		return nil, err
	}
	return toDTO(u), nil
}

// ListUsers retrieves every user.
func (uc *Usecase) ListUsers(ctx context.Context) ([]User, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = *toDTO(&du)
	}
	return users, nil
}

// ensureEmailFree fails when a user other than ownerID already has the email.
// The unique index still has the final say when two requests race.
func (uc *Usecase) ensureEmailFree(ctx context.Context, email string, ownerID int64) error {
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", email), zap.Error(err))
		return apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil && existing.ID != ownerID {
		uc.log.Warn("email already exists", zap.String("email", email), zap.Int64("existing_id", existing.ID))
		return errEmailTaken
	}
	return nil
}

// logFailure keeps expected outcomes (missing ids, conflicts) out of the error log.
func logFailure(log *zap.Logger, msg string, id int64, err error) {
	var notFound *apperrors.NotFoundError
	var exists *apperrors.AlreadyExistsError
	if errors.As(err, &notFound) || errors.As(err, &exists) {
		log.Warn(msg, zap.Int64("id", id), zap.Error(err))
		return
	}
	log.Error(msg, zap.Int64("id", id), zap.Error(err))
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
