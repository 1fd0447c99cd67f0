package handler

import (
	"context"

	"go.uber.org/zap"

	domain "user-api/internal/domain/user"
	"user-api/internal/schema"
	"user-api/internal/usecase/user"
	"user-api/pkg/logger"
)

// UserHandler implements one typed handler per user operation. Inputs arrive
// already validated by the schema layer.
type UserHandler struct {
	uc  user.UserUsecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

func toOutput(u *user.User) schema.UserOutput {
	return schema.NewUserOutput(domain.User{ID: u.ID, Name: u.Name, Email: u.Email})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(ctx context.Context, _ struct{}) ([]schema.UserOutput, error) {
	users, err := h.uc.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]schema.UserOutput, len(users))
	for i := range users {
		out[i] = toOutput(&users[i])
	}
	return out, nil
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(ctx context.Context, in schema.CreateUserInput) (schema.UserOutput, error) {
	logger.WithContext(ctx, h.log).Debug("create user request", zap.String("email", in.Email))

	u, err := h.uc.CreateUser(ctx, user.CreateUserRequest{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		return schema.UserOutput{}, err
	}
	return toOutput(u), nil
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(ctx context.Context, in schema.Identifier) (schema.UserOutput, error) {
	u, err := h.uc.GetUser(ctx, user.GetUserRequest{ID: in.ID})
	if err != nil {
		return schema.UserOutput{}, err
	}
	return toOutput(u), nil
}

// UpdateUser handles PUT /users/{id}
func (h *UserHandler) UpdateUser(ctx context.Context, in schema.UpdateUserParams) (schema.UserOutput, error) {
	logger.WithContext(ctx, h.log).Debug("update user request", zap.Int64("id", in.ID))

	u, err := h.uc.UpdateUser(ctx, user.UpdateUserRequest{
		ID:    in.ID,
		Name:  in.Input.Name,
		Email: in.Input.Email,
	})
	if err != nil {
		return schema.UserOutput{}, err
	}
	return toOutput(u), nil
}

// DeleteUser handles DELETE /users/{id}
func (h *UserHandler) DeleteUser(ctx context.Context, in schema.Identifier) (schema.DeleteOutput, error) {
	u, err := h.uc.DeleteUser(ctx, user.DeleteUserRequest{ID: in.ID})
	if err != nil {
		return schema.DeleteOutput{}, err
	}
	return schema.NewDeleteOutput(domain.User{ID: u.ID, Name: u.Name, Email: u.Email}), nil
}
