package user

import "context"

// UserUsecase defines the interface for user business logic operations.
type UserUsecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*User, error)
	GetUser(ctx context.Context, in GetUserRequest) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}
