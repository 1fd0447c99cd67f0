package user

// CreateUserRequest carries an already validated create payload.
type CreateUserRequest struct {
	Name  string
	Email string
}

// UpdateUserRequest carries an already validated partial update.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	ID    int64
	Name  *string
	Email *string
}

// GetUserRequest identifies the user to fetch.
type GetUserRequest struct {
	ID int64
}

// DeleteUserRequest identifies the user to delete.
type DeleteUserRequest struct {
	ID int64
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
}
