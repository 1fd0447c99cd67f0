package schema

import (
	domain "user-api/internal/domain/user"
	"user-api/internal/openapi"
)

// DeletedMessage is the confirmation returned by a successful delete.
const DeletedMessage = "User deleted successfully"

// UserOutput is the public representation of a user.
type UserOutput struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewUserOutput maps a domain user onto its response shape.
func NewUserOutput(u domain.User) UserOutput {
	return UserOutput{ID: u.ID, Email: u.Email, Name: u.Name}
}

// UserOutputSchema describes UserOutput.
func UserOutputSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":    {Type: "integer", Format: "int64", Minimum: 1, Example: 1},
			"email": {Type: "string", Format: "email", Example: "a@b.com"},
			"name":  {Type: "string", MinLength: 1, Example: "A"},
		},
		Required: []string{"id", "email", "name"},
	}
}

// ErrorOutput is the body of every error response.
type ErrorOutput struct {
	Error string `json:"error"`
}

// ErrorOutputSchema describes ErrorOutput.
func ErrorOutputSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"error": {Type: "string", Example: "user not found"},
		},
		Required: []string{"error"},
	}
}

// DeleteOutput confirms a delete and carries the removed record.
type DeleteOutput struct {
	Message string     `json:"message"`
	User    UserOutput `json:"user"`
}

// NewDeleteOutput builds the confirmation for the deleted user.
func NewDeleteOutput(u domain.User) DeleteOutput {
	return DeleteOutput{Message: DeletedMessage, User: NewUserOutput(u)}
}

// DeleteOutputSchema describes DeleteOutput.
func DeleteOutputSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"message": {Type: "string", Example: DeletedMessage},
			"user":    openapi.Ref(UserComponent),
		},
		Required: []string{"message", "user"},
	}
}
