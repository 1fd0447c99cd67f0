// Package route declares the user API operations as metadata. The same
// definitions drive request dispatch and OpenAPI document generation.
package route

import (
	"net/http"
	"strings"

	"user-api/internal/openapi"
	"user-api/internal/schema"
)

const userTag = "Users"

// Response documents one possible outcome of an operation.
type Response struct {
	Status      int
	Description string
	Schema      *openapi.Schema
	ContentType string // defaults to application/json
}

// Definition binds a method and path to the schemas validating its input and
// describing its output.
type Definition struct {
	Method        string
	Path          string // OpenAPI form, e.g. /users/{id}
	OperationID   string
	Summary       string
	Tags          []string
	PathParams    []openapi.Parameter
	Body          *openapi.Schema
	SuccessStatus int
	Responses     []Response
}

// GinPath converts {param} segments into the :param form used by gin.
func (d Definition) GinPath() string {
	segments := strings.Split(d.Path, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			segments[i] = ":" + s[1:len(s)-1]
		}
	}
	return strings.Join(segments, "/")
}

var (
	userResponse     = openapi.Ref(schema.UserComponent)
	errorResponse    = openapi.Ref(schema.ErrorComponent)
	validationFailed = Response{Status: http.StatusBadRequest, Description: "Validation error", Schema: errorResponse}
	userNotFound     = Response{Status: http.StatusNotFound, Description: "User not found", Schema: errorResponse}
	emailTaken       = Response{Status: http.StatusConflict, Description: "Email already exists", Schema: errorResponse}
	internalError    = Response{Status: http.StatusInternalServerError, Description: "Internal server error", Schema: errorResponse}
)

// Root answers with a plain-text greeting.
var Root = Definition{
	Method:        http.MethodGet,
	Path:          "/",
	OperationID:   "getRoot",
	Summary:       "Greeting",
	SuccessStatus: http.StatusOK,
	Responses: []Response{
		{Status: http.StatusOK, Description: "Greeting text", Schema: &openapi.Schema{Type: "string"}, ContentType: "text/plain"},
	},
}

// ListUsers returns every user.
var ListUsers = Definition{
	Method:        http.MethodGet,
	Path:          "/users",
	OperationID:   "listUsers",
	Summary:       "List all users",
	Tags:          []string{userTag},
	SuccessStatus: http.StatusOK,
	Responses: []Response{
		{Status: http.StatusOK, Description: "All users", Schema: openapi.ArrayOf(userResponse)},
		internalError,
	},
}

// CreateUser inserts a new user.
var CreateUser = Definition{
	Method:        http.MethodPost,
	Path:          "/users",
	OperationID:   "createUser",
	Summary:       "Create a user",
	Tags:          []string{userTag},
	Body:          openapi.Ref(schema.CreateUserComponent),
	SuccessStatus: http.StatusCreated,
	Responses: []Response{
		{Status: http.StatusCreated, Description: "User created", Schema: userResponse},
		validationFailed,
		emailTaken,
		internalError,
	},
}

// GetUser fetches a user by id.
var GetUser = Definition{
	Method:        http.MethodGet,
	Path:          "/users/{id}",
	OperationID:   "getUser",
	Summary:       "Get a user by id",
	Tags:          []string{userTag},
	PathParams:    []openapi.Parameter{schema.IdentifierParameter()},
	SuccessStatus: http.StatusOK,
	Responses: []Response{
		{Status: http.StatusOK, Description: "The user", Schema: userResponse},
		validationFailed,
		userNotFound,
		internalError,
	},
}

// UpdateUser partially updates a user.
var UpdateUser = Definition{
	Method:        http.MethodPut,
	Path:          "/users/{id}",
	OperationID:   "updateUser",
	Summary:       "Update a user by id",
	Tags:          []string{userTag},
	PathParams:    []openapi.Parameter{schema.IdentifierParameter()},
	Body:          openapi.Ref(schema.UpdateUserComponent),
	SuccessStatus: http.StatusOK,
	Responses: []Response{
		{Status: http.StatusOK, Description: "The updated user", Schema: userResponse},
		validationFailed,
		userNotFound,
		emailTaken,
		internalError,
	},
}

// DeleteUser removes a user and returns its last state.
var DeleteUser = Definition{
	Method:        http.MethodDelete,
	Path:          "/users/{id}",
	OperationID:   "deleteUser",
	Summary:       "Delete a user by id",
	Tags:          []string{userTag},
	PathParams:    []openapi.Parameter{schema.IdentifierParameter()},
	SuccessStatus: http.StatusOK,
	Responses: []Response{
		{Status: http.StatusOK, Description: "User deleted", Schema: openapi.Ref(schema.DeleteComponent)},
		validationFailed,
		userNotFound,
		internalError,
	},
}

// Users lists the user operations in documentation order.
func Users() []Definition {
	return []Definition{ListUsers, CreateUser, GetUser, UpdateUser, DeleteUser}
}

// All lists every documented operation: the root greeting followed by Users.
func All() []Definition {
	return append([]Definition{Root}, Users()...)
}
