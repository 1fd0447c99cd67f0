// Package schema defines the accepted request shapes and the emitted response
// shapes of the user API. Every input schema has an explicit validation
// function; every schema describes itself for the OpenAPI document.
package schema

import (
	"github.com/go-playground/validator/v10"

	"user-api/internal/openapi"
)

// Component names used under #/components/schemas.
const (
	UserComponent       = "User"
	CreateUserComponent = "CreateUser"
	UpdateUserComponent = "UpdateUser"
	ErrorComponent      = "Error"
	DeleteComponent     = "DeleteUserResponse"
)

// validate is only used for single-value checks, never for struct tags.
var validate = validator.New()

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func isNonEmpty(s string) bool {
	return validate.Var(s, "required") == nil
}

// Components returns every schema the API publishes, keyed by component name.
func Components() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		UserComponent:       UserOutputSchema(),
		CreateUserComponent: CreateUserInputSchema(),
		UpdateUserComponent: UpdateUserInputSchema(),
		ErrorComponent:      ErrorOutputSchema(),
		DeleteComponent:     DeleteOutputSchema(),
	}
}
