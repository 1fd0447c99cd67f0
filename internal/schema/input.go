package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"user-api/internal/openapi"
	apperrors "user-api/pkg/errors"
)

// Identifier is the validated {id} path parameter.
type Identifier struct {
	ID int64
}

// ParseIdentifier coerces a path segment into a positive integer id.
func ParseIdentifier(raw string) (Identifier, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Identifier{}, apperrors.NewValidationError("id", "must be an integer")
	}
	if id <= 0 {
		return Identifier{}, apperrors.NewValidationError("id", "must be a positive integer")
	}
	return Identifier{ID: id}, nil
}

// IdentifierParameter documents the {id} path parameter.
func IdentifierParameter() openapi.Parameter {
	return openapi.Parameter{
		Name:        "id",
		In:          "path",
		Description: "User identifier",
		Required:    true,
		Schema:      &openapi.Schema{Type: "integer", Format: "int64", Minimum: 1},
		Example:     1,
	}
}

// CreateUserInput is the body of a create request.
type CreateUserInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate checks every field and reports all failures at once.
func (in CreateUserInput) Validate() error {
	verr := &apperrors.ValidationError{}
	if in.Email == "" {
		verr.Add("email", "is required")
	} else if !isEmail(in.Email) {
		verr.Add("email", "must be a valid email")
	}
	if !isNonEmpty(in.Name) {
		verr.Add("name", "is required")
	}
	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}

// CreateUserInputSchema describes CreateUserInput.
func CreateUserInputSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"email": {Type: "string", Format: "email", Example: "a@b.com"},
			"name":  {Type: "string", MinLength: 1, Example: "A"},
		},
		Required: []string{"email", "name"},
	}
}

// UpdateUserInput is the body of a partial update. Nil means absent.
type UpdateUserInput struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// Validate checks the supplied fields and rejects an update that changes nothing.
func (in UpdateUserInput) Validate() error {
	verr := &apperrors.ValidationError{}
	if in.Email == nil && in.Name == nil {
		verr.Add("", "at least one of email or name must be provided")
		return verr
	}
	if in.Email != nil && !isEmail(*in.Email) {
		verr.Add("email", "must be a valid email")
	}
	if in.Name != nil && !isNonEmpty(*in.Name) {
		verr.Add("name", "must not be empty")
	}
	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}

// UpdateUserInputSchema describes UpdateUserInput.
func UpdateUserInputSchema() *openapi.Schema {
	return &openapi.Schema{
		Type:        "object",
		Description: "At least one of email or name must be present",
		Properties: map[string]*openapi.Schema{
			"email": {Type: "string", Format: "email", Example: "a@b.com"},
			"name":  {Type: "string", MinLength: 1, Example: "B"},
		},
		MinProperties: 1,
	}
}

// UpdateUserParams combines the path id and the update body.
type UpdateUserParams struct {
	Identifier
	Input UpdateUserInput
}

// Validator is implemented by every body schema.
type Validator interface {
	Validate() error
}

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 1 << 20

// DecodeBody decodes a JSON object from r into T and validates it.
// Keys match T's JSON names exactly; any other key is ignored.
func DecodeBody[T Validator](r io.Reader) (T, error) {
	var in T
	if r == nil {
		return in, apperrors.NewValidationError("", "request body must be a JSON object")
	}
	raw, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return in, apperrors.NewValidationError("", "unable to read request body")
	}
	if len(raw) > MaxBodyBytes {
		return in, apperrors.NewValidationError("", "request body too large")
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return in, apperrors.NewValidationError("", "request body must be a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return in, apperrors.NewValidationError("", "request body must be valid JSON")
	}
	known, err := jsonKeys[T]()
	if err != nil {
		return in, apperrors.NewInternalError("failed to inspect request schema", err)
	}
	for k := range fields {
		if _, ok := known[k]; !ok {
			delete(fields, k)
		}
	}
	exact, err := json.Marshal(fields)
	if err != nil {
		return in, apperrors.NewValidationError("", "request body must be valid JSON")
	}

	if err := json.Unmarshal(exact, &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return in, apperrors.NewValidationError(typeErr.Field, "must be a "+typeErr.Type.String())
		}
		return in, apperrors.NewValidationError("", "request body must be valid JSON")
	}
	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}

// jsonKeys lists the keys T marshals to. Input types carry no omitempty tags,
// so the zero value names every field.
func jsonKeys[T any]() (map[string]struct{}, error) {
	var zero T
	b, err := json.Marshal(zero)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(m))
	for k := range m {
		keys[k] = struct{}{}
	}
	return keys, nil
}
