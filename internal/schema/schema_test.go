package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-api/internal/domain/user"
	apperrors "user-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr string
	}{
		{name: "positive", raw: "42", want: 42},
		{name: "zero", raw: "0", wantErr: "id must be a positive integer"},
		{name: "negative", raw: "-3", wantErr: "id must be a positive integer"},
		{name: "not a number", raw: "abc", wantErr: "id must be an integer"},
		{name: "fraction", raw: "1.5", wantErr: "id must be an integer"},
		{name: "overflow", raw: "99999999999999999999", wantErr: "id must be an integer"},
		{name: "empty", raw: "", wantErr: "id must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentifier(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				var verr *apperrors.ValidationError
				assert.True(t, errors.As(err, &verr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestCreateUserInput_Validate(t *testing.T) {
	tests := []struct {
		name     string
		in       CreateUserInput
		wantErrs []string
	}{
		{name: "valid", in: CreateUserInput{Email: "a@b.com", Name: "A"}},
		{name: "missing email", in: CreateUserInput{Name: "A"}, wantErrs: []string{"email is required"}},
		{name: "invalid email", in: CreateUserInput{Email: "not-an-email", Name: "A"}, wantErrs: []string{"email must be a valid email"}},
		{name: "missing name", in: CreateUserInput{Email: "a@b.com"}, wantErrs: []string{"name is required"}},
		{
			name:     "everything wrong",
			in:       CreateUserInput{Email: "nope"},
			wantErrs: []string{"email must be a valid email", "name is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErrs {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestUpdateUserInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      UpdateUserInput
		wantErr string
	}{
		{name: "name only", in: UpdateUserInput{Name: strPtr("B")}},
		{name: "email only", in: UpdateUserInput{Email: strPtr("b@c.com")}},
		{name: "both", in: UpdateUserInput{Email: strPtr("b@c.com"), Name: strPtr("B")}},
		{name: "neither", in: UpdateUserInput{}, wantErr: "at least one of email or name must be provided"},
		{name: "empty name", in: UpdateUserInput{Name: strPtr("")}, wantErr: "name must not be empty"},
		{name: "bad email", in: UpdateUserInput{Email: strPtr("x")}, wantErr: "email must be a valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeBody(t *testing.T) {
	t.Run("valid create with unknown keys", func(t *testing.T) {
		in, err := DecodeBody[CreateUserInput](strings.NewReader(`{"email":"a@b.com","name":"A","role":"admin"}`))
		require.NoError(t, err)
		assert.Equal(t, CreateUserInput{Email: "a@b.com", Name: "A"}, in)
	})

	t.Run("null fields count as absent", func(t *testing.T) {
		_, err := DecodeBody[UpdateUserInput](strings.NewReader(`{"email":null,"name":null}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one of email or name")
	})

	t.Run("partial update keeps absent fields nil", func(t *testing.T) {
		in, err := DecodeBody[UpdateUserInput](strings.NewReader(`{"name":"B"}`))
		require.NoError(t, err)
		require.NotNil(t, in.Name)
		assert.Equal(t, "B", *in.Name)
		assert.Nil(t, in.Email)
	})

	t.Run("wrong field type", func(t *testing.T) {
		_, err := DecodeBody[CreateUserInput](strings.NewReader(`{"email":"a@b.com","name":7}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name must be a string")
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := DecodeBody[CreateUserInput](strings.NewReader(`["a@b.com"]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request body must be a JSON object")
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := DecodeBody[CreateUserInput](strings.NewReader(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request body must be a JSON object")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeBody[CreateUserInput](strings.NewReader(`{"email":`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request body must be valid JSON")
	})

	t.Run("keys are case sensitive", func(t *testing.T) {
		_, err := DecodeBody[CreateUserInput](strings.NewReader(`{"EMAIL":"x@y.com","name":"A"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email is required")

		in, err := DecodeBody[UpdateUserInput](strings.NewReader(`{"Name":"Z","email":"x@y.com"}`))
		require.NoError(t, err)
		assert.Nil(t, in.Name)
		require.NotNil(t, in.Email)
		assert.Equal(t, "x@y.com", *in.Email)
	})

	t.Run("body too large", func(t *testing.T) {
		body := `{"email":"a@b.com","name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
		_, err := DecodeBody[CreateUserInput](strings.NewReader(body))
		require.Error(t, err)
		var verr *apperrors.ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Contains(t, err.Error(), "request body too large")
	})
}

func TestOutputs(t *testing.T) {
	u := domain.User{ID: 1, Email: "a@b.com", Name: "B"}

	assert.Equal(t, UserOutput{ID: 1, Email: "a@b.com", Name: "B"}, NewUserOutput(u))

	del := NewDeleteOutput(u)
	assert.Equal(t, DeletedMessage, del.Message)
	assert.Equal(t, int64(1), del.User.ID)
}

func TestComponents(t *testing.T) {
	components := Components()

	require.Len(t, components, 5)
	assert.ElementsMatch(t, []string{"id", "email", "name"}, components[UserComponent].Required)
	assert.ElementsMatch(t, []string{"email", "name"}, components[CreateUserComponent].Required)
	assert.Equal(t, 1, components[UpdateUserComponent].MinProperties)
	assert.Equal(t, "#/components/schemas/User", components[DeleteComponent].Properties["user"].Ref)
}
