package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

type signupForm struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

func TestValidateOK(t *testing.T) {
	v := New()

	err := v.Validate(signupForm{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(signupForm{Username: "al", Email: "nope", Password: ""})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "username")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Equal(t, "is required", details["password"])
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(signupForm{Username: "alice", Email: "bad", Password: "secret1"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))

	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must be a valid email address", details["email"])
}
