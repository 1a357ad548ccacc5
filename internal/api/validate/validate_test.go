package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("username", "bob"))
	assert.NotNil(t, Required("username", ""))
	assert.NotNil(t, Required("username", "   "))
}

func TestMinLen(t *testing.T) {
	assert.Nil(t, MinLen("password", "secret", 6))
	assert.NotNil(t, MinLen("password", "short", 6))
	assert.NotNil(t, MinLen("username", "  ab  ", 3))
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("email", "test@example.com"))
	assert.NotNil(t, Email("email", "example.com"))
	assert.NotNil(t, Email("email", "test@example"))
	assert.NotNil(t, Email("email", "te st@example.com"))
}

func TestErrsError(t *testing.T) {
	errs := Errs{{Field: "a", Msg: "required"}, {Field: "b", Msg: "invalid email"}}
	assert.Equal(t, "a: required; b: invalid email", errs.Error())
}
