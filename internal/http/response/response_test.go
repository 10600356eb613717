package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	resp := OK()

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestStatusOKWithData(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := StatusOKWithData(data)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, data, resp.Data)
}

func TestError(t *testing.T) {
	msg := "something went wrong"
	resp := Error(msg)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, msg, resp.Error)
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Email    string  `validate:"required,email"`
		Password string  `validate:"min=8"`
		Budget   float64 `validate:"gte=0"`
		Category string  `validate:"oneof=transport food"`
	}

	v := validator.New()
	ts := TestStruct{
		Email:    "not-an-email",
		Password: "short",
		Budget:   -1,
		Category: "nightlife",
	}

	err := v.Struct(ts)
	require.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Password is too short")
	assert.Contains(t, resp.Error, "field Budget must not be negative")
	assert.Contains(t, resp.Error, "field Category must be one of the allowed values")
}

func TestValidationErrorRequired(t *testing.T) {
	type TestStruct struct {
		Name string `validate:"required"`
	}

	v := validator.New()
	ts := TestStruct{}

	err := v.Struct(ts)
	require.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Name is a required field")
}

func TestValidationErrorUnknownTag(t *testing.T) {
	type TestStruct struct {
		Name string `validate:"alphanum"`
	}

	v := validator.New()
	ts := TestStruct{Name: "!!!"}

	err := v.Struct(ts)
	require.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Name is not a valid")
}

func TestViolations(t *testing.T) {
	resp := Violations([]string{
		`day key "bad-key" is not a date in format 2006-01-02`,
		`start date "01-09-2026" is not a date in format 2006-01-02`,
	})

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "bad-key")
	assert.Contains(t, resp.Error, "start date")
	assert.Contains(t, resp.Error, ", ")
}
