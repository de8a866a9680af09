// Package handler contains the HTTP handlers. Handlers translate requests
// into validator/store/merger calls and map domain errors onto HTTP
// statuses; they never touch SQL directly.
package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user's id placed into the context by
// the JWT middleware. JWT numbers decode as float64; some clients send the
// subject as a string.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	case uint64:
		return v, nil
	default:
		return 0, errors.New("no user in context")
	}
}

func getRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// Validator adapts go-playground/validator to echo's Validator interface.
// Field names in error messages come from json tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the request-body validator used by echo's c.Validate.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
