package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// messages maps a failed validation tag to the client-facing text. Tags
// missing from the map fall back to the "required" message.
type messages map[string]string

// check validates in and folds the first failure into a *ValidationError.
// A missing field is reported ahead of a malformed one.
func check(in any, msgs messages) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	fe := ves[0]
	for _, e := range ves {
		if e.Tag() == "required" {
			fe = e
			break
		}
	}

	msg, ok := msgs[fe.Tag()]
	if !ok {
		msg = msgs["required"]
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
