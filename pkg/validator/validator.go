package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks the `validate` tags of s and joins every failure into one error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", e.Field(), e.Tag(), e.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
