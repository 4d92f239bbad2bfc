// internal/models/validation.go
package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report field names the way clients send them
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct validates v and folds every field violation into one error.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}

	var errs *multierror.Error
	for _, fe := range valErrs {
		msg := strings.TrimSpace(fmt.Sprintf("%s %s", fe.Tag(), fe.Param()))
		errs = multierror.Append(errs, fmt.Errorf("%s: %s", fe.Field(), msg))
	}
	return errs.ErrorOrNil()
}
