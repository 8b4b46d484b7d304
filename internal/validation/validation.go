package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the shared validator instance. Custom tags are registered once at
// package init.
var v *validator.Validate

func init() {
	v = validator.New()

	// Report failures under the json field name, matching the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister("fileext", func(fl validator.FieldLevel) bool {
		return ExtensionAllowed(fl.Field().String())
	})
	mustRegister("checksum", func(fl validator.FieldLevel) bool {
		return ValidChecksum(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Struct runs the declarative tag rules on a DTO and converts the result into
// a failure list. It is the first stage of every DTO's validation pipeline.
func Struct(s any) Failures {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: the caller handed us something that is not
		// a struct. Surface it as a single failure rather than panicking.
		return Failures{{Fields: []string{""}, Message: err.Error()}}
	}

	var failures Failures
	for _, fe := range verrs {
		failures.Add(messageFor(fe), fe.Field())
	}
	return failures
}

// Pipeline evaluates validation stages in order and accumulates their
// failures. Stages after the first are expected to guard their rules on
// zero-valued operands so a missing required field is reported exactly once.
func Pipeline(stages ...func() Failures) Failures {
	var all Failures
	for _, stage := range stages {
		all = append(all, stage()...)
	}
	return all
}

// messageFor renders a human-readable message for a single tag failure.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "lowercase":
		return "must be lowercase"
	case "alphanum":
		return "must contain only letters and digits"
	case "fileext":
		return "is not an accepted file extension"
	case "checksum":
		return "must be a 64-character hexadecimal SHA-256 digest"
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
