package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "localehub/internal/errors"
)

// validationFailure converts a validator error into the 422 payload shape
// `{"message": ..., "errors": {field: [reasons]}}`. Field names come from the
// json tags registered on the validator.
func validationFailure(err error) *apperrors.ValidationFailure {
	failure := &apperrors.ValidationFailure{
		Message: "The given data was invalid.",
		Fields:  map[string][]string{},
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		failure.Fields["body"] = []string{"is invalid"}
		return failure
	}

	for _, fe := range verrs {
		field := fe.Field()
		failure.Fields[field] = append(failure.Fields[field], fieldReason(fe))
	}
	return failure
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind().String() == "map" {
			return "must contain at least one entry"
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("may not be greater than %s characters", fe.Param())
	case "eqfield":
		return "confirmation does not match"
	default:
		return "is invalid"
	}
}
