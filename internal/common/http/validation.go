package http

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	commonerrors "github.com/givehub/server/internal/common/errors"
)

var validate = validator.New()

// ValidatePayload enforces transport-level shape limits declared with
// `validate` struct tags on request DTOs. Domain rules (trimming, truncation,
// defaults) stay in the services.
func ValidatePayload(v any) error {
	if err := validate.Struct(v); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return commonerrors.ErrInvalidPayload.WithCause(
				fmt.Errorf("field %s failed %s validation", fe.Field(), fe.Tag()),
			)
		}
		return commonerrors.ErrInvalidPayload.WithCause(err)
	}
	return nil
}

func ValidateUUID(s string) error {
	_, err := uuid.Parse(s)
	return err
}
