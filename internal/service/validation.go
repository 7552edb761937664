package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/recordform"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
)

// NewValidator returns a validator with the record vocabulary rule registered.
// Fields tagged `vocab` must hold a value of their closed enumeration.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("vocab", func(fl validator.FieldLevel) bool {
		enum, ok := fl.Field().Interface().(models.Enum)
		return ok && enum.Valid()
	})
	return v
}

// SubmissionPolicy checks a built submission before it is dispatched.
func SubmissionPolicy(v *validator.Validate) recordform.Policy {
	return recordform.PolicyFunc(func(sub dto.RecordSubmission) error {
		if err := v.Struct(sub); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record submission")
		}
		return nil
	})
}
