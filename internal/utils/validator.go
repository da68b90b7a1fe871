package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// Validator wraps a configured validator.Validate instance so services share
// one set of custom tags.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	RegisterCustomValidators(v)
	return &Validator{validate: v}
}

// Struct validates struct tags on s.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateExerciseType backs the "exercise_type" struct tag.
func ValidateExerciseType(fl validator.FieldLevel) bool {
	return models.ExerciseType(fl.Field().String()).Valid()
}

// RegisterCustomValidators installs the engine's custom tags and makes
// validator error messages use json field names.
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exercise_type", ValidateExerciseType)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
