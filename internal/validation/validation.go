// Package validation checks request payloads with struct tags and turns
// failures into errs.ErrInvalidInput with a readable message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/policy"
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v      *validator.Validate
	policy *policy.Registry
}

// New registers the deployment-dependent tags: visibility, category and
// affiliation.
func New(p *policy.Registry) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	_ = v.RegisterValidation("visibility", func(fl validator.FieldLevel) bool {
		return p.IsVisibility(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return p.IsCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("affiliation", func(fl validator.FieldLevel) bool {
		return p.IsAffiliation(fl.Field().String())
	})

	return &Validator{v: v, policy: p}
}

// fieldName reports fields by their wire name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Struct validates s and returns the first failure as ErrInvalidInput.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errs.Invalid("%s", v.message(verrs[0]))
	}
	return errs.Invalid("%s", err.Error())
}

func (v *Validator) message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "visibility":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(v.policy.Scopes(), ", "))
	case "category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(v.policy.Get().Categories, ", "))
	case "affiliation":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(v.policy.Get().Affiliations, ", "))
	case "e164":
		return field + " must be a valid phone number with country code, e.g. +919876543210"
	case "uuid":
		return field + " must be a valid id"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

var phoneSeparators = regexp.MustCompile(`[\s\-().]`)

// NormalizePhone strips spaces, dashes, dots and parentheses.
func NormalizePhone(phone string) string {
	return phoneSeparators.ReplaceAllString(strings.TrimSpace(phone), "")
}

// TrimPtr trims *s in place when set.
func TrimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
