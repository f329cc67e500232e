package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists every problem found in a profile.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid profile: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the enum value sets and numeric ranges of p. Completeness
// and bound ordering are not checked.
func Validate(p *Profile) error {
	if p == nil {
		return &ValidationError{Problems: []string{"profile is nil"}}
	}

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate profile: %w", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	return &ValidationError{Problems: problems}
}

// Warnings reports bound orderings the scorer expects but the model allows,
// such as an ideal age outside the min/max range.
func Warnings(p *Profile) []string {
	warnings := make([]string, 0)
	if p == nil {
		return warnings
	}

	age := p.Recruitment.AgePreference
	if age.Min != nil && age.Max != nil && *age.Min > *age.Max {
		warnings = append(warnings, fmt.Sprintf("recruitment.age_preference: min %d is greater than max %d", *age.Min, *age.Max))
	}
	if age.Ideal != nil {
		if age.Min != nil && *age.Ideal < *age.Min {
			warnings = append(warnings, fmt.Sprintf("recruitment.age_preference: ideal %d is below min %d", *age.Ideal, *age.Min))
		}
		if age.Max != nil && *age.Ideal > *age.Max {
			warnings = append(warnings, fmt.Sprintf("recruitment.age_preference: ideal %d is above max %d", *age.Ideal, *age.Max))
		}
	}

	length := p.Contracts.ContractLengthPreference
	if length.MinYears > length.MaxYears {
		warnings = append(warnings, fmt.Sprintf("contracts.contract_length_preference: min_years %d is greater than max_years %d", length.MinYears, length.MaxYears))
	}
	return warnings
}

func describeFieldError(fe validator.FieldError) string {
	path := strings.TrimPrefix(fe.Namespace(), "Profile.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of [%s]", path, fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", path, fe.Param())
	case "lte":
		return fmt.Sprintf("%s: must be at most %s", path, fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", path, fe.Tag())
	}
}
