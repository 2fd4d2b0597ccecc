package validation

import (
	"errors"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CourseCodePattern accepts codes such as "CS101", "MATH 2010" or "EE-301L".
var CourseCodePattern = regexp.MustCompile(`^[A-Za-z]{2,6}[ -]?\d{2,4}[A-Za-z]?$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	ginOnce      sync.Once
)

func register(v *validator.Validate) {
	_ = v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return CourseCodePattern.MatchString(fl.Field().String())
	})
}

// Validator returns the shared validator with the planner tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		register(validate)
	})
	return validate
}

// RegisterGinValidators makes the custom tags usable in gin binding tags.
func RegisterGinValidators() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			register(v)
		}
	})
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	return Validator().Struct(s)
}

// Messages turns validator errors into readable strings.
func Messages(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, formatFieldError(fe))
	}
	return out
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Namespace() + " is required"
	case "min":
		return e.Namespace() + " must be at least " + e.Param()
	case "max":
		return e.Namespace() + " must be at most " + e.Param()
	case "oneof":
		return e.Namespace() + " must be one of: " + e.Param()
	case "coursecode":
		return e.Namespace() + " must be a course code like CS101"
	case "gt":
		return e.Namespace() + " must be greater than " + e.Param()
	default:
		return e.Namespace() + " validation failed: " + e.Tag()
	}
}
