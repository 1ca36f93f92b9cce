package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/airport-locator/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// В ошибках поле называется так же, как в запросе: query-тег, затем json-тег
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}

// Validate - валидация структуры.
// Ошибки валидатора превращаются в список *errors.AppError (см. Errors).
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// Errors переводит ошибку валидатора в ошибки по полям.
// Для прочих ошибок возвращает ErrValidation без поля.
func Errors(err error) []*errors.AppError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return []*errors.AppError{errors.ErrValidation}
	}

	out := make([]*errors.AppError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError(fe))
	}
	return out
}

func fieldError(fe validator.FieldError) *errors.AppError {
	field := fe.Field()

	base := errors.ErrValidation
	switch field {
	case "isoCountry":
		base = errors.ErrInvalidCountry
	case "unit":
		base = errors.ErrInvalidUnit
	case "routeFactor":
		base = errors.ErrInvalidRouteFactor
	case "prefix":
		base = errors.ErrInvalidCachePrefix
	}

	return base.WithField(field).WithMessage("%s", message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "alpha":
		return fmt.Sprintf("%s must contain letters only", fe.Field())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
