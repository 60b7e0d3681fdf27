package transactions

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/cleared-dev/myfinances/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a NewTransaction before it is stored. Failures wrap one of
// the model sentinels: ErrInvalidAmount, ErrInvalidKind or ErrInvalidTransaction.
func Validate(params NewTransaction) error {
	if params.Amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", model.ErrInvalidAmount, params.Amount)
	}
	if !params.Kind.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidKind, params.Kind)
	}

	params.Category = strings.TrimSpace(params.Category)
	err := structValidator().Struct(params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", model.ErrInvalidTransaction, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return fmt.Errorf("%w: %s", model.ErrInvalidTransaction, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
