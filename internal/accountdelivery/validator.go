package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/ledgerflow/ledgerflow/internal/domain"
)

// ValidKind validates whether the account kind is supported.
var ValidKind validator.Func = func(fl validator.FieldLevel) bool {
	if k, ok := fl.Field().Interface().(string); ok {
		return domain.IsSupportedKind(k)
	}
	return false
}
