package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/wims/backend/internal/domain/inventory"
)

// RegisterValidators installs custom binding tags on gin's validator.
// Call once during startup before the router handles requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("stockreason", validStockReason)
}

// validStockReason accepts only the known outbound movement reasons
func validStockReason(fl validator.FieldLevel) bool {
	return inventory.StockOutReason(fl.Field().String()).IsValid()
}
