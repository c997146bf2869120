package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
)

// registerCustomValidators wires domain-level validations into gin's binding
// engine so malformed requests are rejected before reaching the services.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("fiscalperiod", func(fl validator.FieldLevel) bool {
			_, err := domain.ParsePeriod(fl.Field().String())
			return err == nil
		})
	}
}
