// Файл: pkg/customvalidator/validators.go

package customvalidator

import (
	"slices"

	"github.com/go-playground/validator/v10"

	"inventory-system/pkg/constants"
)

// RegisterCustomValidations регистрирует доменные правила валидации.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("equipment_status", isEquipmentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("loan_status", isLoanStatus); err != nil {
		return err
	}
	return nil
}

func isEquipmentStatus(fl validator.FieldLevel) bool {
	return slices.Contains(constants.EquipmentStatuses, fl.Field().String())
}

func isLoanStatus(fl validator.FieldLevel) bool {
	return slices.Contains(constants.LoanStatuses, fl.Field().String())
}

// New - валидатор со всеми кастомными правилами.
func New() (*validator.Validate, error) {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		return nil, err
	}
	return v, nil
}
