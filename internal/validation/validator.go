package validation

import (
	"reflect"
	"strings"
	"time"

	"finsight/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("group_by", validateGroupBy)
	_ = v.RegisterValidation("budget_period", validateBudgetPeriod)
	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("liability_type", validateLiabilityType)
	_ = v.RegisterValidation("iso_date", validateISODate)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateGroupBy validates that a grouping dimension is one the aggregator supports
func validateGroupBy(fl validator.FieldLevel) bool {
	return models.IsValidGroupBy(strings.ToLower(fl.Field().String()))
}

// validateBudgetPeriod validates that a budget period is one of the allowed values
func validateBudgetPeriod(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case models.BudgetPeriodWeekly, models.BudgetPeriodMonthly, models.BudgetPeriodCustom:
		return true
	}
	return false
}

// validateAccountType validates that account type is one of the canonical types
func validateAccountType(fl validator.FieldLevel) bool {
	return models.IsValidAccountType(strings.ToLower(fl.Field().String()))
}

// validateLiabilityType validates that a liability type is one of the allowed types
func validateLiabilityType(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case models.LiabilityTypeCredit, models.LiabilityTypeStudent,
		models.LiabilityTypeMortgage, models.LiabilityTypeAuto,
		models.LiabilityTypePersonal:
		return true
	}
	return false
}

// validateISODate validates a yyyy-mm-dd date string
func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
