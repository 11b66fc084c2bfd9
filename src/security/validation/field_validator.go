// backend/src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/models"
)

// ErrValidationFailed remains the same
var ErrValidationFailed = fmt.Errorf("validation failed")

// Constants for lengths remain here
const (
	DefaultMaxStringLength = 255
	MaxDescriptionLength   = 1024
	MaxCategoryLength      = 255
	MaxAbsoluteAmount      = 1_000_000_000
)

// --- String Validators ---

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// --- Date Validator ---

// ValidateISODate checks if a string is a valid date in "YYYY-MM-DD" format.
func ValidateISODate(s, fieldName string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if err := ValidateStringNotEmpty(trimmed, fieldName); err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s ('%s') is not a valid date (expected YYYY-MM-DD): %v", ErrValidationFailed, fieldName, s, err)
	}
	if t.Format("2006-01-02") != trimmed {
		return time.Time{}, fmt.Errorf("%w: %s ('%s') is an invalid date (e.g., day/month mismatch)", ErrValidationFailed, fieldName, s)
	}
	return t, nil
}

// --- Transaction Validators ---

// ValidateTransactionType checks that a type is one of the two known kinds.
func ValidateTransactionType(s string) error {
	if s != models.TypeIncome && s != models.TypeExpense {
		return fmt.Errorf("%w: type must be '%s' or '%s', got '%s'", ErrValidationFailed, models.TypeIncome, models.TypeExpense, s)
	}
	return nil
}

// ValidateTransactionInput validates the fields of a manually submitted
// transaction before it reaches the store. The amount sign must agree with
// the declared type: positive for income, negative for expense.
func ValidateTransactionInput(tx *models.Transaction) error {
	if _, err := ValidateISODate(tx.Date, "Date"); err != nil {
		return err
	}
	if err := ValidateStringNotEmpty(tx.Description, "Description"); err != nil {
		return err
	}
	if err := ValidateStringMaxLength(tx.Description, MaxDescriptionLength, "Description"); err != nil {
		return err
	}
	if err := ValidateStringMaxLength(tx.Category, MaxCategoryLength, "Category"); err != nil {
		return err
	}
	if err := ValidateTransactionType(tx.Type); err != nil {
		return err
	}
	if tx.Amount == 0 {
		return fmt.Errorf("%w: Amount cannot be zero", ErrValidationFailed)
	}
	if tx.Amount > MaxAbsoluteAmount || tx.Amount < -MaxAbsoluteAmount {
		logger.L.Warn("Amount out of range", "value", tx.Amount)
		return fmt.Errorf("%w: Amount must be between %d and %d", ErrValidationFailed, -MaxAbsoluteAmount, MaxAbsoluteAmount)
	}
	if tx.Type == models.TypeIncome && tx.Amount < 0 {
		return fmt.Errorf("%w: income amount must be positive", ErrValidationFailed)
	}
	if tx.Type == models.TypeExpense && tx.Amount > 0 {
		return fmt.Errorf("%w: expense amount must be negative", ErrValidationFailed)
	}
	return nil
}
