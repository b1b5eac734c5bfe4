package services

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/models"
)

const txDateLayout = "2006-01-02"

var validSentiments = []string{"happy", "sad", "angry", "surprised", "neutral"}

var validSpenders = []string{"ME", "SPOUSE", "CHILDREN"}

// ValidateTransaction runs every check against one candidate intent and
// returns the complete violation list. It never short-circuits: multiple
// simultaneous violations are all reported. Pure — safe to call
// speculatively, repeatedly, and in parallel.
func ValidateTransaction(intent dto.TransactionIntent, accounts []models.Account, categories []models.Category) dto.ValidationResult {
	return ValidateTransactionAt(intent, accounts, categories, time.Now())
}

// ValidateTransactionAt is ValidateTransaction with an explicit evaluation
// time for the date-window checks.
func ValidateTransactionAt(intent dto.TransactionIntent, accounts []models.Account, categories []models.Category, now time.Time) dto.ValidationResult {
	errors := []string{}

	errors = append(errors, validateRequiredFields(intent)...)
	errors = append(errors, validateConstraints(intent, now)...)

	if intent.CategoryID != "" {
		errors = append(errors, validateCategory(intent.CategoryID, categories)...)
	}
	if intent.AccountID != "" {
		errors = append(errors, validateAccount(intent.AccountID, accounts)...)
	}
	if intent.Recurrence != "" {
		errors = append(errors, ValidateRecurrence(intent.Recurrence, intent.Count)...)
	}

	return dto.ValidationResult{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}

func validateRequiredFields(intent dto.TransactionIntent) []string {
	var errors []string

	if strings.TrimSpace(intent.Description) == "" {
		errors = append(errors, "description is required")
	}
	if intent.Value <= 0 {
		errors = append(errors, "value must be greater than zero")
	}
	if intent.Date == "" {
		errors = append(errors, "date is required")
	}
	if intent.Kind != models.KindIncome && intent.Kind != models.KindExpense {
		errors = append(errors, fmt.Sprintf("invalid transaction kind %q (must be INCOME or EXPENSE)", intent.Kind))
	}
	if intent.CategoryID == "" {
		errors = append(errors, "category is required")
	}
	if intent.AccountID == "" {
		errors = append(errors, "account is required")
	}

	return errors
}

func validateConstraints(intent dto.TransactionIntent, now time.Time) []string {
	var errors []string

	if math.IsNaN(intent.Value) || math.IsInf(intent.Value, 0) {
		errors = append(errors, "value is not a finite number")
	} else {
		if intent.Value < 0 {
			errors = append(errors, "value cannot be negative")
		}
		if intent.Value > dto.MaxTransactionValue {
			errors = append(errors, "value cannot exceed 999,999,999")
		}
	}

	if intent.Date != "" {
		date, err := time.Parse(txDateLayout, intent.Date)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", intent.Date))
		} else {
			if date.Before(now.AddDate(-dto.DateYearsPastLimit, 0, 0)) {
				errors = append(errors, fmt.Sprintf("date cannot be more than %d years in the past", dto.DateYearsPastLimit))
			}
			if date.After(now.AddDate(dto.DateYearsFutureLimit, 0, 0)) {
				errors = append(errors, fmt.Sprintf("date cannot be more than %d years in the future", dto.DateYearsFutureLimit))
			}
		}
	}

	if utf8.RuneCountInString(intent.Description) > dto.MaxDescriptionLength {
		errors = append(errors, fmt.Sprintf("description cannot exceed %d characters", dto.MaxDescriptionLength))
	}

	if intent.Sentiment != "" && !contains(validSentiments, intent.Sentiment) {
		errors = append(errors, fmt.Sprintf("invalid sentiment %q", intent.Sentiment))
	}
	if intent.Spender != "" && !contains(validSpenders, intent.Spender) {
		errors = append(errors, fmt.Sprintf("invalid spender %q", intent.Spender))
	}

	return errors
}

func validateCategory(categoryID string, categories []models.Category) []string {
	for _, c := range categories {
		if c.CategoryID == categoryID {
			return nil
		}
	}
	return []string{fmt.Sprintf("category %q not found", categoryID)}
}

func validateAccount(accountID string, accounts []models.Account) []string {
	for _, a := range accounts {
		if a.AccountID == accountID {
			return nil
		}
	}
	return []string{fmt.Sprintf("account %q not found", accountID)}
}

// ValidateRecurrence checks the recurrence mode and count bounds. Exposed
// separately because form code validates the recurrence section on its own
// before submitting the full intent.
func ValidateRecurrence(recurrence string, count int) []string {
	var errors []string

	switch recurrence {
	case dto.RecurrenceNone, dto.RecurrenceInstallment, dto.RecurrenceRepeated:
	default:
		errors = append(errors, fmt.Sprintf("invalid recurrence type %q (must be NONE, INSTALLMENT or REPEATED)", recurrence))
		return errors
	}

	if recurrence == dto.RecurrenceNone {
		return nil
	}

	if count < dto.RecurrenceMinCount {
		errors = append(errors, fmt.Sprintf("installment count must be at least %d", dto.RecurrenceMinCount))
	}
	if count > dto.RecurrenceMaxCount {
		errors = append(errors, fmt.Sprintf("installment count cannot exceed %d", dto.RecurrenceMaxCount))
	}
	if recurrence == dto.RecurrenceInstallment && count > dto.InstallmentMaxCount {
		errors = append(errors, fmt.Sprintf("installments cannot exceed %d months (30 years)", dto.InstallmentMaxCount))
	}

	return errors
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
