package services

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/models"
)

var (
	testCategories = []models.Category{
		{CategoryID: "cat-food", Name: "Food", Kind: models.KindExpense},
		{CategoryID: "cat-salary", Name: "Salary", Kind: models.KindIncome},
	}
	testAccounts = []models.Account{
		{AccountID: "acc-checking", Name: "Checking"},
	}
)

func validIntent() dto.TransactionIntent {
	return dto.TransactionIntent{
		Description: "Groceries",
		Value:       120.50,
		Kind:        models.KindExpense,
		CategoryID:  "cat-food",
		AccountID:   "acc-checking",
		Date:        "2026-03-10",
		Paid:        true,
	}
}

func hasError(t *testing.T, errors []string, substr string) {
	t.Helper()
	for _, e := range errors {
		if strings.Contains(e, substr) {
			return
		}
	}
	t.Fatalf("expected an error containing %q, got %v", substr, errors)
}

func TestValidateTransaction_Valid(t *testing.T) {
	res := ValidateTransaction(validIntent(), testAccounts, testCategories)
	if !res.IsValid || len(res.Errors) != 0 {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
}

func TestValidateTransaction_RequiredFields(t *testing.T) {
	res := ValidateTransaction(dto.TransactionIntent{}, testAccounts, testCategories)
	if res.IsValid {
		t.Fatal("expected invalid")
	}
	hasError(t, res.Errors, "description is required")
	hasError(t, res.Errors, "value must be greater than zero")
	hasError(t, res.Errors, "date is required")
	hasError(t, res.Errors, "invalid transaction kind")
	hasError(t, res.Errors, "category is required")
	hasError(t, res.Errors, "account is required")
}

func TestValidateTransaction_CollectsAllErrors(t *testing.T) {
	intent := validIntent()
	intent.Description = "   "
	intent.Value = -5
	intent.Sentiment = "ecstatic"
	res := ValidateTransaction(intent, testAccounts, testCategories)
	if res.IsValid {
		t.Fatal("expected invalid")
	}
	// All simultaneous violations must be reported together.
	hasError(t, res.Errors, "description is required")
	hasError(t, res.Errors, "value must be greater than zero")
	hasError(t, res.Errors, "value cannot be negative")
	hasError(t, res.Errors, "invalid sentiment")
}

func TestValidateTransaction_ValueTooLarge(t *testing.T) {
	intent := validIntent()
	intent.Value = 1_000_000_000
	res := ValidateTransaction(intent, testAccounts, testCategories)
	hasError(t, res.Errors, "cannot exceed 999,999,999")
}

func TestValidateTransaction_NonFiniteValue(t *testing.T) {
	intent := validIntent()
	intent.Value = math.NaN()
	res := ValidateTransaction(intent, testAccounts, testCategories)
	hasError(t, res.Errors, "not a finite number")

	intent.Value = math.Inf(1)
	res = ValidateTransaction(intent, testAccounts, testCategories)
	hasError(t, res.Errors, "not a finite number")
}

func TestValidateTransaction_InvalidCalendarDate(t *testing.T) {
	intent := validIntent()
	intent.Date = "2026-02-31"
	res := ValidateTransaction(intent, testAccounts, testCategories)
	hasError(t, res.Errors, "invalid date")
}

func TestValidateTransaction_DateWindow(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	intent := validIntent()
	intent.Date = "1970-01-01"
	res := ValidateTransactionAt(intent, testAccounts, testCategories, now)
	hasError(t, res.Errors, "50 years in the past")

	intent.Date = "2040-01-01"
	res = ValidateTransactionAt(intent, testAccounts, testCategories, now)
	hasError(t, res.Errors, "10 years in the future")

	intent.Date = "2030-01-01"
	res = ValidateTransactionAt(intent, testAccounts, testCategories, now)
	if !res.IsValid {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
}

func TestValidateTransaction_DescriptionTooLong(t *testing.T) {
	intent := validIntent()
	intent.Description = strings.Repeat("x", 501)
	res := ValidateTransaction(intent, testAccounts, testCategories)
	hasError(t, res.Errors, "cannot exceed 500 characters")
}

func TestValidateTransaction_SpenderClosedSet(t *testing.T) {
	intent := validIntent()
	intent.Spender = "NEIGHBOR"
	res := ValidateTransaction(intent, testAccounts, testCategories)
	hasError(t, res.Errors, `invalid spender "NEIGHBOR"`)

	intent.Spender = "SPOUSE"
	res = ValidateTransaction(intent, testAccounts, testCategories)
	if !res.IsValid {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
}

func TestValidateTransaction_UnknownReferences(t *testing.T) {
	intent := validIntent()
	intent.CategoryID = "cat-missing"
	intent.AccountID = "acc-missing"
	res := ValidateTransaction(intent, testAccounts, testCategories)
	hasError(t, res.Errors, `category "cat-missing" not found`)
	hasError(t, res.Errors, `account "acc-missing" not found`)
}

func TestValidateRecurrence(t *testing.T) {
	tests := []struct {
		name       string
		recurrence string
		count      int
		wantErrs   int
		wantSubstr string
	}{
		{"installment below minimum", dto.RecurrenceInstallment, 1, 1, "at least 2"},
		{"installment above monthly cap", dto.RecurrenceInstallment, 361, 1, "360 months"},
		{"none ignores count", dto.RecurrenceNone, 999, 0, ""},
		{"repeated in range", dto.RecurrenceRepeated, 999, 0, ""},
		{"repeated above maximum", dto.RecurrenceRepeated, 1000, 1, "cannot exceed 999"},
		{"installment in range", dto.RecurrenceInstallment, 360, 0, ""},
		{"unknown mode", "WEEKLY", 12, 1, "invalid recurrence type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errors := ValidateRecurrence(tc.recurrence, tc.count)
			if len(errors) != tc.wantErrs {
				t.Fatalf("expected %d errors, got %v", tc.wantErrs, errors)
			}
			if tc.wantSubstr != "" {
				hasError(t, errors, tc.wantSubstr)
			}
		})
	}
}
