package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/errs"
	"github.com/rfmelo/fintrack-backend/internal/models"
)

// GenerateTransactions expands one intent into an ordered batch of group
// members. A nil batch means no expansion is needed (recurrence NONE or a
// count of at most 1) and the caller persists the single record itself.
//
// INSTALLMENT splits the value into equal unrounded shares and suffixes
// each description with " (i/count)"; REPEATED repeats the value and
// description unchanged. Member i is dated i months after the start date,
// clamping the day to the last valid day of shorter months. One fresh group
// id is generated per call and shared by every member; everything else is a
// deterministic function of the intent.
func GenerateTransactions(intent dto.TransactionIntent) (*dto.GeneratedBatch, error) {
	if intent.Recurrence != dto.RecurrenceInstallment && intent.Recurrence != dto.RecurrenceRepeated {
		return nil, nil
	}
	if intent.Count <= 1 {
		return nil, nil
	}

	start, err := time.Parse(txDateLayout, intent.Date)
	if err != nil {
		return nil, errs.NewValidationError(fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", intent.Date))
	}

	installment := intent.Recurrence == dto.RecurrenceInstallment
	value := intent.Value
	groupKind := models.GroupKindRecurring
	if installment {
		// Unrounded equal shares: currency rounding belongs to the
		// presentation layer (see RoundedShares), never here.
		value = intent.Value / float64(intent.Count)
		groupKind = models.GroupKindInstallment
	}

	groupID := uuid.New().String()
	members := make([]models.Transaction, 0, intent.Count)

	for i := 0; i < intent.Count; i++ {
		description := intent.Description
		groupTotal := 0
		if installment {
			description = fmt.Sprintf("%s (%d/%d)", intent.Description, i+1, intent.Count)
			groupTotal = intent.Count
		}

		members = append(members, models.Transaction{
			TransactionID: uuid.New().String(),
			Description:   description,
			Value:         value,
			Kind:          intent.Kind,
			CategoryID:    intent.CategoryID,
			AccountID:     intent.AccountID,
			Date:          addMonthsClamped(start, i).Format(txDateLayout),
			Spender:       intent.Spender,
			Paid:          intent.Paid,
			Sentiment:     intent.Sentiment,
			GroupID:       groupID,
			GroupKind:     groupKind,
			GroupIndex:    i + 1,
			GroupTotal:    groupTotal,
		})
	}

	return &dto.GeneratedBatch{
		GroupID:      groupID,
		GroupKind:    groupKind,
		Transactions: members,
	}, nil
}

// RoundedShares is the documented presentation-layer rounding policy for
// installment splits: each share rounds half-up to cents and the final
// share absorbs the remainder, so the rounded shares always re-sum to the
// original value.
func RoundedShares(value float64, count int) []float64 {
	if count <= 0 {
		return nil
	}

	total := decimal.NewFromFloat(value)
	share := total.DivRound(decimal.NewFromInt(int64(count)), 2)

	shares := make([]float64, count)
	running := decimal.Zero
	for i := 0; i < count-1; i++ {
		shares[i], _ = share.Float64()
		running = running.Add(share)
	}
	shares[count-1], _ = total.Sub(running).Float64()
	return shares
}

// addMonthsClamped advances the date by whole months, keeping the
// day-of-month where the target month supports it and clamping to the last
// valid day otherwise (Jan 31 → Feb 28, never a rollover into March).
func addMonthsClamped(t time.Time, months int) time.Time {
	anchor := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	day := t.Day()
	if last := daysInMonth(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
