package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// DefaultLoanPeriod is the time between borrowing and the due date.
const DefaultLoanPeriod = 30 * day

// FinePolicy holds the lending terms used to compute due dates and fines.
type FinePolicy struct {
	LoanPeriod time.Duration
	PerDayRate decimal.Decimal
	DamageFine decimal.Decimal
}

// DefaultFinePolicy returns a 30 day loan, 1 unit per overdue day and a flat damage fee of 10.
func DefaultFinePolicy() FinePolicy {
	return FinePolicy{
		LoanPeriod: DefaultLoanPeriod,
		PerDayRate: decimal.NewFromInt(1),
		DamageFine: decimal.NewFromInt(10),
	}
}

// DueDate returns the due date for a copy borrowed at borrowedAt.
func (p FinePolicy) DueDate(borrowedAt time.Time) time.Time {
	return borrowedAt.Add(p.LoanPeriod)
}

// OverdueDays returns the number of started days between dueDate and returnedAt, never negative.
func OverdueDays(dueDate, returnedAt time.Time) int64 {
	late := returnedAt.Sub(dueDate)
	if late <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(late) / float64(day)))
}

// Assess computes the fines for returning a copy due at dueDate at returnedAt.
func (p FinePolicy) Assess(dueDate, returnedAt time.Time, damageReported bool) ReturnDetail {
	overdueFine := p.PerDayRate.Mul(decimal.NewFromInt(OverdueDays(dueDate, returnedAt)))

	damageFine := decimal.Zero
	if damageReported {
		damageFine = p.DamageFine
	}

	return ReturnDetail{
		DamageReported: damageReported,
		DamageFine:     damageFine,
		OverdueFine:    overdueFine,
		TotalFine:      damageFine.Add(overdueFine),
	}
}
