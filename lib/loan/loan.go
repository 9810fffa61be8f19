// Package loan computes degree cost projections and fixed-rate
// amortized payments. No rounding happens here; currency formatting
// belongs to whoever renders the numbers.
package loan

import (
	"fmt"
	"math"
)

var ErrInvalidTerm = fmt.Errorf("amortization term must be at least one payment")

// Projection is the owed-at-graduation estimate for the remaining
// periods of study.
type Projection struct {
	// interest accrued on one period's net cost
	PeriodInterest float64
	// net cost plus interest for one period
	PeriodDue float64
	// PeriodDue times the remaining periods
	TotalOwed float64
}

// Project estimates the total owed given a net cost per period, the
// number of periods left and an annual rate in percent.
//
// The interest model is deliberately simple, not compound: the rate is
// applied once, flat, to every remaining period's net cost. Replacing
// it with period-over-period compounding would change every historical
// estimate, so the formula stays as is.
func Project(netPeriodCost float64, periodsRemaining int, annualRatePct float64) Projection {
	interest := (annualRatePct / 100) * netPeriodCost
	due := netPeriodCost + interest
	return Projection{
		PeriodInterest: interest,
		PeriodDue:      due,
		TotalOwed:      float64(periodsRemaining) * due,
	}
}

// Amortization is a fixed monthly payment schedule.
type Amortization struct {
	MonthlyPayment float64
	Payments       int
}

// Amortize computes the fixed monthly payment retiring totalOwed over
// termYears at the given annual rate, using the standard annuity
// formula P * r(1+r)^n / ((1+r)^n - 1) with r the monthly rate. A zero
// rate degenerates to equal installments of P/n rather than dividing
// by zero.
func Amortize(totalOwed float64, annualRatePct float64, termYears int) (Amortization, error) {
	n := termYears * 12
	if n <= 0 {
		return Amortization{}, fmt.Errorf("%w: %d years", ErrInvalidTerm, termYears)
	}

	r := annualRatePct / 100 / 12
	if r == 0 {
		return Amortization{
			MonthlyPayment: totalOwed / float64(n),
			Payments:       n,
		}, nil
	}

	growth := math.Pow(1+r, float64(n))
	return Amortization{
		MonthlyPayment: totalOwed * r * growth / (growth - 1),
		Payments:       n,
	}, nil
}

// YearsRemaining maps a student's current year to the periods of study
// left, counting the current one.
var YearsRemaining = map[string]int{
	"Freshman":  4,
	"Sophomore": 3,
	"Junior":    2,
	"Senior":    1,
}
