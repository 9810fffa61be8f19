package loan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	p := Project(10000, 4, 5.0)

	require.InDelta(t, 500, p.PeriodInterest, 1e-9)
	require.InDelta(t, 10500, p.PeriodDue, 1e-9)
	require.InDelta(t, 42000, p.TotalOwed, 1e-9)
}

func TestProjectZeroRate(t *testing.T) {
	p := Project(10000, 4, 0)

	require.InDelta(t, 0, p.PeriodInterest, 1e-9)
	require.InDelta(t, 40000, p.TotalOwed, 1e-9)
}

func TestProjectZeroPeriods(t *testing.T) {
	p := Project(10000, 0, 5.0)
	require.InDelta(t, 0, p.TotalOwed, 1e-9)
}

func TestAmortize(t *testing.T) {
	a, err := Amortize(42000, 5.0, 10)
	require.NoError(t, err)
	require.Equal(t, 120, a.Payments)

	// closed-form reference value for the same inputs
	r := 5.0 / 100 / 12
	growth := math.Pow(1+r, 120)
	expected := 42000 * r * growth / (growth - 1)
	require.InDelta(t, expected, a.MonthlyPayment, 0.01)
	require.InDelta(t, 445.5, a.MonthlyPayment, 0.5)
}

func TestAmortizeZeroRate(t *testing.T) {
	a, err := Amortize(12000, 0, 10)
	require.NoError(t, err)
	require.InDelta(t, 100, a.MonthlyPayment, 1e-9)
	require.Equal(t, 120, a.Payments)
}

func TestAmortizeInvalidTerm(t *testing.T) {
	_, err := Amortize(12000, 5.0, 0)
	require.ErrorIs(t, err, ErrInvalidTerm)
}

func TestYearsRemaining(t *testing.T) {
	require.Equal(t, 4, YearsRemaining["Freshman"])
	require.Equal(t, 1, YearsRemaining["Senior"])
}
