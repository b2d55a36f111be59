package payroll

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSalaryEmployee_ComputePay(t *testing.T) {
	t.Parallel()

	for _, weekly := range []Amount{0, 1, 1500, 987654} {
		e, err := NewSalaryEmployee("1", "John Smith", weekly)
		require.NoError(t, err)
		require.Equal(t, weekly, e.ComputePay())
	}
}

func TestHourlyEmployee_ComputePay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hours float64
		rate  Amount
		want  Amount
	}{
		{hours: 40, rate: 15, want: 600},
		{hours: 0, rate: 99, want: 0},
		{hours: 37.5, rate: 20, want: 750},
		{hours: 1.25, rate: 4, want: 5},
		{hours: 0.7, rate: 10, want: 7},
	}

	for _, tc := range cases {
		e, err := NewHourlyEmployee("2", "Jane Doe", tc.hours, tc.rate)
		require.NoError(t, err)
		require.Equal(t, tc.want, e.ComputePay(), "hours=%v rate=%v", tc.hours, tc.rate)
		require.InDelta(t, tc.hours*float64(tc.rate), float64(e.ComputePay()), 1e-9)
	}
}

func TestHourlyEmployee_RejectsFractionalPay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hours float64
		rate  Amount
	}{
		{hours: 1.5, rate: 3},
		{hours: 7.5, rate: 15},
		{hours: 1.25, rate: 3},
	}

	for _, tc := range cases {
		_, err := NewHourlyEmployee("2", "Jane Doe", tc.hours, tc.rate)
		require.ErrorIs(t, err, ErrInvalidHours, "hours=%v rate=%v", tc.hours, tc.rate)

		_, err = NewTemporarySecretary("5", "Robin Williams", tc.hours, tc.rate)
		require.ErrorIs(t, err, ErrInvalidHours, "hours=%v rate=%v", tc.hours, tc.rate)
	}
}

func TestConstructors_AmountBounds(t *testing.T) {
	t.Parallel()

	s, err := NewSalaryEmployee("1", "John Smith", MaxAmount)
	require.NoError(t, err)
	require.Equal(t, MaxAmount, s.ComputePay())

	_, err = NewSalaryEmployee("1", "John Smith", MaxAmount+1)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewHourlyEmployee("2", "Jane Doe", 1e300, 10)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewHourlyEmployee("2", "Jane Doe", 1, MaxAmount+1)
	require.ErrorIs(t, err, ErrInvalidAmount)

	h, err := NewHourlyEmployee("2", "Jane Doe", 1, MaxAmount)
	require.NoError(t, err)
	require.Equal(t, MaxAmount, h.ComputePay())

	c, err := NewCommissionEmployee("3", "Kevin Bacon", MaxAmount-250, 250)
	require.NoError(t, err)
	require.Equal(t, MaxAmount, c.ComputePay())

	_, err = NewCommissionEmployee("3", "Kevin Bacon", MaxAmount-250, 251)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewCommissionEmployee("3", "Kevin Bacon", 1<<62, 1<<62)
	require.ErrorIs(t, err, ErrInvalidAmount)

	huge := Amount(1 << 62)
	_, err = Build(Record{ID: "4", Kind: KindCommission, Name: "Kevin Bacon", WeeklySalary: &huge, Commission: &huge})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCommissionEmployee_DelegatesToSalaryRule(t *testing.T) {
	t.Parallel()

	for _, weekly := range []Amount{0, 500, 1000} {
		for _, commission := range []Amount{0, 250, 10} {
			e, err := NewCommissionEmployee("3", "Kevin Bacon", weekly, commission)
			require.NoError(t, err)

			require.Equal(t, weekly+commission, e.ComputePay())
			require.Equal(t, e.SalaryEmployee.ComputePay()+commission, e.ComputePay())
		}
	}
}

func TestSecretary_InheritsSalaryRule(t *testing.T) {
	t.Parallel()

	s, err := NewSecretary("2", "John Smith", 1500)
	require.NoError(t, err)
	require.Equal(t, Amount(1500), s.ComputePay())
	require.Equal(t, "John Smith expends 8 hours doing office paperwork.", s.PerformClerical(8))
}

func TestTemporarySecretary_PinnedToHourlyRule(t *testing.T) {
	t.Parallel()

	ts, err := NewTemporarySecretary("5", "Robin Williams", 40, 9)
	require.NoError(t, err)

	require.Equal(t, Amount(360), ts.ComputePay())
	require.Equal(t, 40.0, ts.HoursWorked())
	require.Equal(t, Amount(9), ts.HourlyRate())
	require.Equal(t, "Robin Williams expends 2.5 hours doing office paperwork.", ts.PerformClerical(2.5))

	var employee Employee = ts
	require.Equal(t, Amount(360), employee.ComputePay())
}

func TestTemporarySecretary_RejectsSalaryShape(t *testing.T) {
	t.Parallel()

	salary := Amount(1500)
	_, err := Build(Record{ID: "5", Kind: KindTemporarySecretary, Name: "Robin Williams", WeeklySalary: &salary})

	var mismatch *ConstructionMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.ErrorIs(t, err, ErrConstructionMismatch)
	require.Equal(t, KindTemporarySecretary, mismatch.Kind)
}

func TestDisgruntledEmployee_IsPayeeOutsideEmployeeLineage(t *testing.T) {
	t.Parallel()

	d, err := NewDisgruntledEmployee("20", "Anonymous")
	require.NoError(t, err)
	require.Equal(t, Amount(1_000_000), d.ComputePay())

	var identity Identity = d
	_, isEmployee := identity.(Employee)
	require.False(t, isEmployee)
	_, isPayee := identity.(Payee)
	require.True(t, isPayee)
}

func TestConstructors_Validate(t *testing.T) {
	t.Parallel()

	_, err := NewSalaryEmployee(" ", "name", 10)
	require.ErrorIs(t, err, ErrInvalidID)

	_, err = NewSalaryEmployee("1", "  ", 10)
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = NewSalaryEmployee("1", "name", -1)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewHourlyEmployee("1", "name", -2, 10)
	require.ErrorIs(t, err, ErrInvalidHours)

	_, err = NewCommissionEmployee("1", "name", 10, -5)
	require.ErrorIs(t, err, ErrInvalidAmount)

	s, err := NewSalaryEmployee("  7 ", " Trimmed ", 10)
	require.NoError(t, err)
	require.Equal(t, "7", s.ID())
	require.Equal(t, "Trimmed", s.Name())
}
