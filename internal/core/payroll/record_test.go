package payroll

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild_Shapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		record  Record
		want    Amount
		wantErr error
		field   string
	}{
		{
			name:   "salary",
			record: Record{ID: "1", Kind: KindSalary, Name: "A", WeeklySalary: amountPtr(1500)},
			want:   1500,
		},
		{
			name:   "secretary",
			record: Record{ID: "2", Kind: KindSecretary, Name: "B", WeeklySalary: amountPtr(1500)},
			want:   1500,
		},
		{
			name:   "commission",
			record: Record{ID: "3", Kind: KindCommission, Name: "C", WeeklySalary: amountPtr(1000), Commission: amountPtr(250)},
			want:   1250,
		},
		{
			name:   "hourly",
			record: Record{ID: "4", Kind: KindHourly, Name: "D", HoursWorked: floatPtr(40), HourlyRate: amountPtr(15)},
			want:   600,
		},
		{
			name:   "temporary secretary",
			record: Record{ID: "5", Kind: KindTemporarySecretary, Name: "E", HoursWorked: floatPtr(40), HourlyRate: amountPtr(9)},
			want:   360,
		},
		{
			name:   "disgruntled",
			record: Record{ID: "6", Kind: KindDisgruntled, Name: "F"},
			want:   DisgruntledPay,
		},
		{
			name:    "kind is case insensitive",
			record:  Record{ID: "7", Kind: " Salary ", Name: "G", WeeklySalary: amountPtr(1)},
			want:    1,
			wantErr: nil,
		},
		{
			name:    "hourly given a flat salary",
			record:  Record{ID: "8", Kind: KindHourly, Name: "H", WeeklySalary: amountPtr(1500)},
			wantErr: ErrConstructionMismatch,
			field:   "weekly_salary",
		},
		{
			name:    "salary given hours",
			record:  Record{ID: "9", Kind: KindSalary, Name: "I", WeeklySalary: amountPtr(1500), HoursWorked: floatPtr(3)},
			wantErr: ErrConstructionMismatch,
			field:   "hours_worked",
		},
		{
			name:    "commission missing commission",
			record:  Record{ID: "10", Kind: KindCommission, Name: "J", WeeklySalary: amountPtr(1000)},
			wantErr: ErrConstructionMismatch,
			field:   "commission",
		},
		{
			name:    "temporary secretary missing rate",
			record:  Record{ID: "11", Kind: KindTemporarySecretary, Name: "K", HoursWorked: floatPtr(40)},
			wantErr: ErrConstructionMismatch,
			field:   "hourly_rate",
		},
		{
			name:    "disgruntled with salary",
			record:  Record{ID: "12", Kind: KindDisgruntled, Name: "L", WeeklySalary: amountPtr(1)},
			wantErr: ErrConstructionMismatch,
			field:   "weekly_salary",
		},
		{
			name:    "unknown kind",
			record:  Record{ID: "13", Kind: "contractor", Name: "M"},
			wantErr: ErrUnknownKind,
		},
		{
			name:    "negative rate",
			record:  Record{ID: "14", Kind: KindHourly, Name: "N", HoursWorked: floatPtr(1), HourlyRate: amountPtr(-1)},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "missing id",
			record:  Record{Kind: KindDisgruntled, Name: "O"},
			wantErr: ErrInvalidID,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v, err := Build(tc.record)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				if tc.field != "" {
					var mismatch *ConstructionMismatchError
					require.ErrorAs(t, err, &mismatch)
					require.Equal(t, tc.field, mismatch.Field)
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, v.(Payee).ComputePay())
		})
	}
}

func TestRecordOf_RoundTripsBuild(t *testing.T) {
	t.Parallel()

	records := []Record{
		{ID: "1", Kind: KindSalary, Name: "A", WeeklySalary: amountPtr(1500)},
		{ID: "2", Kind: KindSecretary, Name: "B", WeeklySalary: amountPtr(1500)},
		{ID: "3", Kind: KindCommission, Name: "C", WeeklySalary: amountPtr(1000), Commission: amountPtr(250)},
		{ID: "4", Kind: KindHourly, Name: "D", HoursWorked: floatPtr(40), HourlyRate: amountPtr(15)},
		{ID: "5", Kind: KindTemporarySecretary, Name: "E", HoursWorked: floatPtr(40), HourlyRate: amountPtr(9)},
		{ID: "6", Kind: KindDisgruntled, Name: "F"},
	}

	for _, want := range records {
		v, err := Build(want)
		require.NoError(t, err)

		got, err := RecordOf(v)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := RecordOf(badgeOnly{id: "x"})
	require.ErrorIs(t, err, ErrUnknownKind)
}
