package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"github.com/stretchr/testify/require"
)

const sample = `
records:
  - id: "1"
    kind: salary
    name: John Smith
    weekly_salary: 1500
  - id: "2"
    kind: hourly
    name: Jane Doe
    hours_worked: 40
    hourly_rate: 15
  - id: "3"
    kind: commission
    name: Kevin Bacon
    weekly_salary: 1000
    commission: 250
`

func TestDecode(t *testing.T) {
	t.Parallel()

	records, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, payroll.KindHourly, records[1].Kind)
	require.Equal(t, 40.0, *records[1].HoursWorked)
	require.Equal(t, payroll.Amount(15), *records[1].HourlyRate)
	require.Nil(t, records[1].WeeklySalary)

	ids, err := Identities(records)
	require.NoError(t, err)

	lines, err := payroll.RunPayroll(ids)
	require.NoError(t, err)
	require.Equal(t, []payroll.Amount{1500, 600, 1250}, []payroll.Amount{lines[0].Amount, lines[1].Amount, lines[2].Amount})
}

func TestDecode_RejectsUnknownField(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("records:\n  - id: \"1\"\n    kind: salary\n    name: A\n    salary: 10\n"))
	require.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Decode(strings.NewReader("records: []\n"))
	require.ErrorIs(t, err, ErrEmpty)
}

func TestIdentities_ReportsMismatch(t *testing.T) {
	t.Parallel()

	records, err := Decode(strings.NewReader("records:\n  - id: \"9\"\n    kind: salary\n    name: A\n    hourly_rate: 10\n"))
	require.NoError(t, err)

	_, err = Identities(records)
	require.ErrorIs(t, err, payroll.ErrConstructionMismatch)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
