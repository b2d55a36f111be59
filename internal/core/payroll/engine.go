package payroll

import "fmt"

// Line は 1 レコード分の計算結果です。
type Line struct {
	ID     string
	Name   string
	Amount Amount
}

// RunPayroll は入力順に各レコードの支給額を計算します。
// 1 件でも ComputePay を持たないレコードがあれば結果は返しません。
func RunPayroll(records []Identity) ([]Line, error) {
	lines := make([]Line, 0, len(records))
	for i, record := range records {
		payee, ok := record.(Payee)
		if !ok {
			return nil, missingCapability(record, i, CapabilityComputePay)
		}

		amount := payee.ComputePay()
		if amount < 0 {
			return nil, fmt.Errorf("record %q: %w", payee.ID(), ErrNegativePay)
		}

		lines = append(lines, Line{ID: payee.ID(), Name: payee.Name(), Amount: amount})
	}
	return lines, nil
}

// RunProductivity は入力順に各レコードへ事務作業を割り当てます。
func RunProductivity(records []Identity, hours float64) ([]string, error) {
	if hours < 0 {
		return nil, ErrInvalidHours
	}

	reports := make([]string, 0, len(records))
	for i, record := range records {
		worker, ok := record.(Clerical)
		if !ok {
			return nil, missingCapability(record, i, CapabilityClerical)
		}
		reports = append(reports, worker.PerformClerical(hours))
	}
	return reports, nil
}

func missingCapability(record Identity, index int, capability Capability) error {
	err := &MissingCapabilityError{Index: index, Capability: capability}
	if record != nil {
		err.ID = record.ID()
	}
	return err
}
