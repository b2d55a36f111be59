// Package roster は YAML の名簿ファイルを給与レコードとして読み込みます。
package roster

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"gopkg.in/yaml.v3"
)

// ErrEmpty は名簿にレコードが1件も無いことを示します。
var ErrEmpty = errors.New("roster: no records")

type file struct {
	Records []entry `yaml:"records"`
}

type entry struct {
	ID           string   `yaml:"id"`
	Kind         string   `yaml:"kind"`
	Name         string   `yaml:"name"`
	WeeklySalary *int64   `yaml:"weekly_salary"`
	HoursWorked  *float64 `yaml:"hours_worked"`
	HourlyRate   *int64   `yaml:"hourly_rate"`
	Commission   *int64   `yaml:"commission"`
}

// Load は path の名簿を読み込みます。
func Load(path string) ([]payroll.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: read file %s: %w", path, err)
	}
	return Decode(bytes.NewReader(b))
}

// Decode は r から名簿を読み込みます。未知のキーはエラーになります。
func Decode(r io.Reader) ([]payroll.Record, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("roster: parse yaml: %w", err)
	}
	if len(f.Records) == 0 {
		return nil, ErrEmpty
	}

	records := make([]payroll.Record, 0, len(f.Records))
	for _, e := range f.Records {
		records = append(records, e.record())
	}
	return records, nil
}

func (e entry) record() payroll.Record {
	return payroll.Record{
		ID:           e.ID,
		Kind:         payroll.Kind(e.Kind),
		Name:         e.Name,
		WeeklySalary: amount(e.WeeklySalary),
		HoursWorked:  e.HoursWorked,
		HourlyRate:   amount(e.HourlyRate),
		Commission:   amount(e.Commission),
	}
}

func amount(v *int64) *payroll.Amount {
	if v == nil {
		return nil
	}
	a := payroll.Amount(*v)
	return &a
}

// Identities は名簿の各レコードを Build します。失敗したレコードは位置付きで報告されます。
func Identities(records []payroll.Record) ([]payroll.Identity, error) {
	out := make([]payroll.Identity, 0, len(records))
	for i, rec := range records {
		id, err := payroll.Build(rec)
		if err != nil {
			return nil, fmt.Errorf("roster: record %d (%q): %w", i, rec.ID, err)
		}
		out = append(out, id)
	}
	return out, nil
}
