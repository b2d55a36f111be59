package payroll

import (
	"fmt"
	"time"
)

// Record は給与レコードの永続化形式です。種別ごとに必要なフィールドだけが設定されます。
type Record struct {
	ID           string
	Kind         Kind
	Name         string
	WeeklySalary *Amount
	HoursWorked  *float64
	HourlyRate   *Amount
	Commission   *Amount
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type field struct {
	name string
	set  bool
}

func (r Record) fields() []field {
	return []field{
		{name: "weekly_salary", set: r.WeeklySalary != nil},
		{name: "hours_worked", set: r.HoursWorked != nil},
		{name: "hourly_rate", set: r.HourlyRate != nil},
		{name: "commission", set: r.Commission != nil},
	}
}

// shapes は種別ごとの必須フィールドです。ここに無いフィールドは指定できません。
var shapes = map[Kind][]string{
	KindSalary:             {"weekly_salary"},
	KindSecretary:          {"weekly_salary"},
	KindCommission:         {"weekly_salary", "commission"},
	KindHourly:             {"hours_worked", "hourly_rate"},
	KindTemporarySecretary: {"hours_worked", "hourly_rate"},
	KindDisgruntled:        {},
}

// CheckShape はフィールド構成が種別の形と一致するかを検証します。
func (r Record) CheckShape() error {
	kind, err := normalizeKind(r.Kind)
	if err != nil {
		return fmt.Errorf("kind %q: %w", r.Kind, err)
	}

	required := make(map[string]bool, len(shapes[kind]))
	for _, name := range shapes[kind] {
		required[name] = true
	}

	for _, f := range r.fields() {
		switch {
		case required[f.name] && !f.set:
			return &ConstructionMismatchError{Kind: kind, Field: f.name, Reason: "is required"}
		case !required[f.name] && f.set:
			return &ConstructionMismatchError{Kind: kind, Field: f.name, Reason: "is not part of this shape"}
		}
	}
	return nil
}

// Build はレコードから対応するバリアントを生成します。
func Build(r Record) (Identity, error) {
	if err := r.CheckShape(); err != nil {
		return nil, err
	}

	kind, _ := normalizeKind(r.Kind)
	switch kind {
	case KindSalary:
		return NewSalaryEmployee(r.ID, r.Name, *r.WeeklySalary)
	case KindSecretary:
		return NewSecretary(r.ID, r.Name, *r.WeeklySalary)
	case KindCommission:
		return NewCommissionEmployee(r.ID, r.Name, *r.WeeklySalary, *r.Commission)
	case KindHourly:
		return NewHourlyEmployee(r.ID, r.Name, *r.HoursWorked, *r.HourlyRate)
	case KindTemporarySecretary:
		return NewTemporarySecretary(r.ID, r.Name, *r.HoursWorked, *r.HourlyRate)
	case KindDisgruntled:
		return NewDisgruntledEmployee(r.ID, r.Name)
	default:
		return nil, ErrUnknownKind
	}
}

// RecordOf は既知のバリアントをレコード形式に変換します。
func RecordOf(v Identity) (Record, error) {
	if v == nil {
		return Record{}, ErrUnknownKind
	}
	r := Record{ID: v.ID(), Name: v.Name()}
	switch e := v.(type) {
	case *SalaryEmployee:
		return RecordOf(*e)
	case *HourlyEmployee:
		return RecordOf(*e)
	case *CommissionEmployee:
		return RecordOf(*e)
	case *Secretary:
		return RecordOf(*e)
	case *TemporarySecretary:
		return RecordOf(*e)
	case *DisgruntledEmployee:
		return RecordOf(*e)
	case SalaryEmployee:
		r.Kind = KindSalary
		r.WeeklySalary = amountPtr(e.weeklySalary)
	case Secretary:
		r.Kind = KindSecretary
		r.WeeklySalary = amountPtr(e.weeklySalary)
	case CommissionEmployee:
		r.Kind = KindCommission
		r.WeeklySalary = amountPtr(e.weeklySalary)
		r.Commission = amountPtr(e.commission)
	case HourlyEmployee:
		r.Kind = KindHourly
		r.HoursWorked = floatPtr(e.hoursWorked)
		r.HourlyRate = amountPtr(e.hourlyRate)
	case TemporarySecretary:
		r.Kind = KindTemporarySecretary
		r.HoursWorked = floatPtr(e.hoursWorked)
		r.HourlyRate = amountPtr(e.hourlyRate)
	case DisgruntledEmployee:
		r.Kind = KindDisgruntled
	default:
		return Record{}, fmt.Errorf("%T: %w", v, ErrUnknownKind)
	}
	return r, nil
}

func amountPtr(a Amount) *Amount {
	return &a
}

func floatPtr(f float64) *float64 {
	return &f
}

func cloneRecord(r *Record) *Record {
	if r == nil {
		return nil
	}
	clone := *r
	if r.WeeklySalary != nil {
		clone.WeeklySalary = amountPtr(*r.WeeklySalary)
	}
	if r.HoursWorked != nil {
		clone.HoursWorked = floatPtr(*r.HoursWorked)
	}
	if r.HourlyRate != nil {
		clone.HourlyRate = amountPtr(*r.HourlyRate)
	}
	if r.Commission != nil {
		clone.Commission = amountPtr(*r.Commission)
	}
	return &clone
}
