package payroll

import (
	"fmt"
	"math"
)

// Amount は支給額を通貨単位の整数で表します。
type Amount int64

// DisgruntledPay は DisgruntledEmployee に常に支給される固定額です。
const DisgruntledPay Amount = 1_000_000

// MaxAmount は金額と支給額の上限 (2^53 - 1) です。
const MaxAmount Amount = 1<<53 - 1

// wholeTolerance は勤務時間 × 時給が整数とみなせる相対誤差です。
const wholeTolerance = 1e-9

// Kind は給与レコードの種別です。
type Kind string

const (
	KindSalary             Kind = "salary"
	KindHourly             Kind = "hourly"
	KindCommission         Kind = "commission"
	KindSecretary          Kind = "secretary"
	KindTemporarySecretary Kind = "temporary_secretary"
	KindDisgruntled        Kind = "disgruntled"
)

// Identity は給与計算に渡されるレコードの識別情報です。
type Identity interface {
	ID() string
	Name() string
}

// Payee は支給額を計算できるレコードです。系譜は問いません。
type Payee interface {
	Identity
	ComputePay() Amount
}

// Clerical は事務作業を行えるレコードです。
type Clerical interface {
	Identity
	PerformClerical(hours float64) string
}

// Employee は社員系譜に属するバリアントの閉じた集合です。
// パッケージ外から実装することはできません。
type Employee interface {
	Payee
	employee()
}

type person struct {
	id   string
	name string
}

func (p person) ID() string   { return p.id }
func (p person) Name() string { return p.name }
func (person) employee()      {}

// SalaryEmployee は固定週給の社員です。
type SalaryEmployee struct {
	person
	weeklySalary Amount
}

// NewSalaryEmployee は SalaryEmployee を生成します。
func NewSalaryEmployee(id, name string, weeklySalary Amount) (*SalaryEmployee, error) {
	p, err := newPerson(id, name)
	if err != nil {
		return nil, err
	}
	if err := checkAmount("weekly_salary", weeklySalary); err != nil {
		return nil, err
	}
	return &SalaryEmployee{person: p, weeklySalary: weeklySalary}, nil
}

// WeeklySalary は週給を返します。
func (e SalaryEmployee) WeeklySalary() Amount { return e.weeklySalary }

// ComputePay は週給をそのまま返します。
func (e SalaryEmployee) ComputePay() Amount { return e.weeklySalary }

// HourlyEmployee は時給制の社員です。
type HourlyEmployee struct {
	person
	hoursWorked float64
	hourlyRate  Amount
}

// NewHourlyEmployee は HourlyEmployee を生成します。
func NewHourlyEmployee(id, name string, hoursWorked float64, hourlyRate Amount) (*HourlyEmployee, error) {
	p, err := newPerson(id, name)
	if err != nil {
		return nil, err
	}
	if hoursWorked < 0 || math.IsNaN(hoursWorked) || math.IsInf(hoursWorked, 0) {
		return nil, fmt.Errorf("hours_worked: %w", ErrInvalidHours)
	}
	if err := checkAmount("hourly_rate", hourlyRate); err != nil {
		return nil, err
	}
	if _, err := hourlyPay(hoursWorked, hourlyRate); err != nil {
		return nil, err
	}
	return &HourlyEmployee{person: p, hoursWorked: hoursWorked, hourlyRate: hourlyRate}, nil
}

// hourlyPay は勤務時間 × 時給を Amount で返します。
// 積が MaxAmount を超える場合と通貨単位の整数にならない場合はエラーです。
func hourlyPay(hoursWorked float64, hourlyRate Amount) (Amount, error) {
	product := hoursWorked * float64(hourlyRate)
	if product > float64(MaxAmount) {
		return 0, fmt.Errorf("hours_worked * hourly_rate: %w", ErrInvalidAmount)
	}
	whole := math.Round(product)
	if math.Abs(product-whole) > wholeTolerance*math.Max(1, whole) {
		return 0, fmt.Errorf("hours_worked * hourly_rate = %v is not a whole amount: %w", product, ErrInvalidHours)
	}
	return Amount(whole), nil
}

func checkAmount(field string, v Amount) error {
	if v < 0 || v > MaxAmount {
		return fmt.Errorf("%s: %w", field, ErrInvalidAmount)
	}
	return nil
}

func (e HourlyEmployee) HoursWorked() float64 { return e.hoursWorked }
func (e HourlyEmployee) HourlyRate() Amount   { return e.hourlyRate }

// ComputePay は勤務時間 × 時給を返します。積は生成時に整数であることを検証済みです。
func (e HourlyEmployee) ComputePay() Amount {
	pay, _ := hourlyPay(e.hoursWorked, e.hourlyRate)
	return pay
}

// CommissionEmployee は週給に歩合を上乗せする社員です。
type CommissionEmployee struct {
	SalaryEmployee
	commission Amount
}

// NewCommissionEmployee は CommissionEmployee を生成します。
func NewCommissionEmployee(id, name string, weeklySalary, commission Amount) (*CommissionEmployee, error) {
	base, err := NewSalaryEmployee(id, name, weeklySalary)
	if err != nil {
		return nil, err
	}
	if err := checkAmount("commission", commission); err != nil {
		return nil, err
	}
	if weeklySalary > MaxAmount-commission {
		return nil, fmt.Errorf("weekly_salary + commission: %w", ErrInvalidAmount)
	}
	return &CommissionEmployee{SalaryEmployee: *base, commission: commission}, nil
}

func (e CommissionEmployee) Commission() Amount { return e.commission }

// ComputePay は週給ルールの結果を先に求め、歩合を加算します。
func (e CommissionEmployee) ComputePay() Amount {
	fixed := e.SalaryEmployee.ComputePay()
	return fixed + e.commission
}

// Secretary は週給制で事務作業も行う社員です。
type Secretary struct {
	SalaryEmployee
}

// NewSecretary は Secretary を生成します。
func NewSecretary(id, name string, weeklySalary Amount) (*Secretary, error) {
	base, err := NewSalaryEmployee(id, name, weeklySalary)
	if err != nil {
		return nil, err
	}
	return &Secretary{SalaryEmployee: *base}, nil
}

// PerformClerical は事務作業の記録を返します。
func (e Secretary) PerformClerical(hours float64) string {
	return clericalReport(e.Name(), hours)
}

// TemporarySecretary は事務職として働くが、給与上は時給制として扱う社員です。
// 生成と支給額の計算はどちらも HourlyEmployee に固定されています。
type TemporarySecretary struct {
	HourlyEmployee
}

// NewTemporarySecretary は TemporarySecretary を生成します。
func NewTemporarySecretary(id, name string, hoursWorked float64, hourlyRate Amount) (*TemporarySecretary, error) {
	base, err := NewHourlyEmployee(id, name, hoursWorked, hourlyRate)
	if err != nil {
		return nil, err
	}
	return &TemporarySecretary{HourlyEmployee: *base}, nil
}

func (e TemporarySecretary) ComputePay() Amount {
	return e.HourlyEmployee.ComputePay()
}

// PerformClerical は事務作業の記録を返します。
func (e TemporarySecretary) PerformClerical(hours float64) string {
	return clericalReport(e.Name(), hours)
}

// DisgruntledEmployee は社員系譜に属さず、Payee を直接満たすレコードです。
type DisgruntledEmployee struct {
	id   string
	name string
}

// NewDisgruntledEmployee は DisgruntledEmployee を生成します。
func NewDisgruntledEmployee(id, name string) (*DisgruntledEmployee, error) {
	p, err := newPerson(id, name)
	if err != nil {
		return nil, err
	}
	return &DisgruntledEmployee{id: p.id, name: p.name}, nil
}

func (e DisgruntledEmployee) ID() string         { return e.id }
func (e DisgruntledEmployee) Name() string       { return e.name }
func (e DisgruntledEmployee) ComputePay() Amount { return DisgruntledPay }

var (
	_ Employee = SalaryEmployee{}
	_ Employee = HourlyEmployee{}
	_ Employee = CommissionEmployee{}
	_ Employee = Secretary{}
	_ Employee = TemporarySecretary{}
	_ Payee    = DisgruntledEmployee{}
	_ Clerical = Secretary{}
	_ Clerical = TemporarySecretary{}
)

func newPerson(id, name string) (person, error) {
	normalizedID, err := normalizeID(id)
	if err != nil {
		return person{}, err
	}
	normalizedName, err := normalizeName(name)
	if err != nil {
		return person{}, err
	}
	return person{id: normalizedID, name: normalizedName}, nil
}

func clericalReport(name string, hours float64) string {
	return fmt.Sprintf("%s expends %s hours doing office paperwork.", name, formatHours(hours))
}
