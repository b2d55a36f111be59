package handler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"google.golang.org/protobuf/types/known/structpb"
)

// fields は Struct のフィールドを型付きで取り出すための薄いラッパーです。
type fields map[string]*structpb.Value

func fieldsOf(s *structpb.Struct) fields {
	if s == nil {
		return fields{}
	}
	return fields(s.GetFields())
}

func (f fields) has(key string) bool {
	v, ok := f[key]
	if !ok || v == nil {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

func (f fields) str(key string) (string, error) {
	if !f.has(key) {
		return "", nil
	}
	sv, ok := f[key].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s: must be a string", key)
	}
	return sv.StringValue, nil
}

func (f fields) number(key string) (*float64, error) {
	if !f.has(key) {
		return nil, nil
	}
	nv, ok := f[key].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return nil, fmt.Errorf("%s: must be a number", key)
	}
	n := nv.NumberValue
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%s: must be finite", key)
	}
	return &n, nil
}

func (f fields) amount(key string) (*payroll.Amount, error) {
	n, err := f.number(key)
	if err != nil || n == nil {
		return nil, err
	}
	if *n != math.Trunc(*n) || math.Abs(*n) > 1<<53 {
		return nil, fmt.Errorf("%s: must be a whole amount", key)
	}
	a := payroll.Amount(*n)
	return &a, nil
}

func (f fields) object(key string) (fields, error) {
	if !f.has(key) {
		return nil, nil
	}
	sv, ok := f[key].GetKind().(*structpb.Value_StructValue)
	if !ok {
		return nil, fmt.Errorf("%s: must be an object", key)
	}
	return fieldsOf(sv.StructValue), nil
}

func (f fields) list(key string) ([]*structpb.Value, error) {
	if !f.has(key) {
		return nil, nil
	}
	lv, ok := f[key].GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("%s: must be a list", key)
	}
	return lv.ListValue.GetValues(), nil
}

func (f fields) stringList(key string) ([]string, error) {
	values, err := f.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for i, v := range values {
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: must be a string", key, i)
		}
		out = append(out, sv.StringValue)
	}
	return out, nil
}

func (f fields) recordList(key string) ([]payroll.Record, error) {
	values, err := f.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]payroll.Record, 0, len(values))
	for i, v := range values {
		sv, ok := v.GetKind().(*structpb.Value_StructValue)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: must be an object", key, i)
		}
		rec, err := decodeRecord(fieldsOf(sv.StructValue))
		if err != nil {
			return nil, fmt.Errorf("%s[%d].%w", key, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeRecord(f fields) (payroll.Record, error) {
	var (
		rec payroll.Record
		err error
	)
	if rec.ID, err = f.str("id"); err != nil {
		return payroll.Record{}, err
	}
	if rec.Name, err = f.str("name"); err != nil {
		return payroll.Record{}, err
	}
	kind, err := f.str("kind")
	if err != nil {
		return payroll.Record{}, err
	}
	rec.Kind = payroll.Kind(strings.TrimSpace(kind))
	if rec.WeeklySalary, err = f.amount("weekly_salary"); err != nil {
		return payroll.Record{}, err
	}
	if rec.HoursWorked, err = f.number("hours_worked"); err != nil {
		return payroll.Record{}, err
	}
	if rec.HourlyRate, err = f.amount("hourly_rate"); err != nil {
		return payroll.Record{}, err
	}
	if rec.Commission, err = f.amount("commission"); err != nil {
		return payroll.Record{}, err
	}
	return rec, nil
}

func encodeRecord(rec *payroll.Record) map[string]any {
	out := map[string]any{
		"id":   rec.ID,
		"kind": string(rec.Kind),
		"name": rec.Name,
	}
	if rec.WeeklySalary != nil {
		out["weekly_salary"] = float64(*rec.WeeklySalary)
	}
	if rec.HoursWorked != nil {
		out["hours_worked"] = *rec.HoursWorked
	}
	if rec.HourlyRate != nil {
		out["hourly_rate"] = float64(*rec.HourlyRate)
	}
	if rec.Commission != nil {
		out["commission"] = float64(*rec.Commission)
	}
	if !rec.CreatedAt.IsZero() {
		out["created_at"] = rec.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !rec.UpdatedAt.IsZero() {
		out["updated_at"] = rec.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return out
}

func encodeRun(run *payroll.Run) map[string]any {
	lines := make([]any, 0, len(run.Lines))
	for _, line := range run.Lines {
		lines = append(lines, map[string]any{
			"id":     line.ID,
			"name":   line.Name,
			"amount": float64(line.Amount),
		})
	}
	return map[string]any{
		"id":          run.ID,
		"executed_at": run.ExecutedAt.UTC().Format(time.RFC3339Nano),
		"lines":       lines,
	}
}
