package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID            = errors.New("payroll: invalid id")
	ErrInvalidName          = errors.New("payroll: invalid name")
	ErrInvalidAmount        = errors.New("payroll: amount out of range")
	ErrInvalidHours         = errors.New("payroll: invalid hours")
	ErrUnknownKind          = errors.New("payroll: unknown kind")
	ErrConstructionMismatch = errors.New("payroll: construction mismatch")
	ErrMissingCapability    = errors.New("payroll: missing capability")
	ErrNegativePay          = errors.New("payroll: computed pay is negative")
	ErrInvalidPageSize      = errors.New("payroll: invalid page size")
	ErrInvalidPageToken     = errors.New("payroll: invalid page token")
	ErrInvalidRunInput      = errors.New("payroll: run needs either record ids or records")
	ErrRecordNotFound       = errors.New("payroll: record not found")
	ErrRecordAlreadyExists  = errors.New("payroll: record already exists")
	ErrRunNotFound          = errors.New("payroll: run not found")
)

// Capability は Dispatcher がレコードに要求する操作名です。
type Capability string

const (
	CapabilityComputePay Capability = "computePay"
	CapabilityClerical   Capability = "performClerical"
)

// MissingCapabilityError は要求された操作を持たないレコードを示します。
type MissingCapabilityError struct {
	ID         string
	Index      int
	Capability Capability
}

func (e *MissingCapabilityError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("payroll: record at index %d does not implement %s", e.Index, e.Capability)
	}
	return fmt.Sprintf("payroll: record %q does not implement %s", e.ID, e.Capability)
}

func (e *MissingCapabilityError) Unwrap() error { return ErrMissingCapability }

// ConstructionMismatchError は宣言された形と異なるフィールド構成での生成を示します。
type ConstructionMismatchError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ConstructionMismatchError) Error() string {
	return fmt.Sprintf("payroll: %s record: %s %s", e.Kind, e.Field, e.Reason)
}

func (e *ConstructionMismatchError) Unwrap() error { return ErrConstructionMismatch }
