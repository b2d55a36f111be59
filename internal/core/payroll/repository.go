package payroll

import (
	"context"
	"time"
)

// RecordRepository は給与レコード永続化の抽象です。
type RecordRepository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, filter ListRecordsFilter) ([]*Record, string, error)
}

// ListRecordsFilter は一覧取得用フィルタです。
type ListRecordsFilter struct {
	Kind   *Kind
	Limit  int
	Offset int
}

// Run は一度の給与計算の実行結果です。
type Run struct {
	ID         string
	ExecutedAt time.Time
	Lines      []Line
}

// RunRepository は給与計算結果の永続化の抽象です。
type RunRepository interface {
	Save(ctx context.Context, run *Run) error
	FindByID(ctx context.Context, id string) (*Run, error)
}
