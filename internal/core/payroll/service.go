package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// IDGenerator は実行 ID を払い出します。
type IDGenerator func() string

// Observer は給与計算の結果を受け取ります。メトリクス収集に使われます。
type Observer interface {
	ObserveRun(lines int, elapsed time.Duration)
	ObserveFailure(err error)
}

type noopObserver struct{}

func (noopObserver) ObserveRun(int, time.Duration) {}
func (noopObserver) ObserveFailure(error)          {}

// Options は Service の任意の依存です。nil の項目は既定値になります。
type Options struct {
	Clock    Clock
	Tx       TransactionManager
	IDs      IDGenerator
	Observer Observer
}

// Service は給与計算に関するユースケースをまとめます。
type Service struct {
	records  RecordRepository
	runs     RunRepository
	clock    Clock
	tx       TransactionManager
	ids      IDGenerator
	observer Observer
}

// UseCase は給与計算ユースケースの公開インターフェースです。
type UseCase interface {
	RegisterRecord(ctx context.Context, in RegisterRecordInput) (*Record, error)
	GetRecord(ctx context.Context, in GetRecordInput) (*Record, error)
	ListRecords(ctx context.Context, in ListRecordsInput) (*ListRecordsResult, error)
	DeleteRecord(ctx context.Context, in DeleteRecordInput) error
	RunPayroll(ctx context.Context, in RunPayrollInput) (*Run, error)
	GetRun(ctx context.Context, in GetRunInput) (*Run, error)
}

var _ UseCase = (*Service)(nil)

// NewService は Service を生成します。
func NewService(records RecordRepository, runs RunRepository, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Tx == nil {
		opts.Tx = noopTransactionManager{}
	}
	if opts.IDs == nil {
		opts.IDs = uuid.NewString
	}
	if opts.Observer == nil {
		opts.Observer = noopObserver{}
	}
	return &Service{
		records:  records,
		runs:     runs,
		clock:    opts.Clock,
		tx:       opts.Tx,
		ids:      opts.IDs,
		observer: opts.Observer,
	}
}

// RegisterRecordInput はレコード登録時の入力です。
type RegisterRecordInput struct {
	Record Record
}

// GetRecordInput はレコード取得時の入力です。
type GetRecordInput struct {
	ID string
}

// DeleteRecordInput はレコード削除時の入力です。
type DeleteRecordInput struct {
	ID string
}

// ListRecordsInput は一覧取得時の入力です。
type ListRecordsInput struct {
	PageSize  int
	PageToken string
	Kind      *Kind
}

// ListRecordsResult は一覧取得結果を表します。
type ListRecordsResult struct {
	Records       []*Record
	NextPageToken string
}

// RunPayrollInput は給与計算の入力です。RecordIDs と Records のどちらか一方を指定します。
type RunPayrollInput struct {
	RecordIDs []string
	Records   []Record
}

// GetRunInput は実行結果取得時の入力です。
type GetRunInput struct {
	ID string
}

// RegisterRecord は給与レコードを検証して登録します。
func (s *Service) RegisterRecord(ctx context.Context, in RegisterRecordInput) (*Record, error) {
	record, err := normalizeRecord(in.Record)
	if err != nil {
		return nil, err
	}

	var created *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.records.FindByID(txCtx, record.ID)
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return ErrRecordAlreadyExists
		}

		now := s.clock.Now()
		record.CreatedAt = now
		record.UpdatedAt = now

		result, err := s.records.Create(txCtx, &record)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetRecord は給与レコードを取得します。
func (s *Service) GetRecord(ctx context.Context, in GetRecordInput) (*Record, error) {
	id, err := normalizeID(in.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}

	var result *Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.records.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteRecord は給与レコードを削除します。
func (s *Service) DeleteRecord(ctx context.Context, in DeleteRecordInput) error {
	id, err := normalizeID(in.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.records.Delete(txCtx, id)
	})
}

// ListRecords は給与レコードの一覧を取得します。
func (s *Service) ListRecords(ctx context.Context, in ListRecordsInput) (*ListRecordsResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var kindPtr *Kind
	if in.Kind != nil {
		kind, err := normalizeKind(*in.Kind)
		if err != nil {
			return nil, err
		}
		kindPtr = &kind
	}

	var (
		records   []*Record
		nextToken string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, token, err := s.records.List(txCtx, ListRecordsFilter{Kind: kindPtr, Limit: limit, Offset: offset})
		if err != nil {
			return err
		}
		records = result
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListRecordsResult{Records: records, NextPageToken: nextToken}, nil
}

// RunPayroll はレコードの支給額を計算し、結果を保存します。
// 途中で失敗した場合は何も保存しません。
func (s *Service) RunPayroll(ctx context.Context, in RunPayrollInput) (*Run, error) {
	if (len(in.RecordIDs) == 0) == (len(in.Records) == 0) {
		return nil, ErrInvalidRunInput
	}

	started := s.clock.Now()

	var run *Run
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		records, err := s.resolveRecords(txCtx, in)
		if err != nil {
			return err
		}

		payees := make([]Identity, 0, len(records))
		for _, record := range records {
			payee, err := Build(record)
			if err != nil {
				return fmt.Errorf("record %q: %w", record.ID, err)
			}
			payees = append(payees, payee)
		}

		lines, err := RunPayroll(payees)
		if err != nil {
			return err
		}

		candidate := &Run{ID: s.ids(), ExecutedAt: started, Lines: lines}
		if err := s.runs.Save(txCtx, candidate); err != nil {
			return err
		}
		run = candidate
		return nil
	})
	if err != nil {
		s.observer.ObserveFailure(err)
		return nil, err
	}

	s.observer.ObserveRun(len(run.Lines), s.clock.Now().Sub(started))
	return run, nil
}

// GetRun は保存済みの実行結果を取得します。
func (s *Service) GetRun(ctx context.Context, in GetRunInput) (*Run, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Run
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.runs.FindByID(txCtx, strings.TrimSpace(in.ID))
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) resolveRecords(ctx context.Context, in RunPayrollInput) ([]Record, error) {
	if len(in.Records) > 0 {
		records := make([]Record, len(in.Records))
		copy(records, in.Records)
		return records, nil
	}

	records := make([]Record, 0, len(in.RecordIDs))
	for _, raw := range in.RecordIDs {
		id, err := normalizeID(raw)
		if err != nil {
			return nil, fmt.Errorf("record_ids: %w", err)
		}
		found, err := s.records.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", id, err)
		}
		records = append(records, *found)
	}
	return records, nil
}

func normalizeRecord(in Record) (Record, error) {
	id, err := normalizeID(in.ID)
	if err != nil {
		return Record{}, err
	}
	name, err := normalizeName(in.Name)
	if err != nil {
		return Record{}, err
	}
	kind, err := normalizeKind(in.Kind)
	if err != nil {
		return Record{}, fmt.Errorf("kind %q: %w", in.Kind, err)
	}

	record := *cloneRecord(&in)
	record.ID = id
	record.Name = name
	record.Kind = kind

	if _, err := Build(record); err != nil {
		return Record{}, err
	}
	return record, nil
}
