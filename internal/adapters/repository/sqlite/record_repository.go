package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const recordColumns = `id, kind, name, weekly_salary, hours_worked, hourly_rate, commission, created_at, updated_at`

// RecordRepository は SQLite に給与レコードを保存します。
type RecordRepository struct {
	db Queryer
}

var _ payroll.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository は RecordRepository を生成します。
func NewRecordRepository(db Queryer) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Create(ctx context.Context, rec *payroll.Record) (*payroll.Record, error) {
	exec := queryerFromContext(ctx, r.db)
	_, err := exec.ExecContext(ctx, `
        INSERT INTO payroll_records (`+recordColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		string(rec.Kind),
		rec.Name,
		nullableAmount(rec.WeeklySalary),
		nullableFloat(rec.HoursWorked),
		nullableAmount(rec.HourlyRate),
		nullableAmount(rec.Commission),
		formatTime(rec.CreatedAt),
		formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return nil, translateError(err)
	}
	return r.FindByID(ctx, rec.ID)
}

func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	exec := queryerFromContext(ctx, r.db)
	res, err := exec.ExecContext(ctx, `DELETE FROM payroll_records WHERE id = ?`, id)
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) FindByID(ctx context.Context, id string) (*payroll.Record, error) {
	exec := queryerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM payroll_records WHERE id = ?`, id)
	return scanRecord(row)
}

func (r *RecordRepository) List(ctx context.Context, filter payroll.ListRecordsFilter) ([]*payroll.Record, string, error) {
	if filter.Limit <= 0 {
		return nil, "", payroll.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", payroll.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1
	query := `SELECT ` + recordColumns + ` FROM payroll_records`
	args := make([]any, 0, 3)
	if filter.Kind != nil {
		query += ` WHERE kind = ?`
		args = append(args, string(*filter.Kind))
	}
	query += ` ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`
	args = append(args, limitWithBuffer, filter.Offset)

	exec := queryerFromContext(ctx, r.db)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", translateError(err)
	}
	defer rows.Close()

	records := make([]*payroll.Record, 0, filter.Limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, "", err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var nextToken string
	if len(records) == limitWithBuffer {
		records = records[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}
	return records, nextToken, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*payroll.Record, error) {
	var (
		rec          payroll.Record
		kind         string
		weeklySalary sql.NullInt64
		hoursWorked  sql.NullFloat64
		hourlyRate   sql.NullInt64
		commission   sql.NullInt64
		createdAt    string
		updatedAt    string
	)
	if err := row.Scan(&rec.ID, &kind, &rec.Name, &weeklySalary, &hoursWorked, &hourlyRate, &commission, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payroll.ErrRecordNotFound
		}
		return nil, err
	}

	var err error
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("sqlite: created_at: %w", err)
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("sqlite: updated_at: %w", err)
	}

	rec.Kind = payroll.Kind(kind)
	if weeklySalary.Valid {
		a := payroll.Amount(weeklySalary.Int64)
		rec.WeeklySalary = &a
	}
	if hoursWorked.Valid {
		h := hoursWorked.Float64
		rec.HoursWorked = &h
	}
	if hourlyRate.Valid {
		a := payroll.Amount(hourlyRate.Int64)
		rec.HourlyRate = &a
	}
	if commission.Valid {
		a := payroll.Amount(commission.Int64)
		rec.Commission = &a
	}
	return &rec, nil
}

func translateError(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return payroll.ErrRecordAlreadyExists
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return payroll.ErrConstructionMismatch
		}
	}
	return err
}

func nullableAmount(v *payroll.Amount) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
