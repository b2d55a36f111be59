package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	pgdb "github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/db/postgres"
)

const (
	uniqueViolationCode           = "23505"
	foreignKeyViolationCode       = "23503"
	checkViolationCode            = "23514"
	invalidTextRepresentationCode = "22P02"
)

const recordColumns = `id, kind, name, weekly_salary, hours_worked, hourly_rate, commission, created_at, updated_at`

// RecordRepository は PostgreSQL を利用した給与レコード永続化の実装です。
type RecordRepository struct {
	pool pgdb.Queryer
}

var _ payroll.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository は RecordRepository を生成します。
func NewRecordRepository(pool pgdb.Queryer) *RecordRepository {
	return &RecordRepository{pool: pool}
}

// Create は給与レコードを新規作成します。
func (r *RecordRepository) Create(ctx context.Context, rec *payroll.Record) (*payroll.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO payroll_records (id, kind, name, weekly_salary, hours_worked, hourly_rate, commission, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+recordColumns,
		rec.ID,
		string(rec.Kind),
		rec.Name,
		nullableAmount(rec.WeeklySalary),
		nullableFloat(rec.HoursWorked),
		nullableAmount(rec.HourlyRate),
		nullableAmount(rec.Commission),
		rec.CreatedAt,
		rec.UpdatedAt,
	)

	created, err := scanRecord(row)
	if err != nil {
		return nil, translateRecordPgError(err)
	}
	return created, nil
}

// Delete は給与レコードを削除します。
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return translateRecordPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}

// FindByID は ID で給与レコードを取得します。
func (r *RecordRepository) FindByID(ctx context.Context, id string) (*payroll.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+recordColumns+`
          FROM payroll_records
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanRecord(row)
	if err != nil {
		return nil, translateRecordPgError(err)
	}
	return found, nil
}

// List は給与レコードの一覧を作成順に取得します。
func (r *RecordRepository) List(ctx context.Context, filter payroll.ListRecordsFilter) ([]*payroll.Record, string, error) {
	if filter.Limit <= 0 {
		return nil, "", payroll.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", payroll.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 3)
	whereClause := ""
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		whereClause = " WHERE kind = $" + strconv.Itoa(len(args))
	}

	args = append(args, limitWithBuffer)
	limitPlaceholder := "$" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPlaceholder := "$" + strconv.Itoa(len(args))

	query := `
        SELECT ` + recordColumns + `
          FROM payroll_records` + whereClause + `
         ORDER BY created_at ASC, id ASC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateRecordPgError(err)
	}
	defer rows.Close()

	records := make([]*payroll.Record, 0, filter.Limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, "", translateRecordPgError(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", translateRecordPgError(err)
	}

	var nextToken string
	if len(records) == limitWithBuffer {
		records = records[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	return records, nextToken, nil
}

func scanRecord(row pgx.Row) (*payroll.Record, error) {
	var (
		id           string
		kind         string
		name         string
		weeklySalary sql.NullInt64
		hoursWorked  sql.NullFloat64
		hourlyRate   sql.NullInt64
		commission   sql.NullInt64
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(
		&id,
		&kind,
		&name,
		&weeklySalary,
		&hoursWorked,
		&hourlyRate,
		&commission,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrRecordNotFound
		}
		return nil, err
	}

	return &payroll.Record{
		ID:           id,
		Kind:         payroll.Kind(kind),
		Name:         name,
		WeeklySalary: amountFromNull(weeklySalary),
		HoursWorked:  floatFromNull(hoursWorked),
		HourlyRate:   amountFromNull(hourlyRate),
		Commission:   amountFromNull(commission),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func translateRecordPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return payroll.ErrRecordAlreadyExists
		case checkViolationCode:
			return payroll.ErrConstructionMismatch
		case foreignKeyViolationCode:
			return payroll.ErrRecordNotFound
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

func amountFromNull(v sql.NullInt64) *payroll.Amount {
	if !v.Valid {
		return nil
	}
	a := payroll.Amount(v.Int64)
	return &a
}

func floatFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
