package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	pgdb "github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/db/postgres"
)

// RunRepository は給与計算結果を PostgreSQL に保存します。
type RunRepository struct {
	pool pgdb.Queryer
}

var _ payroll.RunRepository = (*RunRepository)(nil)

// NewRunRepository は RunRepository を生成します。
func NewRunRepository(pool pgdb.Queryer) *RunRepository {
	return &RunRepository{pool: pool}
}

// Save は実行結果と明細を保存します。呼び出し側のトランザクション内で実行されることを前提とします。
func (r *RunRepository) Save(ctx context.Context, run *payroll.Run) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	if _, err := exec.Exec(ctx, `INSERT INTO payroll_runs (id, executed_at) VALUES ($1, $2)`, run.ID, run.ExecutedAt); err != nil {
		return fmt.Errorf("postgres: insert run: %w", err)
	}

	for position, line := range run.Lines {
		if _, err := exec.Exec(ctx, `
            INSERT INTO payroll_run_lines (run_id, position, record_id, name, amount)
            VALUES ($1, $2, $3, $4, $5)
        `, run.ID, position, line.ID, line.Name, int64(line.Amount)); err != nil {
			return fmt.Errorf("postgres: insert run line %d: %w", position, err)
		}
	}

	return nil
}

// FindByID は実行結果を明細の順序どおりに取得します。
func (r *RunRepository) FindByID(ctx context.Context, id string) (*payroll.Run, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var (
		runID      string
		executedAt time.Time
	)
	if err := exec.QueryRow(ctx, `SELECT id, executed_at FROM payroll_runs WHERE id = $1`, id).Scan(&runID, &executedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentationCode) {
			return nil, payroll.ErrRunNotFound
		}
		return nil, err
	}

	rows, err := exec.Query(ctx, `
        SELECT record_id, name, amount
          FROM payroll_run_lines
         WHERE run_id = $1
         ORDER BY position ASC
    `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	run := &payroll.Run{ID: runID, ExecutedAt: executedAt, Lines: []payroll.Line{}}
	for rows.Next() {
		var (
			line   payroll.Line
			amount int64
		)
		if err := rows.Scan(&line.ID, &line.Name, &amount); err != nil {
			return nil, err
		}
		line.Amount = payroll.Amount(amount)
		run.Lines = append(run.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return run, nil
}
