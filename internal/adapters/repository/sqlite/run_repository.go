package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
)

// RunRepository は SQLite に給与計算結果を保存します。
type RunRepository struct {
	db Queryer
}

var _ payroll.RunRepository = (*RunRepository)(nil)

// NewRunRepository は RunRepository を生成します。
func NewRunRepository(db Queryer) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Save(ctx context.Context, run *payroll.Run) error {
	exec := queryerFromContext(ctx, r.db)
	if _, err := exec.ExecContext(ctx, `INSERT INTO payroll_runs (id, executed_at) VALUES (?, ?)`, run.ID, formatTime(run.ExecutedAt)); err != nil {
		return fmt.Errorf("sqlite: insert run: %w", err)
	}
	for position, line := range run.Lines {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO payroll_run_lines (run_id, position, record_id, name, amount) VALUES (?, ?, ?, ?, ?)`,
			run.ID, position, line.ID, line.Name, int64(line.Amount),
		); err != nil {
			return fmt.Errorf("sqlite: insert run line %d: %w", position, err)
		}
	}
	return nil
}

func (r *RunRepository) FindByID(ctx context.Context, id string) (*payroll.Run, error) {
	exec := queryerFromContext(ctx, r.db)

	var executedAt string
	run := &payroll.Run{Lines: []payroll.Line{}}
	if err := exec.QueryRowContext(ctx, `SELECT id, executed_at FROM payroll_runs WHERE id = ?`, id).Scan(&run.ID, &executedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payroll.ErrRunNotFound
		}
		return nil, err
	}

	var err error
	if run.ExecutedAt, err = parseTime(executedAt); err != nil {
		return nil, fmt.Errorf("sqlite: executed_at: %w", err)
	}

	rows, err := exec.QueryContext(ctx, `SELECT record_id, name, amount FROM payroll_run_lines WHERE run_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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
	return run, rows.Err()
}
