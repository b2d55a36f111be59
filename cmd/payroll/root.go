package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/adapters/report"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/adapters/roster"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/config"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const listPageSize = 200

type app struct {
	logLevel  string
	logFormat string
	logger    *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "payroll",
		Short:         "Compute weekly pay for a roster of employees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(config.LoggingConfig{Level: a.logLevel, Format: a.logFormat})
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "log format (json, console)")

	cmd.AddCommand(a.newRunCmd(), a.newImportCmd(), a.newClericalCmd())
	return cmd
}

func (a *app) newRunCmd() *cobra.Command {
	var (
		rosterPath string
		dbPath     string
		ids        []string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run payroll for a roster file or for records stored in a local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				lines []payroll.Line
				err   error
			)
			switch {
			case rosterPath != "":
				lines, err = a.runRoster(rosterPath)
			case dbPath != "":
				lines, err = a.runStored(cmd.Context(), dbPath, ids)
			default:
				return errors.New("either --roster or --db is required")
			}
			if err != nil {
				a.logger.Error("payroll run failed", zap.Error(err))
				return err
			}
			return report.Write(cmd.OutOrStdout(), report.Format(format), lines)
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "", "YAML roster to run inline")
	cmd.Flags().StringVar(&dbPath, "db", "", "local database file holding imported records")
	cmd.Flags().StringSliceVar(&ids, "id", nil, "record ids to include, in order (defaults to every stored record)")
	cmd.Flags().StringVar(&format, "format", string(report.FormatText), "output format (text, table)")
	cmd.MarkFlagsMutuallyExclusive("roster", "db")
	cmd.MarkFlagsMutuallyExclusive("roster", "id")
	return cmd
}

func (a *app) runRoster(path string) ([]payroll.Line, error) {
	records, err := roster.Load(path)
	if err != nil {
		return nil, err
	}
	identities, err := roster.Identities(records)
	if err != nil {
		return nil, err
	}
	lines, err := payroll.RunPayroll(identities)
	if err != nil {
		return nil, err
	}
	a.logger.Info("payroll computed", zap.String("roster", path), zap.Int("lines", len(lines)))
	return lines, nil
}

func (a *app) runStored(ctx context.Context, dbPath string, ids []string) ([]payroll.Line, error) {
	store, err := openStore(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer store.db.Close()
	svc := store.svc

	if len(ids) == 0 {
		if ids, err = allRecordIDs(ctx, svc); err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			a.logger.Warn("no records stored", zap.String("db", dbPath))
			return []payroll.Line{}, nil
		}
	}

	run, err := svc.RunPayroll(ctx, payroll.RunPayrollInput{RecordIDs: ids})
	if err != nil {
		return nil, err
	}
	a.logger.Info("payroll run stored", zap.String("run_id", run.ID), zap.Int("lines", len(run.Lines)))
	return run.Lines, nil
}

func (a *app) newImportCmd() *cobra.Command {
	var rosterPath, dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Register every record of a roster file in a local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := roster.Load(rosterPath)
			if err != nil {
				return err
			}
			if _, err := roster.Identities(records); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, dbPath)
			if err != nil {
				return err
			}
			defer store.db.Close()

			// 全件を 1 トランザクションで登録し、途中で失敗したら何も残さない。
			err = store.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
				for _, rec := range records {
					if _, err := store.svc.RegisterRecord(txCtx, payroll.RegisterRecordInput{Record: rec}); err != nil {
						a.logger.Error("import failed", zap.String("id", rec.ID), zap.Error(err))
						return fmt.Errorf("record %q: %w", rec.ID, err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s\n", len(records), dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "", "YAML roster to import")
	cmd.Flags().StringVar(&dbPath, "db", "", "local database file")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func (a *app) newClericalCmd() *cobra.Command {
	var (
		rosterPath string
		hours      float64
	)

	cmd := &cobra.Command{
		Use:   "clerical",
		Short: "Ask every record of a roster to do office paperwork",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := roster.Load(rosterPath)
			if err != nil {
				return err
			}
			identities, err := roster.Identities(records)
			if err != nil {
				return err
			}
			reports, err := payroll.RunProductivity(identities, hours)
			if err != nil {
				a.logger.Error("productivity run failed", zap.Error(err))
				return err
			}
			return report.WriteClerical(cmd.OutOrStdout(), reports)
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "", "YAML roster")
	cmd.Flags().Float64Var(&hours, "hours", 40, "hours of paperwork per record")
	_ = cmd.MarkFlagRequired("roster")
	return cmd
}

type localStore struct {
	db  *sql.DB
	tx  *sqlite.TransactionManager
	svc *payroll.Service
}

func openStore(ctx context.Context, dbPath string) (*localStore, error) {
	db, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	tx := sqlite.NewTransactionManager(db)
	svc := payroll.NewService(sqlite.NewRecordRepository(db), sqlite.NewRunRepository(db), payroll.Options{
		Tx: tx,
	})
	return &localStore{db: db, tx: tx, svc: svc}, nil
}

func allRecordIDs(ctx context.Context, svc *payroll.Service) ([]string, error) {
	var (
		ids   []string
		token string
	)
	for {
		page, err := svc.ListRecords(ctx, payroll.ListRecordsInput{PageSize: listPageSize, PageToken: token})
		if err != nil {
			return nil, err
		}
		for _, rec := range page.Records {
			ids = append(ids, rec.ID)
		}
		if page.NextPageToken == "" {
			return ids, nil
		}
		token = page.NextPageToken
	}
}
