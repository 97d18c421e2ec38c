// Command reschedctl runs the batch side of the reschedule backend: building
// the baseline snapshot from the spreadsheet and seeding, reconciling or
// repairing the database without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-reschedule-backend/internal/baseline"
	"github.com/tbourn/go-reschedule-backend/internal/config"
	httpapi "github.com/tbourn/go-reschedule-backend/internal/http"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
	"github.com/tbourn/go-reschedule-backend/internal/services"
	"github.com/tbourn/go-reschedule-backend/internal/sysutil"
)

// globalOptions are the persistent flags shared by every subcommand. Empty
// values fall back to the environment configuration.
type globalOptions struct {
	dbPath       string
	baselinePath string
	logLevel     string
}

// app carries what the subcommands need once the root PreRun has resolved
// configuration and logging.
type app struct {
	opts globalOptions
	cfg  config.Config
	log  zerolog.Logger
}

func (a *app) dbPath() string {
	return sysutil.FirstNonEmpty(a.opts.dbPath, a.cfg.DBPath)
}

func (a *app) baselinePath() string {
	return sysutil.FirstNonEmpty(a.opts.baselinePath, a.cfg.Data.BaselinePath)
}

// openDB opens and migrates the configured database.
func (a *app) openDB() (*gorm.DB, func(), error) {
	db, err := repo.OpenSQLite(a.dbPath())
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return db, closeFn, nil
}

func (a *app) reconcileService(db *gorm.DB, base *baseline.Provider) *services.ReconcileService {
	return &services.ReconcileService{
		DB:        db,
		Repo:      httpapi.RepoShim(),
		Baseline:  base,
		BatchSize: a.cfg.Data.ImportBatchSize,
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "reschedctl",
		Short:         "Batch tooling for the reschedule backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			level := sysutil.FirstNonEmpty(a.opts.logLevel, cfg.LogLevel)
			a.log = sysutil.SetupLogger(level, cfg.LogPretty, cmd.ErrOrStderr())
			cmd.SetContext(a.log.WithContext(cmd.Context()))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.dbPath, "db", "", "SQLite database path (default: $DB_PATH)")
	pf.StringVar(&a.opts.baselinePath, "baseline", "", "Baseline snapshot path (default: $BASELINE_PATH)")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "Log level (default: $LOG_LEVEL)")

	root.AddCommand(
		newIngestCmd(a),
		newSeedCmd(a),
		newReconcileCmd(a),
		newBackfillDatesCmd(a),
	)
	return root
}

// execute runs cmd and logs a failure at the outermost level. It returns the
// process exit code.
func execute(ctx context.Context, cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("reschedctl failed")
		return 1
	}
	return 0
}

func main() {
	_ = godotenv.Load()

	os.Exit(execute(context.Background(), newRootCmd()))
}
