package rexos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PradipLalpura/RexOS/internal/app"
	"github.com/PradipLalpura/RexOS/internal/config"
	"github.com/PradipLalpura/RexOS/internal/dates"
	"github.com/PradipLalpura/RexOS/internal/db"
	"github.com/PradipLalpura/RexOS/internal/logging"
	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/storage"
	"github.com/PradipLalpura/RexOS/internal/store"
)

// session is what a command needs once the database is open and the
// aggregate is loaded.
type session struct {
	cfg    config.Config
	dbPath string
	logger *zap.Logger
	repo   *storage.StateRepository
	store  *store.Store
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return app.DefaultConfigPath()
}

func loadConfig() (config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func resolveDBPath(cfg config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func withDB(run func(cfg config.Config, path string, sqldb *sql.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(cfg, path, sqldb)
}

func withStore(cmd *cobra.Command, run func(*session) error) error {
	return withDB(func(cfg config.Config, path string, sqldb *sql.DB) error {
		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		repo := storage.NewStateRepository(sqldb,
			storage.WithRetries(cfg.SaveRetries),
			storage.WithLogger(logger),
		)
		state, err := repo.Load(cmd.Context())
		if err != nil {
			return err
		}
		return run(&session{
			cfg:    cfg,
			dbPath: path,
			logger: logger,
			repo:   repo,
			store:  store.New(state, repo, logger),
		})
	})
}

// dispatch applies actions through the store. A persistence failure keeps the
// in-memory change and is reported as a warning, not a command error.
func (s *session) dispatch(cmd *cobra.Command, actions ...store.Action) (model.RexState, error) {
	state, err := s.store.DispatchAll(cmd.Context(), actions...)
	if errors.Is(err, store.ErrPersist) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: changes were not saved: %v\n", err)
		return state, nil
	}
	return state, err
}

func parseDateFlag(value string) (string, error) {
	return dates.OrToday(value)
}

func parseDayFlag(value string) (time.Time, error) {
	date, err := parseDateFlag(value)
	if err != nil {
		return time.Time{}, err
	}
	return dates.Parse(date)
}

func parsePositiveInt(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func validateNonNegative(values map[string]float64) error {
	for name, v := range values {
		if v < 0 {
			return fmt.Errorf("--%s must be >= 0", name)
		}
	}
	return nil
}

func validateClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().Format("15:04"), nil
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return "", fmt.Errorf("invalid --time %q (expected HH:MM)", value)
	}
	return t.Format("15:04"), nil
}

func printJSON(cmd *cobra.Command, name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s json: %w", name, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
