package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/todo/internal/config"
	"github.com/dohr-michael/todo/internal/secrets"
	"github.com/dohr-michael/todo/internal/storage"
	"github.com/dohr-michael/todo/internal/storage/dirstore"
	"github.com/dohr-michael/todo/internal/storage/sealed"
	"github.com/dohr-michael/todo/internal/storage/sqlitekv"
	"github.com/dohr-michael/todo/internal/tasks"
)

// session bundles what one invocation needs: settings, backend and store.
type session struct {
	cfg   *config.Config
	kv    storage.KV
	store *tasks.Store
	out   io.Writer
}

// openSession loads config, applies flag overrides, sets up logging to
// logOut and opens the task store.
func openSession(cmd *cli.Command, logOut io.Writer) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openSessionWith(cmd, cfg, logOut)
}

// openSessionWith opens the task store for an already loaded cfg.
func openSessionWith(cmd *cli.Command, cfg *config.Config, logOut io.Writer) (*session, error) {
	setupLogging(cmd, cfg, logOut)

	kv, err := openKV(cfg.Storage)
	if err != nil {
		return nil, err
	}
	slog.Debug("storage opened", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path, "encrypt", cfg.Storage.Encrypt)

	store := tasks.Open(kv, tasks.WithKey(cfg.Storage.Key))
	if cfg.Log.JournalEnabled() {
		store.OnChange(tasks.JournalTo(storage.NewJournal(cfg.Log.Journal), cfg.Storage.Encrypt))
	}

	return &session{
		cfg:   cfg,
		kv:    kv,
		store: store,
		out:   stdout(cmd),
	}, nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func (s *session) Close() error {
	return s.kv.Close()
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	configPath := cmd.String("config")
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if driver := cmd.String("storage"); driver != "" && driver != cfg.Storage.Driver {
		cfg.Storage.Driver = driver
		cfg.Storage.Path = config.DefaultStoragePath(driver)
	}
	if path := cmd.String("data"); path != "" {
		cfg.Storage.Path = path
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setupLogging(cmd *cli.Command, cfg *config.Config, w io.Writer) {
	level := cfg.Log.SlogLevel()
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// openLogFile opens the configured log file for appending.
func openLogFile(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func openKV(sc config.StorageConfig) (storage.KV, error) {
	var kv storage.KV
	switch sc.Driver {
	case config.DriverFile:
		kv = dirstore.New(sc.Path)
	case config.DriverSQLite:
		db, err := sqlitekv.Open(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		kv = db
	case config.DriverMemory:
		kv = storage.NewMemory()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}

	if !sc.Encrypt {
		return kv, nil
	}
	identity, err := secrets.LoadOrCreateIdentity(sc.KeyFile)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("load age identity: %w", err)
	}
	return sealed.New(kv, identity), nil
}

// resolveRef maps a row number or id under the --filter view to a task.
func resolveRef(cmd *cli.Command, store *tasks.Store) (tasks.Task, error) {
	f, err := tasks.ParseFilter(cmd.String("filter"))
	if err != nil {
		return tasks.Task{}, err
	}
	ref := cmd.Args().First()
	if ref == "" {
		return tasks.Task{}, fmt.Errorf("task reference required")
	}
	return store.Resolve(f, ref)
}

func filterFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "View the row number refers to (all, active, completed)",
		Value:   string(tasks.FilterAll),
	}
}
