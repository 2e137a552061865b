package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/roster/internal/auth"
	"github.com/mmynk/roster/internal/config"
	"github.com/mmynk/roster/internal/metrics"
	"github.com/mmynk/roster/internal/middleware"
	"github.com/mmynk/roster/internal/service"
	"github.com/mmynk/roster/internal/shell"
	"github.com/mmynk/roster/internal/storage"
	"github.com/mmynk/roster/internal/storage/sqlite"
	"github.com/mmynk/roster/internal/storage/textfile"
	"github.com/mmynk/roster/pkg/logging"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.SetupWithLevel(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	svc := service.NewRosterService(store, m)

	if err := svc.Load(ctx); err != nil {
		var lineErr *textfile.LineError
		if errors.As(err, &lineErr) {
			fmt.Fprintf(os.Stderr, "Cannot read %s: %v\n", cfg.DataFile, lineErr)
		} else {
			fmt.Fprintf(os.Stderr, "Cannot load student records: %v\n", err)
		}
		store.Close()
		os.Exit(1)
	}
	slog.Debug("Backend ready", "backend", cfg.Backend)

	sh := shell.New(svc, os.Stdin, os.Stdout)
	if cfg.Locked() {
		authenticator, err := auth.NewPassphraseAuthenticator(cfg.PassphraseHash)
		if err != nil {
			slog.Error("Invalid ROSTER_PASSPHRASE_HASH", "error", err)
			store.Close()
			os.Exit(1)
		}
		sessions, err := auth.NewSessionManager(cfg.SessionTTL)
		if err != nil {
			slog.Error("Failed to create session manager", "error", err)
			store.Close()
			os.Exit(1)
		}
		guard := middleware.NewSessionGuard(sessions, sh.PassphraseUnlocker(authenticator, sessions, cfg.Operator))
		sh.Use(guard.RequireSession())
	}
	sh.Use(middleware.Logging(m))

	err = sh.Run(ctx)
	// A second interrupt during the save below terminates the process.
	stop()
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		slog.Info("Interrupted, saving roster")
	default:
		slog.Error("Shell stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Input error: %v\n", err)
	}

	// Save with a fresh context so an interrupt still persists the roster.
	saveErr := svc.Save(context.Background())
	if saveErr != nil {
		slog.Error("Failed to save roster", "error", saveErr)
		fmt.Fprintln(os.Stdout, "Failed to save data.")
	} else {
		fmt.Fprintln(os.Stdout, "Data saved. Goodbye.")
		logLatestSnapshot(store)
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	if saveErr != nil {
		store.Close()
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "database", cfg.DBPath)
		return store, nil
	default:
		slog.Info("Storage initialized", "file", cfg.DataFile)
		return textfile.New(cfg.DataFile), nil
	}
}

// logLatestSnapshot records the id of the save just made, for backends that
// keep a save history.
func logLatestSnapshot(store storage.Store) {
	db, ok := store.(*sqlite.SQLiteStore)
	if !ok {
		return
	}
	snapshots, err := db.ListSnapshots(context.Background())
	if err != nil {
		slog.Warn("Failed to list snapshots", "error", err)
		return
	}
	if len(snapshots) > 0 {
		slog.Info("Snapshot recorded", "snapshot_id", snapshots[0].ID, "students", snapshots[0].StudentCount, "saves", len(snapshots))
	}
}
