package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/clipdeck/internal/backend"
	"github.com/rpggio/clipdeck/internal/config"
	"github.com/rpggio/clipdeck/internal/logging"
	"github.com/rpggio/clipdeck/internal/sqlite"
	"github.com/rpggio/clipdeck/internal/transport"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clipdeck-server",
		Short:        "Reference clipdeck REST backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(newAddKeyCmd())
	return root
}

func newAddKeyCmd() *cobra.Command {
	var userID, token, description string
	cmd := &cobra.Command{
		Use:   "add-key",
		Short: "Register a bearer token for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := openDB(cfg.DB.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			if token == "" {
				token = uuid.NewString()
			}
			if err := sqlite.NewAPIKeyRepository(db).Add(cmd.Context(), token, userID, description); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user ID owning the token")
	cmd.Flags().StringVar(&token, "token", "", "token to register (generated when empty)")
	cmd.Flags().StringVar(&description, "description", "", "free-form note")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, closer, err := logging.Open(cfg.Log.Path, os.Stdout, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log file error: %w", err)
	}
	defer closer.Close()

	db, err := openDB(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return err
	}
	defer db.Close()

	svc := backend.NewService(
		sqlite.NewProjectRepository(db),
		sqlite.NewClipRepository(db),
		sqlite.NewStatsRepository(db),
		logger,
	)
	keys := sqlite.NewAPIKeyRepository(db)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           transport.NewServer(svc, transport.AuthMiddleware(keys), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr(), "db", cfg.DB.Path)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

func openDB(path string) (*sqlite.DB, error) {
	if err := ensureDBDir(path); err != nil {
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
