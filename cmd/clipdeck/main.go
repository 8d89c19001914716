package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpggio/clipdeck/internal/apiclient"
	"github.com/rpggio/clipdeck/internal/auth"
	"github.com/rpggio/clipdeck/internal/client"
	"github.com/rpggio/clipdeck/internal/config"
	"github.com/rpggio/clipdeck/internal/logging"
	"github.com/rpggio/clipdeck/internal/store"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// rootOptions holds the global flags.
type rootOptions struct {
	apiURL string
	token  string
	json   bool
}

// app is the per-invocation wiring shared by subcommands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	client *client.Client
	out    io.Writer
	json   bool
	closer io.Closer
}

func (a *app) Close() error {
	return a.closer.Close()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "clipdeck",
		Short:         "Manage clipdeck video clipping projects",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "backend base URL (overrides CLIPDECK_API_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (overrides CLIPDECK_TOKEN)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of formatted text")

	root.AddCommand(
		newStatsCmd(opts),
		newProjectsCmd(opts),
		newProcessCmd(opts),
		newMCPCmd(opts),
	)

	return root
}

// newApp loads configuration and wires the client for one command.
func (o *rootOptions) newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if o.apiURL != "" {
		cfg.API.URL = o.apiURL
	}
	if o.token != "" {
		cfg.Auth.Token = o.token
	}

	// stdout carries command output and MCP JSON-RPC; logs go to stderr.
	logger, closer, err := logging.Open(cfg.Log.Path, cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log file error: %w", err)
	}

	api, err := apiclient.New(cfg.API.URL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithProcessTimeout(cfg.API.ProcessTimeout),
		apiclient.WithUserAgent("clipdeck/"+version),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	c := client.New(client.Options{
		API:          api,
		Tokens:       tokenProvider(cmd.Context(), cfg.Auth),
		Store:        store.Default(),
		StaleTime:    cfg.Cache.StaleTime,
		StatsRefresh: cfg.Cache.StatsRefresh,
		Logger:       logger,
	})

	return &app{
		cfg:    cfg,
		logger: logger,
		client: c,
		out:    cmd.OutOrStdout(),
		json:   o.json,
		closer: closer,
	}, nil
}

// tokenProvider prefers a static token and falls back to client credentials.
// With neither configured every call fails with auth.ErrMissingToken.
func tokenProvider(ctx context.Context, cfg config.AuthConfig) auth.TokenProvider {
	switch {
	case cfg.Token != "":
		return auth.Static(cfg.Token)
	case cfg.TokenURL != "" && cfg.ClientID != "":
		return auth.ClientCredentials(ctx, auth.ClientCredentialsConfig{
			TokenURL:     cfg.TokenURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
		})
	default:
		return auth.Static("")
	}
}
