package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/colors"
	"github.com/cristianoliveira/portal-notify/internal/config"
	"github.com/cristianoliveira/portal-notify/internal/devserver"
	"github.com/cristianoliveira/portal-notify/internal/logging"
	"github.com/cristianoliveira/portal-notify/internal/mockgen"
	"github.com/cristianoliveira/portal-notify/internal/ports"
	"github.com/spf13/cobra"
)

// ServeOptions holds the parameters for Serve.
type ServeOptions struct {
	Addr      string
	DBPath    string
	JWTSecret string
	Seed      bool
	Seeder    ports.FallbackGenerator
	Logger    logging.Logger
	// Ready, if set, is called once the repository is open and seeded.
	Ready func(*devserver.Server)
}

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var opts ServeOptions
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local notification backend",
		Long: `Run a local notification backend serving /api/notifications.

USAGE:
    portal-notify serve [OPTIONS]

The database is seeded with generated notifications the first time it is
created. Bearer tokens are required when serve_jwt_secret is set; mint one
with "portal-notify token issue".

OPTIONS:
    --addr <host:port>   Listen address (default: serve_addr)
    --db <path>          SQLite database path (default: serve_db_path)
    --no-seed            Do not seed an empty database
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.Addr = config.Get("serve_addr", "127.0.0.1:3001")
			}
			if !cmd.Flags().Changed("db") {
				opts.DBPath = config.Get("serve_db_path", "")
			}
			noSeed, _ := cmd.Flags().GetBool("no-seed")
			opts.Seed = config.GetBool("serve_seed", true) && !noSeed
			opts.JWTSecret = config.Get("serve_jwt_secret", "")
			opts.Seeder = mockgen.New()
			opts.Logger = logging.GetGlobal().With("component", "devserver")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, opts)
		},
	}
	serveCmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address")
	serveCmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database path")
	serveCmd.Flags().Bool("no-seed", false, "Do not seed an empty database")
	return serveCmd
}

// Serve opens the repository, seeds it if asked and serves until ctx is
// done.
func Serve(ctx context.Context, opts ServeOptions) error {
	if opts.DBPath == "" {
		return fmt.Errorf("serve: database path is empty")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(opts.DBPath), config.FileModeDir); err != nil {
			return fmt.Errorf("serve: creating database directory: %w", err)
		}
	}

	repo, err := devserver.OpenRepository(opts.DBPath)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	defer repo.Close()

	if opts.Seed && opts.Seeder != nil {
		n, err := repo.Seed(ctx, opts.Seeder.Generate())
		if err != nil {
			return fmt.Errorf("serve: seeding: %w", err)
		}
		if n > 0 {
			colors.Info(fmt.Sprintf("Seeded %d notifications", n))
		}
	}

	srv, err := devserver.New(devserver.Options{
		Repository: repo,
		JWTSecret:  opts.JWTSecret,
		Logger:     opts.Logger,
	})
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if opts.Ready != nil {
		opts.Ready(srv)
	}

	auth := "disabled"
	if opts.JWTSecret != "" {
		auth = "bearer"
	}
	colors.Info(fmt.Sprintf("Serving http://%s/api/notifications (auth %s)", opts.Addr, auth))
	return srv.ListenAndServe(ctx, opts.Addr)
}

func init() {
	cmd.RootCmd.AddCommand(NewServeCmd())
}
