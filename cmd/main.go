package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/okian/riddlerush/internal/adapters/http/api"
	app "github.com/okian/riddlerush/internal/app"
	"github.com/okian/riddlerush/internal/config"
	"github.com/okian/riddlerush/internal/simulate"
	"github.com/okian/riddlerush/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const releaseVersion = "1.0.0"

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// serveFlags are CLI overrides layered on top of the loaded config.
type serveFlags struct {
	addr        string
	logLevel    string
	offline     bool
	dataDir     string
	joinBaseURL string
}

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cobra.CheckErr(newRootCmd().ExecuteContext(ctx))
}

func newRootCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:           "riddlerush",
		Short:         "Game session engine for the Riddle Rush word-guessing game.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, flags)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&flags.addr, "addr", "a", "", "HTTP listen address (overrides RIDDLE_ADDR)")
	fs.StringVar(&flags.logLevel, "log-level", "", "log verbosity: debug, info, warn, error")
	fs.BoolVar(&flags.offline, "offline", false, "serve all categories from the bundled dataset")
	fs.StringVar(&flags.dataDir, "data-dir", "", "directory for persisted session state")
	fs.StringVar(&flags.joinBaseURL, "join-base-url", "", "address encoded into invite QR codes")

	cmd.AddCommand(newSimulateCmd())
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("riddlerush v{{.Version}}\n")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, flags *serveFlags) error {
	// Disable default Go metrics collection to avoid duplicate metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		return err
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	log := logger.Get()

	// Load configuration (defaults -> optional file -> env), then apply
	// any explicit CLI overrides on top.
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	applyFlags(cfg, cmd, flags)

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithOfflineMode(cfg.OfflineMode),
		app.WithCategoriesPath(cfg.CategoriesPath),
		app.WithOfflineAnswersPath(cfg.OfflineAnswersPath),
		app.WithDataDir(cfg.DataDir),
		app.WithPetScanBaseURL(cfg.PetScanBaseURL),
		app.WithPetScanTimeout(time.Duration(cfg.PetScanTimeoutMS)*time.Millisecond),
		app.WithJoinBaseURL(cfg.JoinBaseURL),
		app.WithBasePoints(cfg.BasePoints),
		app.WithSimilarityThreshold(cfg.SimilarityThreshold),
		app.WithWriteQueueSize(cfg.WriteQueueSize),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// applyFlags folds explicitly set CLI flags into the loaded config.
func applyFlags(cfg *config.Config, cmd *cobra.Command, flags *serveFlags) {
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flags.addr
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("offline") {
		cfg.OfflineMode = flags.offline
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = flags.dataDir
	}
	if cmd.Flags().Changed("join-base-url") {
		cfg.JoinBaseURL = flags.joinBaseURL
	}
}

func newSimulateCmd() *cobra.Command {
	simCfg := &simulate.Config{}

	cmd := &cobra.Command{
		Use:           "simulate",
		Short:         "Play a complete game against a running service.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			_, err := simulate.Run(cmd.Context(), simCfg)
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&simCfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	fs.StringSliceVar(&simCfg.Players, "players", []string{"Ada", "Bo", "Cleo"}, "roster for the simulated session")
	fs.IntVar(&simCfg.Rounds, "rounds", 3, "number of rounds to play")
	fs.DurationVar(&simCfg.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	fs.StringVar(&simCfg.GameName, "game-name", "Probelauf", "display name for the session")
	fs.Int64Var(&simCfg.Seed, "seed", 0, "seed for answer picks, zero means time-based")
	fs.BoolVarP(&simCfg.Verbose, "verbose", "v", false, "log every submitted answer")

	return cmd
}
