package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/webmonitor/internal/config"
	"github.com/hamed0406/webmonitor/internal/domain"
	"github.com/hamed0406/webmonitor/internal/logging"
	"github.com/hamed0406/webmonitor/internal/monitor"
	"github.com/hamed0406/webmonitor/internal/notify"
	"github.com/hamed0406/webmonitor/internal/probe"
	"github.com/hamed0406/webmonitor/internal/repo"
	"github.com/hamed0406/webmonitor/internal/repo/postgres"
	"github.com/hamed0406/webmonitor/internal/secret"
)

// One-shot entrypoint for exec-style schedulers. Runs a single
// probe-and-notify cycle; the exit code reports the invocation outcome.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		// Config is broken before we know where to log; fall back to the
		// default dir so the run still leaves its one outcome record.
		if logger, lerr := logging.NewLogger("logs"); lerr == nil {
			fatalOutcome(logger, cfg, err)
		}
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// The platform's deadline arrives as SIGTERM; treat it as
	// cancellation so in-flight calls abort cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Deadline)
		defer cancel()
	}

	resolver, err := secret.NewAWSResolver(ctx, cfg.SecretTimeout)
	if err != nil {
		fatalOutcome(logger, cfg, err)
	}

	var alerts repo.AlertStore
	if cfg.DatabaseURL != "" {
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			fatalOutcome(logger, cfg, err)
		}
		defer store.Close()
		alerts = store
	}

	runner := &monitor.Runner{
		Logger:          logger,
		Secrets:         resolver,
		Checker:         probe.NewHTTPChecker(),
		Notifier:        notify.NewDispatcher(cfg.NotifyBackoff),
		Alerts:          alerts,
		SuppressRepeats: cfg.SuppressRepeats,
	}
	out := runner.Run(ctx, monitor.Invocation{
		Target: domain.ProbeTarget{
			URL:     cfg.TargetURL,
			Method:  cfg.ProbeMethod,
			Timeout: cfg.ProbeTimeout,
		},
		Channel:  cfg.Channel,
		SecretID: cfg.SecretID,
	})

	_ = logger.Sync()
	if !out.Succeeded() {
		os.Exit(1)
	}
}

// fatalOutcome still emits the one outcome record the invocation owes
// before exiting non-success.
func fatalOutcome(logger *zap.Logger, cfg config.Config, err error) {
	logger.Error("invocation",
		zap.String("target_url", cfg.TargetURL),
		zap.String("channel", string(cfg.Channel)),
		zap.String("state", string(domain.StateError)),
		zap.Bool("notify_attempted", false),
		zap.Bool("notify_sent", false),
		zap.String("error", err.Error()),
	)
	_ = logger.Sync()
	os.Exit(1)
}
