package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/webmonitor/internal/config"
	"github.com/hamed0406/webmonitor/internal/domain"
	"github.com/hamed0406/webmonitor/internal/httpapi"
	"github.com/hamed0406/webmonitor/internal/logging"
	"github.com/hamed0406/webmonitor/internal/monitor"
	"github.com/hamed0406/webmonitor/internal/notify"
	"github.com/hamed0406/webmonitor/internal/probe"
	"github.com/hamed0406/webmonitor/internal/repo"
	"github.com/hamed0406/webmonitor/internal/repo/memory"
	"github.com/hamed0406/webmonitor/internal/repo/postgres"
	"github.com/hamed0406/webmonitor/internal/secret"
)

// HTTP-triggered entrypoint: each POST /invoke runs one cycle.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	resolver, err := secret.NewAWSResolver(ctx, cfg.SecretTimeout)
	if err != nil {
		logger.Fatal("secret_resolver", zap.Error(err))
	}

	var alerts repo.AlertStore = memory.New()
	if cfg.DatabaseURL != "" {
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("alert_store", zap.Error(err))
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
	inv := monitor.Invocation{
		Target: domain.ProbeTarget{
			URL:     cfg.TargetURL,
			Method:  cfg.ProbeMethod,
			Timeout: cfg.ProbeTimeout,
		},
		Channel:  cfg.Channel,
		SecretID: cfg.SecretID,
	}

	api := httpapi.NewServer(logger, runner, inv)
	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
