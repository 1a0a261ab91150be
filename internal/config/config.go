package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hamed0406/webmonitor/internal/domain"
)

type Config struct {
	TargetURL string         // URL to probe
	Channel   domain.Channel // slack | telegram
	SecretID  string         // identifier of the channel secret upstream

	ProbeTimeout  time.Duration // total deadline for the probe request
	ProbeMethod   string        // GET (default) or HEAD
	SecretTimeout time.Duration // bounded secret-store fetch, distinct from the probe
	NotifyBackoff time.Duration // pause before the single delivery retry
	Deadline      time.Duration // optional overall invocation deadline, 0 = none

	LogDir string

	// Optional alert-state store. When DatabaseURL is set and
	// SuppressRepeats is true, repeat alerts for an unchanged
	// classification are skipped.
	DatabaseURL     string
	SuppressRepeats bool

	Addr string // bind address for the HTTP trigger (cmd/api)
}

// FromEnv reads and validates configuration. Bad configuration is fatal
// to the invocation: retrying with the same inputs cannot succeed.
func FromEnv() (Config, error) {
	cfg := Config{
		TargetURL:     strings.TrimSpace(os.Getenv("TARGET_URL")),
		SecretID:      strings.TrimSpace(os.Getenv("SECRET_ID")),
		ProbeTimeout:  10 * time.Second,
		ProbeMethod:   "GET",
		SecretTimeout: 5 * time.Second,
		NotifyBackoff: 2 * time.Second,
		LogDir:        "logs",
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Addr:          "127.0.0.1:8080",
	}

	if cfg.TargetURL == "" {
		return Config{}, fmt.Errorf("TARGET_URL is required")
	}
	u, err := url.Parse(cfg.TargetURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("TARGET_URL must be an absolute http(s) URL, got %q", cfg.TargetURL)
	}

	ch, err := domain.ParseChannel(os.Getenv("NOTIFICATION_TYPE"))
	if err != nil {
		return Config{}, fmt.Errorf("NOTIFICATION_TYPE: %w", err)
	}
	cfg.Channel = ch

	if cfg.SecretID == "" {
		return Config{}, fmt.Errorf("SECRET_ID is required")
	}

	if v := strings.ToUpper(strings.TrimSpace(os.Getenv("PROBE_METHOD"))); v != "" {
		if v != "GET" && v != "HEAD" {
			return Config{}, fmt.Errorf("PROBE_METHOD must be GET or HEAD, got %q", v)
		}
		cfg.ProbeMethod = v
	}

	if d, err := durationMS("PROBE_TIMEOUT_MS", cfg.ProbeTimeout); err != nil {
		return Config{}, err
	} else {
		cfg.ProbeTimeout = d
	}
	if d, err := durationMS("SECRET_TIMEOUT_MS", cfg.SecretTimeout); err != nil {
		return Config{}, err
	} else {
		cfg.SecretTimeout = d
	}
	if d, err := durationMS("NOTIFY_BACKOFF_MS", cfg.NotifyBackoff); err != nil {
		return Config{}, err
	} else {
		cfg.NotifyBackoff = d
	}
	if d, err := durationMS("INVOCATION_DEADLINE_MS", 0); err != nil {
		return Config{}, err
	} else {
		cfg.Deadline = d
	}

	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("API_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("SUPPRESS_REPEATS"))); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("SUPPRESS_REPEATS must be a boolean, got %q", v)
		}
		cfg.SuppressRepeats = b
	}

	return cfg, nil
}

func durationMS(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer of milliseconds, got %q", key, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
