// cmd/preflight/main.go
package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Checks the environment a deployment will hand to the monitor before
// the scheduler is pointed at it. Exits non-zero on anything fatal.
func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	target := strings.TrimSpace(os.Getenv("TARGET_URL"))
	notifType := strings.TrimSpace(os.Getenv("NOTIFICATION_TYPE"))
	secretID := strings.TrimSpace(os.Getenv("SECRET_ID"))
	region := strings.TrimSpace(os.Getenv("AWS_REGION"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	suppress := strings.TrimSpace(os.Getenv("SUPPRESS_REPEATS"))

	if target == "" {
		fail("TARGET_URL is empty (nothing to probe).")
	}
	if u, err := url.Parse(target); err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		fail("TARGET_URL must be an absolute http(s) URL: " + target)
	}
	ok("TARGET_URL=" + target)

	switch strings.ToLower(notifType) {
	case "slack", "telegram":
		ok("NOTIFICATION_TYPE=" + notifType)
	case "":
		fail("NOTIFICATION_TYPE is empty (slack or telegram).")
	default:
		fail("NOTIFICATION_TYPE must be slack or telegram, got " + notifType)
	}

	if secretID == "" {
		fail("SECRET_ID is empty (no channel credentials to resolve).")
	}
	ok("SECRET_ID present")

	if region == "" {
		warn("AWS_REGION empty — the SDK default chain must supply a region at runtime.")
	} else {
		ok("AWS_REGION=" + region)
	}

	if strings.EqualFold(suppress, "true") && db == "" {
		warn("SUPPRESS_REPEATS=true without DATABASE_URL — one-shot runs cannot carry alert state between ticks.")
	}
	if db == "" {
		warn("DATABASE_URL empty — repeat-alert suppression unavailable for one-shot runs.")
	} else {
		ok("DATABASE_URL present")
	}

	ok("preflight passed")
}
