package monitor

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/webmonitor/internal/domain"
	"github.com/hamed0406/webmonitor/internal/notify"
	"github.com/hamed0406/webmonitor/internal/probe"
	"github.com/hamed0406/webmonitor/internal/repo"
	"github.com/hamed0406/webmonitor/internal/secret"
)

// Invocation is one externally-triggered probe-and-notify cycle.
type Invocation struct {
	Target   domain.ProbeTarget
	Channel  domain.Channel
	SecretID string
}

// Runner drives a single invocation through its states:
// start → secret_resolved → probed → notified → done, with error
// absorbing any step. One invocation is one pass; it never loops.
type Runner struct {
	Logger  *zap.Logger
	Secrets secret.Resolver
	Checker probe.Checker
	Notifier interface {
		Dispatch(context.Context, domain.Channel, domain.Credentials, domain.Message) (bool, error)
	}

	// Alerts plus SuppressRepeats enable skipping repeat alerts for an
	// unchanged classification. Nil Alerts keeps the default behavior:
	// every failing tick notifies.
	Alerts          repo.AlertStore
	SuppressRepeats bool
}

// Run executes one cycle and always emits exactly one outcome record,
// fatal configuration errors included.
func (r *Runner) Run(ctx context.Context, inv Invocation) domain.Outcome {
	started := time.Now()
	out := domain.Outcome{State: domain.StateStart}
	defer func() {
		out.Elapsed = time.Since(started)
		r.logOutcome(inv, out)
	}()

	// No credentials means no way to alert: skip probing entirely and
	// let the outcome record carry the failure.
	creds, err := r.Secrets.Resolve(ctx, inv.SecretID, inv.Channel)
	if err != nil {
		out.State = domain.StateError
		out.Err = err
		return out
	}
	out.State = domain.StateSecretResolved

	// Probe failures never abort the cycle; an unhealthy or unreachable
	// result is the condition we exist to report.
	res := r.Checker.Check(ctx, inv.Target)
	out.Result = &res
	out.State = domain.StateProbed

	send, suppressed := r.decide(ctx, inv.Target.URL, res.Class)
	out.Suppressed = suppressed
	if send {
		msg := notify.BuildMessage(res, inv.Target.URL, time.Now())
		out.NotifyAttempted = true
		sent, derr := r.Notifier.Dispatch(ctx, inv.Channel, creds, msg)
		out.NotifySent = sent
		out.Err = derr
		out.State = domain.StateNotified
		if sent && r.Alerts != nil {
			if serr := r.Alerts.Set(ctx, inv.Target.URL, res.Class, time.Now().UTC()); serr != nil {
				out.Err = multierr.Append(out.Err, serr)
			}
		}
	}

	out.State = domain.StateDone
	return out
}

// decide applies the notification policy: always alert on unhealthy or
// unreachable, stay quiet on healthy. With suppression on, a repeat of
// the last notified classification is skipped, and a return to healthy
// after a notified problem gets a recovery notice.
func (r *Runner) decide(ctx context.Context, targetURL string, class domain.Class) (send, suppressed bool) {
	alerting := class != domain.ClassHealthy
	if r.Alerts == nil || !r.SuppressRepeats {
		return alerting, false
	}
	rec, err := r.Alerts.Get(ctx, targetURL)
	if err != nil {
		// Store trouble must not silence an alert.
		return alerting, false
	}
	if alerting {
		if rec != nil && rec.LastClass == class {
			return false, true
		}
		return true, false
	}
	return rec != nil && rec.LastClass != domain.ClassHealthy, false
}

func (r *Runner) logOutcome(inv Invocation, out domain.Outcome) {
	fields := []zap.Field{
		zap.String("target_url", inv.Target.URL),
		zap.String("channel", string(inv.Channel)),
		zap.String("state", string(out.State)),
		zap.Bool("notify_attempted", out.NotifyAttempted),
		zap.Bool("notify_sent", out.NotifySent),
		zap.Bool("suppressed", out.Suppressed),
		zap.Duration("elapsed", out.Elapsed),
	}
	if out.Result != nil {
		fields = append(fields,
			zap.String("classification", string(out.Result.Class)),
			zap.Int("http_status", out.Result.HTTPStatus),
			zap.String("detail", out.Result.Detail),
			zap.Duration("latency", out.Result.Latency),
		)
	}
	if out.Err != nil {
		fields = append(fields, zap.String("error", out.Err.Error()))
	}
	if out.Succeeded() {
		r.Logger.Info("invocation", fields...)
	} else {
		r.Logger.Error("invocation", fields...)
	}
}
