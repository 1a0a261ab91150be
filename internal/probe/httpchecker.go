package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// maxDrain caps how much of the response body counts toward latency.
const maxDrain = 1 << 20

type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker() *HTTPChecker {
	return &HTTPChecker{
		Client: &http.Client{
			// A 3xx is a classification of the target itself; following
			// it would probe the redirect destination instead.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

var _ Checker = (*HTTPChecker)(nil)

// Check issues one request against the target and classifies the
// outcome: 200-399 healthy, 400-599 unhealthy, transport failure
// unreachable. target.Timeout bounds the whole attempt.
func (h *HTTPChecker) Check(ctx context.Context, target domain.ProbeTarget) domain.ProbeResult {
	method := http.MethodGet
	if strings.EqualFold(target.Method, http.MethodHead) {
		method = http.MethodHead
	}
	if target.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, target.Timeout)
		defer cancel()
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, target.URL, nil)
	if err != nil {
		return domain.ProbeResult{
			Class:   domain.ClassUnreachable,
			Latency: time.Since(start),
			Detail:  "invalid target url",
		}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return domain.ProbeResult{
			Class:   domain.ClassUnreachable,
			Latency: time.Since(start),
			Detail:  shortReason(err),
		}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	latency := time.Since(start)

	class := domain.ClassUnhealthy
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		class = domain.ClassHealthy
	}
	return domain.ProbeResult{
		Class:      class,
		HTTPStatus: resp.StatusCode,
		Latency:    latency,
	}
}

// shortReason reduces a transport error to a short diagnostic safe for
// notifications and logs: no stack traces, no credentials.
func shortReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return "timeout"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return "dns: no such host"
		}
		return "dns: " + dnsErr.Err
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return "tls: certificate verification failed"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return trim(opErr.Err.Error())
	}
	if errors.As(err, &uerr) {
		return trim(uerr.Err.Error())
	}
	return trim(err.Error())
}

func trim(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	// cut on a rune boundary so the diagnostic stays valid UTF-8
	end := max
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}
