package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/webmonitor/internal/monitor"
)

// Server exposes the monitor to platforms that trigger invocations over
// HTTP instead of exec. Each POST /invoke runs one full cycle.
type Server struct {
	Logger     *zap.Logger
	Runner     *monitor.Runner
	Invocation monitor.Invocation
}

func NewServer(l *zap.Logger, r *monitor.Runner, inv monitor.Invocation) *Server {
	return &Server{Logger: l, Runner: r, Invocation: inv}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/invoke", s.handleInvoke)

	return r
}

type invokePayload struct {
	URL string `json:"url"`
}

type outcomeResponse struct {
	State           string  `json:"state"`
	Classification  string  `json:"classification,omitempty"`
	HTTPStatus      int     `json:"http_status,omitempty"`
	Detail          string  `json:"detail,omitempty"`
	LatencyMS       float64 `json:"latency_ms,omitempty"`
	NotifyAttempted bool    `json:"notify_attempted"`
	NotifySent      bool    `json:"notify_sent"`
	Suppressed      bool    `json:"suppressed"`
	Error           string  `json:"error,omitempty"`
	ElapsedMS       float64 `json:"elapsed_ms"`
	Timestamp       string  `json:"timestamp"`
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	inv := s.Invocation

	// An optional body may point this run at a different URL.
	var p invokePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	if p.URL != "" {
		u, err := url.Parse(p.URL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			http.Error(w, "url must be absolute http(s)", http.StatusBadRequest)
			return
		}
		inv.Target.URL = p.URL
	}

	out := s.Runner.Run(r.Context(), inv)

	resp := outcomeResponse{
		State:           string(out.State),
		NotifyAttempted: out.NotifyAttempted,
		NotifySent:      out.NotifySent,
		Suppressed:      out.Suppressed,
		ElapsedMS:       float64(out.Elapsed) / float64(time.Millisecond),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	if out.Result != nil {
		resp.Classification = string(out.Result.Class)
		resp.HTTPStatus = out.Result.HTTPStatus
		resp.Detail = out.Result.Detail
		resp.LatencyMS = float64(out.Result.Latency) / float64(time.Millisecond)
	}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}

	status := http.StatusOK
	if !out.Succeeded() {
		status = http.StatusBadGateway
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
