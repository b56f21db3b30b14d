package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"researchbot/internal/system"

	"go.uber.org/zap"
)

type Status struct {
	Bot      *string        `json:"bot"`
	Ready    bool           `json:"ready"`
	Model    string         `json:"model,omitempty"`
	Uptime   string         `json:"uptime"`
	Research ResearchCounts `json:"research"`
	System   system.Usage   `json:"system"`
}

type ResearchCounts struct {
	Started   uint64 `json:"started"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
}

// StatusReporter is implemented by *Bot.
type StatusReporter interface {
	Status() Status
}

type HealthServer struct {
	srv     *http.Server
	status  StatusReporter
	started time.Time
	log     *zap.SugaredLogger
}

// NewHealthServer serves the platform health check and bot status on
// 0.0.0.0:port. status may be nil when the bot is not running.
func NewHealthServer(port string, status StatusReporter, log *zap.SugaredLogger) *HealthServer {
	if port == "" {
		port = "8080"
	}
	h := &HealthServer{
		status:  status,
		started: time.Now(),
		log:     log,
	}
	h.srv = &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return h
}

func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.handleHealth)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/status", h.handleStatus)
	return mux
}

// Start listens in the background. Bind errors are returned synchronously.
func (h *HealthServer) Start() error {
	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return err
	}
	h.log.Infof("Webserver started on %s", h.srv.Addr)

	go func() {
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Errorw("webserver stopped", "err", err)
		}
	}()
	return nil
}

func (h *HealthServer) Shutdown(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}

func (h *HealthServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/health" {
		http.NotFound(w, r)
		return
	}
	if !allowRead(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *HealthServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	var st Status
	if h.status != nil {
		st = h.status.Status()
	}
	st.Uptime = time.Since(h.started).Round(time.Second).String()
	st.System = system.Sample()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		h.log.Warnw("encoding status failed", "err", err)
	}
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}
