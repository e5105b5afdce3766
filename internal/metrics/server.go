package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Amr-9/BalanceHunter/internal/logging"
	"github.com/Amr-9/BalanceHunter/internal/pipeline"
)

// Varz is the JSON status page.
type Varz struct {
	Stats      pipeline.Snapshot `json:"stats"`
	Difficulty string            `json:"difficulty"`
	Vars       map[string]any    `json:"vars,omitempty"`
}

// Server serves /metrics and /varz.
type Server struct {
	src    Source
	server *http.Server
	ln     net.Listener

	mu   sync.RWMutex
	vars map[string]any
}

// NewServer creates a server for addr. Start must be called to listen.
func NewServer(addr string, src Source, reg prometheus.Gatherer) *Server {
	s := &Server{src: src, vars: make(map[string]any)}

	mux := http.NewServeMux()
	mux.Handle("/-/ready", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/varz", s.varz)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Set publishes a static value on /varz.
func (s *Server) Set(key string, value any) {
	s.mu.Lock()
	s.vars[key] = value
	s.mu.Unlock()
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listen address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.ln = ln

	log := logging.FromContext(ctx)
	go func() {
		if err := s.server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
	log.Info("metrics server started", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.server.Addr
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) varz(w http.ResponseWriter, _ *http.Request) {
	snap := s.src.Stats()

	s.mu.RLock()
	vars := make(map[string]any, len(s.vars))
	for k, v := range s.vars {
		vars[k] = v
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Varz{
		Stats: snap,
		Difficulty: fmt.Sprintf("%d of %d digits (%3.2f%%)",
			snap.BestLength, snap.TargetLength, snap.Difficulty()),
		Vars: vars,
	})
}
