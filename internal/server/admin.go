package server

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mhakimi/tribeland/internal/middleware"
	"github.com/mhakimi/tribeland/internal/security"
	"github.com/mhakimi/tribeland/internal/services"
	"github.com/mhakimi/tribeland/pkg/logger"
)

// AdminServer exposes the tick engine's read-only diagnostics over HTTP for
// operational tooling. Requests need a bearer service token and are
// IP-rate-limited.
type AdminServer struct {
	ticks     *services.GameTickService
	rankings  *services.RankingService
	jwtSecret string
	limiter   *middleware.RateLimiter
	server    *http.Server
}

func NewAdminServer(ticks *services.GameTickService, rankings *services.RankingService, jwtSecret string, rateLimitPerIP int) *AdminServer {
	return &AdminServer{
		ticks:     ticks,
		rankings:  rankings,
		jwtSecret: jwtSecret,
		limiter:   middleware.NewRateLimiter(rateLimitPerIP, time.Minute),
	}
}

func (s *AdminServer) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.guarded(s.handleStatus))
	mux.HandleFunc("/api/leaderboard", s.guarded(s.handleLeaderboard))
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start blocks serving the admin API until the listener fails or Stop is
// called.
func (s *AdminServer) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("Admin API listening", "addr", addr)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *AdminServer) Stop() {
	if s.server != nil {
		_ = s.server.Close()
	}
}

func (s *AdminServer) guarded(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		if _, err := security.ValidateServiceToken(token, s.jwtSecret); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func (s *AdminServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status, err := s.ticks.GetGameTickStatus()
	if err != nil {
		logger.Error("Failed to read tick status", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func (s *AdminServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	players, err := s.rankings.Leaderboard(limit)
	if err != nil {
		logger.Error("Failed to read leaderboard", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(players)
}

func (s *AdminServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
