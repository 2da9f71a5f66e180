// Package http exposes the tracker service as a JSON API. Every data
// route is principal-scoped through the auth middleware; handlers never
// see a request without a principal.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"climb/internal/auth"
	applog "climb/internal/log"
	"climb/internal/tracker"
)

type Server struct {
	http.Server
	svc         *tracker.Service
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run http.Server.
func NewServer(addr string, svc *tracker.Service, authn *auth.Authenticator, logger *applog.Logger) *Server {
	s := &Server{
		svc:         svc,
		rateLimiter: newRateLimiter(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/habits", s.handleListHabits)
	api.HandleFunc("POST /api/habits", s.handleCreateHabit)
	api.HandleFunc("PATCH /api/habits/{id}", s.handleUpdateHabit)
	api.HandleFunc("DELETE /api/habits/{id}", s.handleDeleteHabit)
	api.HandleFunc("GET /api/habits/{id}/lifetime-total", s.handleLifetimeTotal)
	api.HandleFunc("GET /api/habits/{id}/target", s.handleGetTarget)
	api.HandleFunc("PUT /api/habits/{id}/target", s.handleSetTarget)

	api.HandleFunc("POST /api/records/toggle", s.handleToggleRecord)
	api.HandleFunc("GET /api/records", s.handleMonthlyRecords)

	api.HandleFunc("GET /api/diary", s.handleListDiary)
	api.HandleFunc("GET /api/diary/{date}", s.handleGetDiaryEntry)
	api.HandleFunc("PUT /api/diary/{date}", s.handleSaveDiaryEntry)

	api.HandleFunc("GET /api/investments/goals", s.handleListGoals)
	api.HandleFunc("POST /api/investments/goals", s.handleCreateGoal)
	api.HandleFunc("PATCH /api/investments/goals/{id}", s.handleUpdateGoal)
	api.HandleFunc("DELETE /api/investments/goals/{id}", s.handleDeleteGoal)
	api.HandleFunc("GET /api/investments/goals/{id}/progress", s.handleGoalProgress)
	api.HandleFunc("GET /api/investments/progress", s.handleTotalProgress)
	api.HandleFunc("GET /api/investments/diary", s.handleListInvestmentDiary)
	api.HandleFunc("POST /api/investments/diary", s.handleAddInvestmentDiary)

	api.HandleFunc("GET /api/profile", s.handleGetProfile)
	api.HandleFunc("PUT /api/profile", s.handleSaveProfile)

	api.HandleFunc("GET /api/stats/report", s.handleReportStats)
	api.HandleFunc("GET /api/stats/consistency", s.handleDailyConsistency)
	api.HandleFunc("GET /api/export", s.handleExport)

	mux.Handle("/api/", authn.Middleware(api))

	handler := applog.Middleware(logger)(s.withProtection(mux))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// withProtection adds security headers and write-path rate limiting.
func (s *Server) withProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isWrite(r.Method) && !s.rateLimiter.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// Shutdown stops the rate limiter's cleanup goroutine and then drains
// the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
