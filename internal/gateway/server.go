// Package gateway is the public front of shareit. Malformed input is rejected
// before it reaches the core server; the rest is relayed unchanged under a
// per-user rate limit.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/config"
	"shareit/internal/limiter"
	"shareit/internal/metrics"
	"shareit/internal/models"
	"shareit/internal/web"

	"github.com/rs/zerolog"
)

const (
	headerRequestID = web.HeaderRequestID
	maxRequestBody  = 1 << 20
)

// validator inspects a request and its already-read body. A non-nil error
// stops the request at the gateway.
type validator func(r *http.Request, body []byte) error

type Server struct {
	client     *Client
	limits     limiter.Store
	limit      int
	window     time.Duration
	pagination config.PaginationConfig
	now        func() time.Time
	server     *http.Server
	logger     *zerolog.Logger
}

func NewServer(cfg *config.Config, client *Client, limits limiter.Store, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "gateway").Logger()
	s := &Server{
		client:     client,
		limits:     limits,
		limit:      cfg.Gateway.RateLimit.Requests,
		window:     time.Duration(cfg.Gateway.RateLimit.WindowSeconds) * time.Second,
		pagination: cfg.Pagination,
		now:        time.Now,
		logger:     &l,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Gateway.Port),
		Handler:           web.RequestIDMiddleware(&l, web.LoggingMiddleware("gateway", s.rateLimit(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		web.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("POST /users", s.relay(s.validateCreateUser))
	mux.Handle("GET /users", s.relay(nil))
	mux.Handle("GET /users/{id}", s.relay(s.validatePathID))
	mux.Handle("PATCH /users/{id}", s.relay(s.validateUpdateUser))
	mux.Handle("DELETE /users/{id}", s.relay(s.validatePathID))

	mux.Handle("POST /items", s.relay(s.validateCreateItem))
	mux.Handle("GET /items", s.relay(s.validateUserPage))
	mux.HandleFunc("GET /items/search", s.handleSearch)
	mux.Handle("GET /items/{id}", s.relay(s.validateUserPath))
	mux.Handle("PATCH /items/{id}", s.relay(s.validateUserPath))
	mux.Handle("POST /items/{id}/comment", s.relay(s.validateComment))

	mux.Handle("POST /requests", s.relay(s.validateCreateRequest))
	mux.Handle("GET /requests", s.relay(s.validateUser))
	mux.Handle("GET /requests/all", s.relay(s.validateUserPage))
	mux.Handle("GET /requests/{id}", s.relay(s.validateUserPath))

	mux.Handle("POST /bookings", s.relay(s.validateCreateBooking))
	mux.Handle("GET /bookings", s.relay(s.validateBookingList))
	mux.Handle("GET /bookings/owner", s.relay(s.validateBookingList))
	mux.Handle("GET /bookings/owner/export", s.relay(s.validateUser))
	mux.Handle("GET /bookings/{id}", s.relay(s.validateUserPath))
	mux.Handle("PATCH /bookings/{id}", s.relay(s.validateApprove))
	mux.Handle("PATCH /bookings/{id}/cancel", s.relay(s.validateUserPath))
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Gateway listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// relay reads the body, runs check and forwards the request upstream.
func (s *Server) relay(check validator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				web.WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
				return
			}
			writeAppError(w, apperr.Validation("failed to read request body"))
			return
		}
		if check != nil {
			if err := check(r, body); err != nil {
				writeAppError(w, err)
				return
			}
		}
		s.forward(w, r, body)
	})
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request, body []byte) {
	ctx := withRequestID(r.Context(), r.Header.Get(headerRequestID))
	userID := strings.TrimSpace(r.Header.Get(models.HeaderUserID))

	resp, err := s.client.Forward(ctx, r.Method, r.URL.Path, r.URL.RawQuery, userID, body)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("upstream request failed")
		web.WriteError(w, http.StatusBadGateway, "server unavailable")
		return
	}

	for _, h := range []string{"Content-Type", "Content-Disposition"} {
		if v := resp.Header.Get(h); v != "" {
			w.Header().Set(h, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

// handleSearch answers a blank query locally with an empty list.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := s.validateUserPage(r, nil); err != nil {
		writeAppError(w, err)
		return
	}
	if strings.TrimSpace(r.URL.Query().Get("text")) == "" {
		web.WriteJSON(w, http.StatusOK, []struct{}{})
		return
	}
	s.forward(w, r, nil)
}

// rateLimit caps requests per acting user, or per client address when no
// user header is sent. Store errors let the request through.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limits == nil || s.limit <= 0 || r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, err := s.limits.Allow(r.Context(), limitKey(r), s.limit, s.window)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("rate limit check failed")
			allowed = true
		}
		if !allowed {
			metrics.IncRateLimited()
			web.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limitKey(r *http.Request) string {
	if uid := strings.TrimSpace(r.Header.Get(models.HeaderUserID)); uid != "" {
		return "user:" + uid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "addr:unknown"
	}
	return "addr:" + host
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func writeAppError(w http.ResponseWriter, err error) {
	status := web.StatusFor(apperr.KindOf(err))
	if status == http.StatusInternalServerError {
		web.WriteError(w, status, web.UnexpectedMessage)
		return
	}
	web.WriteError(w, status, err.Error())
}
