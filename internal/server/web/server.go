// Package web exposes the dashboard over HTTP with gin. Each route is one
// user action and one failure boundary.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/cryptox"
	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/server/dashboard"
	"github.com/dmitrijs2005/nutriai/internal/server/session"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address  string
	logger   logging.Logger
	service  *dashboard.Service
	sessions *session.Registry
	signer   *cryptox.Signer
	secure   bool
}

// NewHTTPServer wires the handlers. secure marks the session cookie as
// HTTPS-only.
func NewHTTPServer(a string, l logging.Logger, svc *dashboard.Service, reg *session.Registry, signer *cryptox.Signer, secure bool) *HTTPServer {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		service:  svc,
		sessions: reg,
		signer:   signer,
		secure:   secure,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/healthz", s.health)

	r.Use(s.sessionMiddleware())
	r.GET("/", s.home)
	r.GET("/oauth/callback", s.callback)
	r.POST("/logout", s.logout)

	authed := r.Group("/")
	authed.Use(s.requireLogin())
	{
		authed.GET("/recommendations/form", s.recommendationForm)
		authed.POST("/recommendations", s.recommend)
		authed.GET("/recommendations", s.cachedRecommendations)
		authed.GET("/recommendations/overview", s.overview)
		authed.POST("/advice", s.advise)
		authed.GET("/advice/categories", s.adviceCategories)
	}

	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
