package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	router http.Handler
}

// New creates a new Server instance
func New(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
	}
}

// renderHeadroom is added to the API timeout for the response write deadline.
const renderHeadroom = 15 * time.Second

// HTTPServer creates and configures the HTTP server. The write timeout leaves
// room for the API timeout plus rendering. An API timeout of 0 means no limit,
// so writes are not bounded either.
func (s *Server) HTTPServer() *http.Server {
	var writeTimeout time.Duration
	if s.cfg.API.Timeout > 0 {
		writeTimeout = s.cfg.API.Timeout + renderHeadroom
	}
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		ErrorLog:     zap.NewStdLog(s.logger.Named("http")),
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}
