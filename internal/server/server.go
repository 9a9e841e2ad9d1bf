// Package server is the HTTP boundary of repolens: a health route and the
// analyze endpoint consumed by the web frontend.
package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/blackwell-systems/repolens/internal/analyzer"
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// AllowedOrigin is the single origin granted CORS access with
	// credentials. Empty disables CORS headers.
	AllowedOrigin string

	// ReportTTL is how long a finished report is served from memory.
	// Zero disables the report cache.
	ReportTTL time.Duration

	// ReportCacheSize bounds the number of memoised reports.
	ReportCacheSize int

	// Logger receives request and failure logs. Nil discards them.
	Logger *log.Logger
}

// Server serves the analyze API over HTTP/1.1 and cleartext HTTP/2.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	logger     *log.Logger
}

// New builds a Server that analyzes repositories through src.
func New(opts Options, src analyzer.Source) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	a := &api{
		source:  src,
		reports: newReportCache(opts.ReportCacheSize, opts.ReportTTL),
		logger:  logger,
	}

	var h http.Handler = a.routes()
	h = recoverer(logger, h)
	h = cors(opts.AllowedOrigin, h)

	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           h2c.NewHandler(h, &http2.Server{}),
			ReadHeaderTimeout: 10 * time.Second,
		},
		handler: h,
		logger:  logger,
	}
}

// Handler returns the HTTP handler without the h2c wrapper.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens on the configured address and blocks until the server is
// shut down. A clean shutdown returns nil.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until the server is shut down.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Printf("server online on http://%s", ln.Addr())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
