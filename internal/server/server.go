// Package server exposes the resolver over HTTP: GET /?url=<reference>
// answers with a 302 to the CDN URL.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"biliredirect/internal/config"
	"biliredirect/internal/extract"
	"biliredirect/internal/media"
	"biliredirect/internal/metrics"
)

const extractionFailedText = "error: could not find a valid BVID in the provided URL\n\n" +
	"make sure the URL contains a BV number"

//go:embed help.html
var helpHTML string

var helpTemplate = template.Must(template.New("help.html").Parse(helpHTML))

// Resolver resolves a BVID to a playable URL.
type Resolver interface {
	Resolve(ctx context.Context, bvid string) (*media.Resolution, error)
}

// Server is the inbound HTTP server.
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	log      zerolog.Logger
	resolver Resolver
}

// New creates a Server and registers its routes.
func New(cfg *config.Config, log zerolog.Logger, resolver Resolver) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(Metrics())
	engine.Use(RequestLogger(log))
	engine.SetHTMLTemplate(helpTemplate)

	s := &Server{
		cfg:      cfg,
		engine:   engine,
		log:      log,
		resolver: resolver,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleRedirect)
	s.engine.HEAD("/", s.handleRedirect)

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine.NoRoute(s.handleNotFound)
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. Cancellation closes the server
// at once: in-flight requests are dropped, not drained.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		err := server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		return server.Close()
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleRedirect(c *gin.Context) {
	reference := c.Query("url")
	if reference == "" {
		c.HTML(http.StatusOK, "help.html", gin.H{"BaseURL": s.cfg.BaseURL})
		return
	}

	bvid, err := extract.BVID(reference)
	if err != nil {
		metrics.ExtractionFailuresTotal.Inc()
		c.String(http.StatusBadRequest, extractionFailedText)
		return
	}

	res, err := s.resolver.Resolve(c.Request.Context(), bvid)
	if err != nil {
		c.String(http.StatusInternalServerError, "%s", err.Error())
		return
	}

	c.Redirect(http.StatusFound, res.URL)
}

func (s *Server) handleNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "%s", usageText(s.cfg.BaseURL))
}

func usageText(baseURL string) string {
	return "404 - page not found\n\n" +
		"usage: " + baseURL + "/?url=<bilibili video URL>\n\n" +
		"you will be redirected to the video stream"
}
