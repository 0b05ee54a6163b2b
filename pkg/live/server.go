package live

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lamina-ui/lamina/internal/config"
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/morph"
	"github.com/lamina-ui/lamina/pkg/protocol"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// Source produces the virtual tree the preview shows, rooted at the
// page's mount element (return vdom.Fragment(...) for multiple
// top-level children). It is called for the initial page render and
// again on every refresh; it must be safe to call from multiple
// goroutines.
type Source func() *vdom.Node

// Server is the preview server: it serves the current render as HTML
// and streams patch frames to connected clients after each refresh.
type Server struct {
	cfg    *config.Config
	source Source
	logger *slog.Logger

	router   chi.Router
	upgrader websocket.Upgrader

	httpServer *http.Server

	// Derived protocol settings
	pingInterval  time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
	maxFrameBytes int

	// Observability
	registry     *prometheus.Registry
	metrics      *serverMetrics
	morphMetrics *morph.Metrics

	sessionsMu sync.Mutex
	sessions   map[*Session]struct{}
}

// NewServer creates a preview server for the given source. A nil config
// gets the defaults.
func NewServer(cfg *config.Config, source Source) *Server {
	if cfg == nil {
		cfg = config.New()
	}

	pingInterval, err := time.ParseDuration(cfg.Protocol.PingInterval)
	if err != nil || pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	maxFrameBytes := cfg.Protocol.MaxFrameBytes
	if maxFrameBytes <= 0 || maxFrameBytes > protocol.MaxPayloadSize {
		maxFrameBytes = protocol.MaxPayloadSize
	}

	registry := prometheus.NewRegistry()

	s := &Server{
		cfg:    cfg,
		source: source,
		logger: newLogger(cfg.Log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The preview server is a development tool bound to
			// localhost; cross-origin dial is allowed.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		pingInterval:  pingInterval,
		readTimeout:   defaultReadTimeout,
		writeTimeout:  defaultWriteTimeout,
		maxFrameBytes: maxFrameBytes,
		registry:      registry,
		metrics:       newServerMetrics(registry),
		morphMetrics:  morph.NewMetrics(registry),
		sessions:      make(map[*Session]struct{}),
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(Tracing)

	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	if cfg.Server.Static != "" {
		r.Handle("/static/*", http.StripPrefix("/static/",
			http.FileServer(http.Dir(cfg.Server.Static))))
	}
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, for mounting under an
// existing router or an httptest server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Refresh re-renders the source for every connected session and streams
// the resulting patches.
func (s *Server) Refresh() {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	for sess := range s.sessions {
		sess.Refresh()
	}
}

// SessionCount reports the number of connected sessions.
func (s *Server) SessionCount() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return len(s.sessions)
}

// ListenAndServe starts the server and blocks until ctx is canceled or
// the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.sessionsMu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		open = append(open, sess)
	}
	s.sessionsMu.Unlock()
	for _, sess := range open {
		sess.Close()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// handleIndex serves the current render as a full HTML page. The page
// root carries the same markup a fresh session tree is seeded with, so
// streamed patches apply cleanly.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	morph.NewContext(doc, nil).Morph(root, s.source())

	title := s.cfg.Name
	if title == "" {
		title = "lamina preview"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n", title)
	fmt.Fprintf(w, "<div id=\"app\">")
	dom.RenderChildren(w, root)
	fmt.Fprintf(w, "</div>\n</body>\n</html>\n")
}

// handleLive upgrades to a WebSocket and starts a patch-stream session.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(s, conn)

	s.sessionsMu.Lock()
	s.sessions[sess] = struct{}{}
	s.sessionsMu.Unlock()
	s.metrics.sessionsActive.Inc()

	s.logger.Info("session connected", "session", sess.id, "remote", r.RemoteAddr)
	sess.Start()
}

func (s *Server) dropSession(sess *Session) {
	s.sessionsMu.Lock()
	_, ok := s.sessions[sess]
	delete(s.sessions, sess)
	s.sessionsMu.Unlock()

	if ok {
		s.metrics.sessionsActive.Dec()
		s.logger.Info("session closed", "session", sess.id)
	}
}

func newSessionID() string {
	b := make([]byte, 12)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// newLogger builds a slog.Logger from the log config.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("component", "live")
}
