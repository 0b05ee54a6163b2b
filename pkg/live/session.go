package live

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lamina-ui/lamina/pkg/component"
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/morph"
	"github.com/lamina-ui/lamina/pkg/protocol"
)

// Session is one connected preview client. Each session owns a private
// node tree that mirrors the client's page: every refresh morphs that
// tree against a fresh render and streams the resulting patches.
type Session struct {
	id string

	// Connection
	conn   *websocket.Conn
	mu     sync.Mutex // protects conn writes
	closed atomic.Bool

	// Per-session tree state
	doc   *dom.MemoryDocument
	root  dom.Node
	morph *morph.Context
	rec   *protocol.Recorder

	// Channels
	refreshCh chan struct{} // signal for re-render
	done      chan struct{} // shutdown signal

	srv *Server
}

// newSession seeds the session tree with the current render so that the
// first refresh diffs against the same state the page was served with.
// The recorder is attached only after seeding: the initial build is
// delivered as HTML, not as patches.
func newSession(srv *Server, conn *websocket.Conn) *Session {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	ctx := morph.NewContext(doc, component.NewRegistry())
	ctx.Metrics = srv.morphMetrics

	ctx.Morph(root, srv.source())

	rec := protocol.NewRecorder(root)
	doc.Observe(func(m dom.Mutation) {
		rec.Record(m)
		srv.morphMetrics.ObserveMutation(m.Op.String())
	})

	return &Session{
		id:        newSessionID(),
		conn:      conn,
		doc:       doc,
		root:      root,
		morph:     ctx,
		rec:       rec,
		refreshCh: make(chan struct{}, 1),
		done:      make(chan struct{}),
		srv:       srv,
	}
}

// Start starts the session loops.
func (s *Session) Start() {
	go s.ReadLoop()
	go s.WriteLoop()
	go s.RenderLoop()
}

// Refresh requests a re-render. Coalesces: a refresh already pending
// covers this one.
func (s *Session) Refresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}

// ReadLoop continuously reads messages from the WebSocket connection.
// It blocks until the connection is closed or an error occurs.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.srv.readTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.srv.logger.Error("read error", "session", s.id, "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.srv.logger.Error("frame decode error", "session", s.id, "error", err)
			continue
		}

		switch frame.Type {
		case protocol.FramePing:
			s.sendFrame(protocol.NewFrame(protocol.FramePong, frame.Payload))

		case protocol.FramePong:
			// Deadline already extended by the read above.

		case protocol.FrameEvent:
			// Any client event invalidates the view in the preview
			// protocol: the source re-renders and the diff streams back.
			s.Refresh()

		case protocol.FrameHello:
			s.srv.logger.Debug("client hello", "session", s.id)

		default:
			s.srv.logger.Warn("unknown frame type", "session", s.id, "type", frame.Type)
		}
	}
}

// WriteLoop sends periodic keepalive pings until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.srv.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendFrame(protocol.NewFrame(protocol.FramePing, nil)); err != nil {
				return
			}

		case <-s.done:
			return
		}
	}
}

// RenderLoop serializes morph passes for this session. All tree access
// happens on this goroutine; Refresh only signals it.
func (s *Session) RenderLoop() {
	for {
		select {
		case <-s.refreshCh:
			s.renderOnce()

		case <-s.done:
			return
		}
	}
}

func (s *Session) renderOnce() {
	defer func() {
		if r := recover(); r != nil {
			s.srv.logger.Error("render panic", "session", s.id, "panic", r)
			s.Close()
		}
	}()

	s.morph.Morph(s.root, s.srv.source())

	if s.rec.Pending() == 0 {
		return
	}
	s.SendPatches(s.rec.Flush())
}

// SendPatches encodes a patch frame and writes it to the client.
func (s *Session) SendPatches(pf *protocol.PatchFrame) {
	payload := protocol.EncodePatchFrame(pf)
	if len(payload) > s.srv.maxFrameBytes {
		s.srv.logger.Error("patch frame over size limit",
			"session", s.id, "bytes", len(payload), "limit", s.srv.maxFrameBytes)
		s.Close()
		return
	}

	if err := s.sendFrame(protocol.NewFrame(protocol.FramePatches, payload)); err != nil {
		return
	}
	s.srv.metrics.framesSent.Inc()
	s.srv.metrics.patchesSent.Add(float64(len(pf.Patches)))
}

func (s *Session) sendFrame(f *protocol.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return websocket.ErrCloseSent
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.srv.writeTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, f.Encode()); err != nil {
		s.srv.logger.Error("write error", "session", s.id, "error", err)
		s.closeInternal()
		return err
	}
	return nil
}

// Close shuts the session down. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeInternal()
}

// closeInternal must be called with s.mu held.
func (s *Session) closeInternal() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.conn.Close()
	s.srv.dropSession(s)
}
