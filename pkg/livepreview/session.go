package livepreview

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/mathlive/pkg/middleware"
	"github.com/vango-dev/mathlive/pkg/pipeline"
)

// session is one live connection. It owns its pipeline; only the goroutine
// running ReadLoop touches the pipeline or writes data frames.
type session struct {
	id     uint64
	conn   *websocket.Conn
	server *Server
	pipe   *pipeline.Pipeline
	logger *slog.Logger

	seq     uint64
	edits   int
	started time.Time

	closeOnce sync.Once
}

func newSession(id uint64, conn *websocket.Conn, server *Server, pipe *pipeline.Pipeline, logger *slog.Logger) *session {
	s := &session{
		id:      id,
		conn:    conn,
		server:  server,
		pipe:    pipe,
		logger:  logger,
		started: time.Now(),
	}
	s.logger.Info("session opened")
	return s
}

// ReadLoop pushes the current result, then reads client messages until the
// connection closes. Each message replaces the source text; the fresh
// result is pushed before the next read.
func (s *session) ReadLoop() {
	defer func() {
		s.pipe.Close()
		s.Close()
		s.logger.Info("session closed",
			"edits", s.edits,
			"updates", s.seq,
			"duration", time.Since(s.started))
	}()

	s.pipe.Watch(s.push)

	for {
		if timeout := s.server.config.IdleTimeout; timeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(timeout))
		}

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				middleware.RecordWebSocketError("read")
			}
			return
		}

		var cm ClientMessage
		if err := json.Unmarshal(msg, &cm); err != nil {
			s.logger.Warn("message decode error", "error", err)
			middleware.RecordWebSocketError("decode")
			continue
		}

		s.edits++
		s.pipe.Edit(cm.Text)
		s.pipe.Flush()
	}
}

// push sends the update for res to the client.
func (s *session) push(res pipeline.RenderResult) {
	s.seq++
	update := s.server.newUpdate(res, s.pipe.Derived().Options())
	update.Seq = s.seq

	if err := s.conn.WriteJSON(update); err != nil {
		s.logger.Warn("write error", "error", err)
		middleware.RecordWebSocketError("write")
		s.Close()
	}
}

// Close closes the connection, which ends ReadLoop. It is safe to call from
// any goroutine.
func (s *session) Close() {
	s.closeOnce.Do(func() {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	})
}
