package web

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"RiskView/internal/domain/models"
	"RiskView/internal/services/render"
	"RiskView/internal/usecase"
	xhttp "RiskView/pkg/http"
	"RiskView/pkg/http/middleware"
	applogger "RiskView/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	maxMessage   = 4096
)

// Frame is a server message on the view channel: a render tree or errors.
type Frame struct {
	Type   string             `json:"type"`
	View   *render.RenderTree `json:"view,omitempty"`
	Errors interface{}        `json:"errors,omitempty"`
}

const (
	FrameView  = "view"
	FrameError = "error"
)

// Stream serves the websocket control channel. Each connection owns one view; loads run
// concurrently and only the latest one is delivered.
func (h *ViewHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", applogger.Error(err))
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	s := &stream{
		h:        h,
		ctrl:     h.views.New(""),
		basePath: middleware.BasePath(c),
		send:     make(chan Frame, 16),
	}
	h.logger.Debug("view stream opened", applogger.String("view_id", s.ctrl.ID()))

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writePump(conn)
	}()

	s.readPump(ctx, conn)

	cancel()
	s.loads.Wait()
	close(s.send)
	<-writerDone
	h.logger.Debug("view stream closed", applogger.String("view_id", s.ctrl.ID()))
	return nil
}

type stream struct {
	h        *ViewHandler
	ctrl     *usecase.Controller
	basePath string
	send     chan Frame
	loads    sync.WaitGroup

	mu    sync.Mutex
	shown int64 // latest load generation delivered
}

func (s *stream) readPump(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.h.logger.Debug("view stream read failed", applogger.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var cmd models.ViewCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.send <- Frame{Type: FrameError, Errors: []xhttp.ValidationError{{Code: "ERR_INVALID_JSON", Message: err.Error()}}}
			continue
		}
		s.handle(ctx, cmd)
	}
}

func (s *stream) handle(ctx context.Context, cmd models.ViewCommand) {
	if verr := xhttp.ValidateStruct(ctx, &cmd); verr != nil {
		s.send <- Frame{Type: FrameError, Errors: verr}
		return
	}

	start := time.Now()
	endpoint := "ws_" + cmd.Type
	switch cmd.Type {
	case "load":
		if s.h.limiter != nil && !s.h.limiter.Allow(s.ctrl.ID()) {
			s.fail(endpoint, start, errRateLimited, nil)
			return
		}
		target, err := s.h.views.Loader().Resolve(cmd.ViewRequest())
		if err != nil {
			tree, ferr := s.ctrl.Fail(ctx, err)
			if !errors.Is(ferr, usecase.ErrStale) {
				s.fail(endpoint, start, ferr, tree)
			}
			return
		}
		// The generation is issued here, in command order; only the fetch runs concurrently.
		gen, err := s.ctrl.Begin(ctx, s.basePath, target)
		if err != nil {
			if !errors.Is(err, usecase.ErrStale) {
				s.fail(endpoint, start, err, nil)
			}
			return
		}
		s.deliver(gen, Frame{Type: FrameView, View: render.Loading(s.ctrl.ID(), target)})
		s.loads.Add(1)
		go func() {
			defer s.loads.Done()
			tree, err := s.ctrl.Finish(ctx, gen, s.basePath, target)
			switch {
			case errors.Is(err, usecase.ErrStale), errors.Is(err, context.Canceled):
			case err != nil:
				appErr := toAppError(err)
				s.h.logFailure(endpoint, err, appErr)
				s.h.observe(endpoint, start, err)
				s.deliver(gen,
					Frame{Type: FrameError, Errors: []*xhttp.AppError{appErr}},
					Frame{Type: FrameView, View: tree})
			default:
				s.h.observe(endpoint, start, nil)
				s.deliver(gen, Frame{Type: FrameView, View: tree})
			}
		}()
	case "sort":
		tree, err := s.ctrl.Sort(cmd.Column)
		s.reply(endpoint, start, tree, err)
	case "year":
		tree, err := s.ctrl.FilterYear(cmd.Year)
		s.reply(endpoint, start, tree, err)
	}
}

// deliver sends the frames of load gen unless a newer load has already been shown.
func (s *stream) deliver(gen int64, frames ...Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.shown {
		return
	}
	s.shown = gen
	for _, f := range frames {
		if f.View == nil && f.Errors == nil {
			continue
		}
		s.send <- f
	}
}

func (s *stream) reply(endpoint string, start time.Time, tree *render.RenderTree, err error) {
	if err != nil {
		s.fail(endpoint, start, err, nil)
		return
	}
	s.h.observe(endpoint, start, nil)
	s.send <- Frame{Type: FrameView, View: tree}
}

// fail sends the error, followed by the error view when the load produced one.
func (s *stream) fail(endpoint string, start time.Time, err error, tree *render.RenderTree) {
	appErr := toAppError(err)
	s.h.logFailure(endpoint, err, appErr)
	s.h.observe(endpoint, start, err)
	s.send <- Frame{Type: FrameError, Errors: []*xhttp.AppError{appErr}}
	if tree != nil {
		s.send <- Frame{Type: FrameView, View: tree}
	}
}

// writePump delivers frames and pings. After a write failure it keeps draining so that
// senders never block.
func (s *stream) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	broken := false
	for {
		select {
		case f, ok := <-s.send:
			if !ok {
				if !broken {
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				}
				return
			}
			if broken {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				s.h.logger.Debug("view stream write failed", applogger.Error(err))
				broken = true
			}
		case <-ticker.C:
			if broken {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				broken = true
			}
		}
	}
}
