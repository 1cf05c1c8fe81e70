package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/clock"
	"github.com/vbonduro/rubysdiner/internal/site"
)

const (
	writeTimeout = 10 * time.Second
	// maxMessageSize bounds one client event; a form submit is the largest.
	maxMessageSize = 64 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Handler upgrades /live requests and serves one session per connection.
type Handler struct {
	catalog *catalog.Catalog
	opts    site.Options
	logger  *slog.Logger
	active  atomic.Int64
}

func NewHandler(cat *catalog.Catalog, opts site.Options, logger *slog.Logger) *Handler {
	return &Handler{catalog: cat, opts: opts, logger: logger}
}

// Active returns the number of connected sessions.
func (h *Handler) Active() int64 { return h.active.Load() }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := &Session{ID: uuid.NewString()}
	logger := h.logger.With("session", sess.ID)

	loop := clock.NewLoop(func() {
		patches := sess.Page.Doc.Flush()
		if len(patches) == 0 {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(ServerMessage{Patches: patches}); err != nil {
			logger.Debug("websocket write failed", "err", err)
			cancel()
		}
	})

	page, err := site.Build(h.catalog, loop, h.opts, logger)
	if err != nil {
		logger.Error("failed to build page", "err", err)
		return
	}
	sess.Page = page
	// The browser already holds the initial render.
	page.Doc.Flush()

	go loop.Run(ctx)
	h.active.Add(1)
	logger.Info("live session started", "active", h.active.Load())
	defer func() {
		cancel()
		<-loop.Done()
		page.Close()
		h.active.Add(-1)
		logger.Info("live session ended", "active", h.active.Load())
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "err", err)
			}
			return
		}

		var ev ClientEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			logger.Debug("invalid client message", "err", err)
			continue
		}
		posted := loop.Post(func() {
			if err := sess.Apply(ev); err != nil {
				logger.Debug("event ignored", "type", ev.Type, "err", err)
			}
		})
		if !posted {
			return
		}
	}
}
