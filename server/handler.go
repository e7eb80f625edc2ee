// Package server exposes room generation over a websocket. Every connection
// gets its own session; saved layouts go through a shared persistence store.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"roomforge/generation"
	"roomforge/persistence"
	"roomforge/session"
)

// SessionFactory builds a fresh session for a new connection
type SessionFactory func() (*session.Session, error)

// HandlerConfig configures a Handler
type HandlerConfig struct {
	Logger *log.Logger
	// Store is optional; without it save, load and list reply with an error
	Store persistence.Storage
}

// Handler serves the room generation websocket endpoint
type Handler struct {
	newSession SessionFactory
	store      persistence.Storage
	logger     *log.Logger
	upgrader   websocket.Upgrader

	// Stores are not required to be safe for concurrent use
	storeMu sync.Mutex
}

var errNoStore = errors.New("no layout store configured")

// NewHandler creates a handler that builds one session per connection
func NewHandler(factory SessionFactory, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return &Handler{
		newSession: factory,
		store:      cfg.Store,
		logger:     logger,
		upgrader:   upgrader,
	}
}

// Handle upgrades the request, sends the first room and then serves
// requests until the client goes away.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, err := h.newSession()
	if err != nil {
		h.logger.Printf("failed to create session: %v", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	writeJSON := func(reply Reply) bool {
		data, err := json.Marshal(reply)
		if err != nil {
			h.logger.Printf("failed to marshal reply for %s: %v", r.RemoteAddr, err)
			return true
		}
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteMessage(websocket.TextMessage, data) == nil
	}

	if err := sess.Regenerate(); err != nil {
		writeJSON(errorReply(err))
		return
	}
	if !writeJSON(Reply{Type: ReplySnapshot, Snapshot: sess.Snapshot()}) {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Printf("connection %s closed: %v", r.RemoteAddr, err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(payload, &req); err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", r.RemoteAddr, err)
			if !writeJSON(errorReply(fmt.Errorf("malformed request: %w", err))) {
				return
			}
			continue
		}

		if !writeJSON(h.dispatch(sess, req)) {
			return
		}
	}
}

func (h *Handler) dispatch(sess *session.Session, req Request) Reply {
	switch req.Type {
	case RequestGenerate:
		tier := max(1, req.Tier)
		maxTier := max(tier, req.MaxTier)
		seed := time.Now().UnixNano()
		if req.Seed != nil {
			seed = *req.Seed
		}
		return Reply{Type: ReplySnapshot, Snapshot: sess.GenerateWithSeed(tier, maxTier, seed)}

	case RequestRegenerate:
		if err := sess.Regenerate(); err != nil {
			return errorReply(err)
		}
		return Reply{Type: ReplySnapshot, Snapshot: sess.Snapshot()}

	case RequestNext:
		if err := sess.Next(); err != nil {
			return errorReply(err)
		}
		return Reply{Type: ReplySnapshot, Snapshot: sess.Snapshot()}

	case RequestSave:
		snap := sess.Snapshot()
		if snap == nil {
			return errorReply(errors.New("nothing generated yet"))
		}
		if req.Name == "" {
			return errorReply(errors.New("save needs a name"))
		}
		if err := h.withStore(func(s persistence.Storage) error { return s.SaveLayout(req.Name, snap) }); err != nil {
			return errorReply(err)
		}
		return Reply{Type: ReplySaved, Name: req.Name}

	case RequestLoad:
		var snap *generation.Snapshot
		err := h.withStore(func(s persistence.Storage) error {
			var err error
			snap, err = s.LoadLayout(req.Name)
			return err
		})
		if err != nil {
			return errorReply(err)
		}
		return Reply{Type: ReplySnapshot, Snapshot: snap, Name: req.Name}

	case RequestList:
		var names []string
		err := h.withStore(func(s persistence.Storage) error {
			var err error
			names, err = s.ListLayouts()
			return err
		})
		if err != nil {
			return errorReply(err)
		}
		return Reply{Type: ReplyLayouts, Names: names}
	}

	return errorReply(fmt.Errorf("unknown request type %q", req.Type))
}

func (h *Handler) withStore(fn func(persistence.Storage) error) error {
	if h.store == nil {
		return errNoStore
	}
	h.storeMu.Lock()
	defer h.storeMu.Unlock()
	return fn(h.store)
}
