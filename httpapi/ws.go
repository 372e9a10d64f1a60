package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/steve-z-seattle/vibe-coding-for-chess/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watcherSet fans the session state out to websocket spectators. Writes are
// serialized per connection; a failed write drops the watcher.
type watcherSet struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]*sync.Mutex
}

func newWatcherSet() *watcherSet {
	return &watcherSet{conns: make(map[*websocket.Conn]*sync.Mutex)}
}

func (w *watcherSet) add(conn *websocket.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conns[conn] = &sync.Mutex{}
}

func (w *watcherSet) remove(conn *websocket.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.conns, conn)
	_ = conn.Close()
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// broadcast sends the snapshot to every watcher of the session.
func (w *watcherSet) broadcast(snap *game.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return
	}
	msg := wsMessage{Type: "state", Payload: payload}

	w.mu.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(w.conns))
	for conn, mu := range w.conns {
		conns[conn] = mu
	}
	w.mu.Unlock()

	for conn, mu := range conns {
		mu.Lock()
		err := conn.WriteJSON(msg)
		mu.Unlock()
		if err != nil {
			w.remove(conn)
		}
	}
}

// watch upgrades the request, sends the current state once, and keeps the
// connection registered until the client goes away.
func (h *Handler) watch(w http.ResponseWriter, r *http.Request) {
	session := h.store.GetOrCreate(gameID(r))
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	session.watchers.add(conn)

	session.mu.Lock()
	snap := session.game.Snapshot()
	session.mu.Unlock()
	session.watchers.broadcast(snap)

	go func() {
		defer session.watchers.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
