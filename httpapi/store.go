package httpapi

import (
	"sync"

	"github.com/steve-z-seattle/vibe-coding-for-chess/engine"
	"github.com/steve-z-seattle/vibe-coding-for-chess/game"
)

// Session is one identified game with its own engine and websocket
// watchers. All access goes through mu; searches run under the lock, so a
// session serves one request at a time.
type Session struct {
	mu       sync.Mutex
	game     *game.Game
	engine   *engine.Engine
	watchers *watcherSet
}

// Store keeps sessions by identifier, creating them on first use. Sessions
// live for the lifetime of the process.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	tableSize uint32
}

func NewStore(tableSize uint32) *Store {
	return &Store{
		sessions:  make(map[string]*Session),
		tableSize: tableSize,
	}
}

func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		return session
	}
	session := &Session{
		game:     game.New(),
		engine:   engine.New(&engine.Config{TableSize: s.tableSize, Logger: func(...any) {}}),
		watchers: newWatcherSet(),
	}
	s.sessions[id] = session
	return session
}

func (s *Session) reset() {
	s.game.Reset()
}

func (s *Session) replace(g *game.Game) {
	s.game = g
}
