package engine

import (
	"errors"
	"sync"

	"github.com/mag8888/ratrace-backend/platform/config"
)

var (
	ErrRoomExists   = errors.New("room already running")
	ErrRoomNotFound = errors.New("room not found")
	ErrTooFewSeats  = errors.New("need at least two players")
)

// Manager maps room ids to running actors. Rooms are fully independent;
// only this index is shared, behind its own lock.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	rules config.Rules
	out   Broadcaster
}

func NewManager(rules config.Rules, out Broadcaster) *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
		rules: rules,
		out:   out,
	}
}

// Create builds and starts the actor for a roster read from the lobby.
func (m *Manager) Create(id string, seats []Seat) (*Room, error) {
	if len(seats) < 2 {
		return nil, ErrTooFewSeats
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; ok {
		return nil, ErrRoomExists
	}
	room := NewRoom(id, seats, m.rules, m.out)
	m.rooms[id] = room
	room.Start()
	return room, nil
}

func (m *Manager) Get(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[id]
	return room, ok
}

// Dispatch routes one command to its room.
func (m *Manager) Dispatch(roomID string, cmd Command) (interface{}, error) {
	room, ok := m.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Do(cmd)
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok := m.rooms[id]; ok {
		room.Stop()
		delete(m.rooms, id)
	}
}
