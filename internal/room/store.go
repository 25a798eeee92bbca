package room

import (
	"slices"
	"strings"
	"sync"

	"impostor-server/internal/domain"
)

// Store is the room registry: room code -> room, and connection -> room code.
// It holds no game rules.
type Store interface {
	Create(r *Room) error
	Get(code string) (*Room, error)
	Delete(code string)
	Resolve(connID string) (*Room, bool)
	Index(connID, code string)
	Unindex(connID string)
	List() []*Room
	Len() int
}

// MemoryStore is the in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	rooms map[string]*Room  // Code -> Room
	conns map[string]string // ConnID -> Code
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*Room),
		conns: make(map[string]string),
	}
}

// Create registers r, failing with CODE_TAKEN if its code is in use.
func (s *MemoryStore) Create(r *Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[r.Code]; exists {
		return domain.ErrCodeTaken
	}
	s.rooms[r.Code] = r
	return nil
}

// Get returns the room for code or ROOM_NOT_FOUND.
func (s *MemoryStore) Get(code string) (*Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.rooms[code]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}
	return r, nil
}

// Delete removes the room and every connection still indexed to it.
func (s *MemoryStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, code)
	for connID, c := range s.conns {
		if c == code {
			delete(s.conns, connID)
		}
	}
}

// Resolve returns the room connID is indexed to.
func (s *MemoryStore) Resolve(connID string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.conns[connID]
	if !ok {
		return nil, false
	}
	r, ok := s.rooms[code]
	return r, ok
}

// Index binds connID to the room with code.
func (s *MemoryStore) Index(connID, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[connID] = code
}

// Unindex forgets connID's room binding.
func (s *MemoryStore) Unindex(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, connID)
}

// List returns the rooms ordered by code.
func (s *MemoryStore) List() []*Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	slices.SortFunc(rooms, func(a, b *Room) int { return strings.Compare(a.Code, b.Code) })
	return rooms
}

// Len is the number of live rooms.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
