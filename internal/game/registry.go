// internal/game/registry.go
package game

import "sync"

// Registry is the process-wide room table. It is constructed once at startup
// and passed into every handler; there is no ambient global.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	rules Rules
}

// NewRegistry builds an empty registry whose rooms start with the given rules.
func NewRegistry(rules Rules) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		rules: rules,
	}
}

// GetOrCreate returns the room with the given id, creating a fresh
// lobby-state room if the id has not been seen. Creation is atomic with
// respect to concurrent callers.
func (reg *Registry) GetOrCreate(id string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, exists := reg.rooms[id]; exists {
		return room
	}
	room := NewRoom(id, reg.rules, nil)
	reg.rooms[id] = room
	return room
}

// Get returns the room with the given id, if it exists.
func (reg *Registry) Get(id string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, exists := reg.rooms[id]
	return room, exists
}

// Delete removes a room from the table. There is no automatic teardown;
// idle-timeout eviction would hang off this.
func (reg *Registry) Delete(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, id)
}

// Views returns public snapshots of every room, for the listing endpoint.
func (reg *Registry) Views() []*PublicView {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.Unlock()

	// Snapshot outside the registry lock; each room takes its own lock.
	views := make([]*PublicView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, room.PublicView())
	}
	return views
}
