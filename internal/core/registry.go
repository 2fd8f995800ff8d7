package core

// connState tracks per-connection membership: the client handle and the
// room it currently occupies ("" while unjoined).
type connState struct {
	client *Client
	room   string
}

// Registry tracks live connections and their current room. It is owned
// by the hub loop and needs no locking. Operations on unknown ids are
// no-ops: disconnect races are expected and must not raise.
type Registry struct {
	conns map[string]*connState
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*connState)}
}

// Register adds a fresh entry with no room.
func (r *Registry) Register(c *Client) {
	if _, exists := r.conns[c.ID]; exists {
		return
	}
	r.conns[c.ID] = &connState{client: c}
}

// Get returns the client for an id, or nil if unknown.
func (r *Registry) Get(id string) *Client {
	if st, ok := r.conns[id]; ok {
		return st.client
	}
	return nil
}

// Room returns the connection's current room, or "" while unjoined.
func (r *Registry) Room(id string) string {
	if st, ok := r.conns[id]; ok {
		return st.room
	}
	return ""
}

// SetRoom records the connection's current room.
func (r *Registry) SetRoom(id, room string) {
	if st, ok := r.conns[id]; ok {
		st.room = room
	}
}

// ClearRoom moves the connection back to the unjoined state.
func (r *Registry) ClearRoom(id string) {
	if st, ok := r.conns[id]; ok {
		st.room = ""
	}
}

// Unregister removes the connection.
func (r *Registry) Unregister(id string) {
	delete(r.conns, id)
}

// Clients returns all registered clients.
func (r *Registry) Clients() []*Client {
	out := make([]*Client, 0, len(r.conns))
	for _, st := range r.conns {
		out = append(out, st.client)
	}
	return out
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return len(r.conns)
}
