package core

// group is the transport group primitive: the set of clients currently
// subscribed to one room name. Owned by the hub loop.
type group struct {
	name    string
	clients map[*Client]struct{}
}

func newGroup(name string) *group {
	return &group{
		name:    name,
		clients: make(map[*Client]struct{}),
	}
}

// add inserts a client into the group. Returns true if newly added.
func (g *group) add(c *Client) bool {
	if _, exists := g.clients[c]; exists {
		return false
	}
	g.clients[c] = struct{}{}
	return true
}

// remove deletes a client from the group. Returns true if removed.
func (g *group) remove(c *Client) bool {
	if _, exists := g.clients[c]; !exists {
		return false
	}
	delete(g.clients, c)
	return true
}

// broadcast sends an event to all clients in the group.
func (g *group) broadcast(event *Event) {
	for client := range g.clients {
		client.trySend(event)
	}
}

// broadcastExcept sends an event to all clients in the group but skip.
func (g *group) broadcastExcept(skip *Client, event *Event) {
	for client := range g.clients {
		if client == skip {
			continue
		}
		client.trySend(event)
	}
}

// empty returns true if no clients are in the group.
func (g *group) empty() bool {
	return len(g.clients) == 0
}
