package core

// Client is a live connection as seen by the core layer.
type Client struct {
	ID       string
	Name     string // display name, fixed at first join
	Commands chan *Command
	Events   chan *Event

	done chan struct{} // closed by the hub on unregister
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
		done:     make(chan struct{}),
	}
}

// trySend delivers an event without blocking the hub loop.
func (c *Client) trySend(event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
