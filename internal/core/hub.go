package core

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/npetrov/roomchat-server/internal/store"
)

// Hub runs the single logical sequence all membership and ordering
// decisions execute on: one loop consuming registrations, commands and
// dispatched task completions. Per-room broadcast order is exactly the
// order sends are accepted here. Store calls run on dispatch goroutines
// and never gate or reorder already-dispatched broadcasts.
type Hub struct {
	log       *zerolog.Logger
	registry  *Registry
	directory *Directory
	router    *Router
	presence  *Coordinator

	groups map[string]*group

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	tasks      chan func()

	pending sync.WaitGroup // in-flight persistence dispatches
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub constructs the hub. The store may be nil for in-memory use;
// the directory must be bootstrapped by the caller before Run.
func NewHub(st store.Store, directory *Directory, historyLimit int, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Hub{
		log:        logger,
		registry:   NewRegistry(),
		directory:  directory,
		router:     NewRouter(st, logger),
		presence:   NewCoordinator(st, logger, historyLimit),
		groups:     make(map[string]*group),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand, 64),
		tasks:      make(chan func(), 16),
	}
}

// RegisterClient attaches a connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient detaches a connection. Safe to call for clients the
// hub has already forgotten.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes hub traffic until ctx is cancelled, then drains
// in-flight persistence dispatches before returning.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(ctx, c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cc := <-h.commands:
			h.handleCommand(ctx, cc.client, cc.cmd)
		case fn := <-h.tasks:
			fn()
		case <-ctx.Done():
			h.pending.Wait()
			return
		}
	}
}

func (h *Hub) handleRegister(ctx context.Context, c *Client) {
	h.registry.Register(c)
	h.log.Debug().Str("client_id", c.ID).Msg("client registered")

	// Pump this client's commands into the shared loop.
	go func() {
		for {
			select {
			case cmd, ok := <-c.Commands:
				if !ok {
					return
				}
				select {
				case h.commands <- clientCommand{client: c, cmd: cmd}:
				case <-c.done:
					return
				case <-ctx.Done():
					return
				}
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	h.sendRoomList(c)
}

func (h *Hub) handleUnregister(c *Client) {
	if h.registry.Get(c.ID) == nil {
		return
	}
	if room := h.registry.Room(c.ID); room != "" {
		h.leaveRoom(c, c.Name, room)
	}
	h.registry.Unregister(c.ID)
	close(c.done)
	h.log.Debug().Str("client_id", c.ID).Msg("client unregistered")
}

func (h *Hub) handleCommand(ctx context.Context, c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd.Username, cmd.Room)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd.Username, cmd.Room)
	case CommandSendMessage:
		h.handleSend(c, cmd.Text, cmd.Username, cmd.Room)
	case CommandCreateRoom:
		h.handleCreateRoom(ctx, c, cmd.Name)
	default:
		c.trySend(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "unknown command")})
	}
}

// handleJoin moves the connection to Joined(room). A connection already
// joined elsewhere is left from its old room first, notice included, so
// the switch does not rely on client-issued leave ordering.
func (h *Hub) handleJoin(c *Client, username, room string) {
	if username == "" || room == "" {
		c.trySend(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "username and room are required")})
		return
	}
	if h.registry.Get(c.ID) == nil {
		return
	}

	if c.Name == "" {
		c.Name = username
	}

	current := h.registry.Room(c.ID)
	if current == room {
		return
	}
	if current != "" {
		h.leaveRoom(c, c.Name, current)
	}

	h.registry.SetRoom(c.ID, room)
	g := h.groupFor(room)
	g.add(c)

	h.dispatch(func() { h.presence.RememberUser(context.Background(), username) })
	h.dispatch(func() { h.presence.ReplayHistory(context.Background(), c, room) })

	notice := h.router.Notice(username+" has joined the room", room)
	g.broadcastExcept(c, &Event{Kind: EventMessage, Message: notice})

	h.log.Info().Str("client_id", c.ID).Str("username", username).Str("room", room).Msg("joined room")
}

func (h *Hub) handleLeave(c *Client, username, room string) {
	if room == "" || h.registry.Room(c.ID) != room {
		return
	}
	if username == "" {
		username = c.Name
	}
	h.leaveRoom(c, username, room)
}

// leaveRoom removes the connection from the room's group and announces
// it to the remaining members.
func (h *Hub) leaveRoom(c *Client, username, room string) {
	h.registry.ClearRoom(c.ID)

	g, ok := h.groups[room]
	if !ok {
		return
	}
	if !g.remove(c) {
		return
	}

	notice := h.router.Notice(username+" has left the room", room)
	g.broadcast(&Event{Kind: EventMessage, Message: notice})

	if g.empty() {
		delete(h.groups, room)
	}

	h.log.Info().Str("client_id", c.ID).Str("username", username).Str("room", room).Msg("left room")
}

// handleSend accepts, persists and broadcasts a chat message.
// Persistence is dispatched off the loop and is not on the critical
// path: the broadcast happens regardless of its outcome.
func (h *Hub) handleSend(c *Client, text, username, room string) {
	msg, err := h.router.Accept(text, username, room)
	if err != nil {
		c.trySend(&Event{Kind: EventError, Error: asCoreError(err)})
		return
	}

	h.dispatch(func() { h.router.Persist(context.Background(), msg) })

	if g, ok := h.groups[msg.Room]; ok {
		g.broadcast(&Event{Kind: EventMessage, Message: msg})
	}
}

// handleCreateRoom runs the directory create off the loop, then feeds
// the outcome back in: a fresh room triggers a room-list push to every
// connection, a duplicate is a silent no-op, a store failure goes back
// to the requester only.
func (h *Hub) handleCreateRoom(ctx context.Context, c *Client, name string) {
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()

		_, created, err := h.directory.Create(context.Background(), name)

		done := func() {
			if err != nil {
				c.trySend(&Event{Kind: EventError, Error: asCoreError(err)})
				return
			}
			if !created {
				return
			}
			h.broadcastRoomList()
		}

		select {
		case h.tasks <- done:
		case <-ctx.Done():
		}
	}()
}

func (h *Hub) groupFor(room string) *group {
	g, ok := h.groups[room]
	if !ok {
		g = newGroup(room)
		h.groups[room] = g
	}
	return g
}

func (h *Hub) sendRoomList(c *Client) {
	c.trySend(&Event{Kind: EventRoomList, Rooms: h.directory.List()})
}

func (h *Hub) broadcastRoomList() {
	event := &Event{Kind: EventRoomList, Rooms: h.directory.List()}
	for _, client := range h.registry.Clients() {
		client.trySend(event)
	}
}

// dispatch runs a store-facing task on its own goroutine, tracked so
// shutdown can flush pending persistence.
func (h *Hub) dispatch(fn func()) {
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		fn()
	}()
}
