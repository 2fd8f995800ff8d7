package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/npetrov/roomchat-server/internal/store"
)

// Directory is the authoritative set of room names. The cached listing
// keeps persisted creation order. A mutex guards the cache because
// Create runs on dispatch goroutines while the hub loop reads List.
type Directory struct {
	store       store.RoomStore
	log         *zerolog.Logger
	defaultRoom string

	mu     sync.Mutex
	rooms  []Room
	byName map[string]Room

	now   func() time.Time
	newID func() string
}

// NewDirectory constructs a directory backed by the given room store.
func NewDirectory(st store.RoomStore, logger *zerolog.Logger, defaultRoom string) *Directory {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Directory{
		store:       st,
		log:         logger,
		defaultRoom: strings.TrimSpace(defaultRoom),
		byName:      make(map[string]Room),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Bootstrap loads persisted rooms into the cache and creates the default
// room if absent. Idempotent; called once at startup before the
// transport accepts connections.
func (d *Directory) Bootstrap(ctx context.Context) error {
	persisted, err := d.store.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}

	d.mu.Lock()
	for _, r := range persisted {
		d.rememberLocked(fromStoreRoom(r))
	}
	_, exists := d.byName[d.defaultRoom]
	d.mu.Unlock()

	if exists {
		return nil
	}

	room, created, err := d.Create(ctx, d.defaultRoom)
	if err != nil {
		return fmt.Errorf("create default room: %w", err)
	}
	if created {
		d.log.Info().Str("room", room.Name).Msg("created default room")
	}
	return nil
}

// Create trims name and persists a new room. Creating a name that
// already exists returns the existing room with created=false and
// performs no mutation. Store failures surface as a persistence error;
// the duplicate check already ran, so retries are safe.
func (d *Directory) Create(ctx context.Context, name string) (Room, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Room{}, false, coreError(ErrCodeBadRequest, "room name is required")
	}

	d.mu.Lock()
	if room, ok := d.byName[name]; ok {
		d.mu.Unlock()
		return room, false, nil
	}
	d.mu.Unlock()

	room := Room{ID: d.newID(), Name: name, CreatedAt: d.now()}
	err := d.store.CreateRoom(ctx, &store.Room{ID: room.ID, Name: room.Name, CreatedAt: room.CreatedAt})
	if errors.Is(err, store.ErrRoomExists) {
		// Lost a race or restarted with a stale cache; adopt the
		// persisted record.
		existing, getErr := d.store.GetRoomByName(ctx, name)
		if getErr != nil {
			d.log.Error().Err(getErr).Str("room", name).Msg("failed to load existing room")
			return Room{}, false, coreError(ErrCodePersistenceFailure, "failed to create room")
		}
		room = fromStoreRoom(existing)
		d.remember(room)
		return room, false, nil
	}
	if err != nil {
		d.log.Error().Err(err).Str("room", name).Msg("failed to persist room")
		return Room{}, false, coreError(ErrCodePersistenceFailure, "failed to create room")
	}

	d.remember(room)
	return room, true, nil
}

// List returns all rooms in persisted creation order.
func (d *Directory) List() []Room {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Room, len(d.rooms))
	copy(out, d.rooms)
	return out
}

// Lookup returns the room with the given name, if present.
func (d *Directory) Lookup(name string) (Room, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.byName[strings.TrimSpace(name)]
	return room, ok
}

func (d *Directory) remember(room Room) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rememberLocked(room)
}

func (d *Directory) rememberLocked(room Room) {
	if _, exists := d.byName[room.Name]; exists {
		return
	}
	d.byName[room.Name] = room
	d.rooms = append(d.rooms, room)
}

func fromStoreRoom(r *store.Room) Room {
	return Room{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}
