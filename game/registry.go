package game

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBattleDelay is how long an announced attack hangs before its dice
// are rolled. The front end plays its rolling animation in this window.
const DefaultBattleDelay = 2 * time.Second

// Options tune a Registry's rooms. Zero values select production defaults;
// tests inject loaded dice and a manual scheduler.
type Options struct {
	Dice        Dice
	Schedule    Scheduler
	BattleDelay time.Duration
}

// Registry owns every live room. It is constructed in main and injected into
// the transport layer; there is no ambient global room table.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	bc    Broadcaster
	opts  Options
}

func NewRegistry(bc Broadcaster, opts Options) *Registry {
	if opts.Dice == nil {
		opts.Dice = sixSided{}
	}
	if opts.Schedule == nil {
		opts.Schedule = afterFunc
	}
	if opts.BattleDelay == 0 {
		opts.BattleDelay = DefaultBattleDelay
	}

	return &Registry{
		rooms: make(map[string]*Room),
		bc:    bc,
		opts:  opts,
	}
}

// NormalizeCode upper-cases a room code; codes are case-insensitive on the wire.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Get returns the room for code, creating it on first sight.
func (reg *Registry) Get(code string) *Room {
	code = NormalizeCode(code)
	if code == "" {
		return nil
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[code]
	if !ok {
		room = newRoom(code, reg)
		reg.rooms[code] = room
		log.Debug().Str("room", code).Msg("room created")
	}
	return room
}

// Lookup returns the room for code, or nil if it was never created or has
// been swept. Non-join actions never create rooms.
func (reg *Registry) Lookup(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[NormalizeCode(code)]
}

func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// Sweep evicts rooms that have been idle longer than maxIdle and that inUse
// reports free of subscribers. Rooms with live connections or recent activity
// always survive. Returns the number of rooms evicted.
func (reg *Registry) Sweep(maxIdle time.Duration, inUse func(code string) bool) int {
	cutoff := time.Now().Add(-maxIdle)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	evicted := 0
	for code, room := range reg.rooms {
		if inUse != nil && inUse(code) {
			continue
		}

		room.mu.Lock()
		idle := room.lastActive.Before(cutoff)
		room.mu.Unlock()

		if idle {
			delete(reg.rooms, code)
			evicted++
			log.Debug().Str("room", code).Msg("idle room evicted")
		}
	}
	return evicted
}
