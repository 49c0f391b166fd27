package game

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

// Room is one isolated game session. Every operation locks the room for its
// whole validate-mutate-broadcast span, so actions are atomic with respect to
// each other; the only thing that re-enters later is the deferred combat
// resolution, which re-validates its preconditions under the same lock.
type Room struct {
	Code string

	mu         sync.Mutex
	players    []*Player
	state      *GameState
	lastActive time.Time

	reg         *Registry
	bc          Broadcaster
	dice        Dice
	schedule    Scheduler
	battleDelay time.Duration
}

func newRoom(code string, reg *Registry) *Room {
	return &Room{
		Code:        code,
		state:       newGameState(),
		lastActive:  time.Now(),
		reg:         reg,
		bc:          reg.bc,
		dice:        reg.opts.Dice,
		schedule:    reg.opts.Schedule,
		battleDelay: reg.opts.BattleDelay,
	}
}

// touch records activity for the registry's idle sweep. Callers hold r.mu.
func (r *Room) touch() {
	r.lastActive = time.Now()
}

// Join attaches a player to the room. A returning id replaces its roster slot
// in place, keeping its color and turn position; a new id is appended and
// colored from the palette by join order. Economy state is created once per
// id and never reset.
func (r *Room) Join(conn Conn, playerID, name string) {
	if playerID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	if name == "" {
		name = defaultName(playerID)
	}

	_, idx, found := lo.FindIndexOf(r.players, func(p *Player) bool {
		return p.ID == playerID
	})

	var color Color
	if found {
		color = r.players[idx].Color
	} else {
		color = colorPalette[len(r.players)%len(colorPalette)]
	}

	player := &Player{ID: playerID, Name: name, Color: color, conn: conn}

	if found {
		r.players[idx] = player
	} else {
		r.players = append(r.players, player)
	}

	if _, ok := r.state.Players[playerID]; !ok {
		r.state.Players[playerID] = newPlayerState()
	}

	if r.state.ActivePlayerID == "" {
		r.state.ActivePlayerID = playerID
	}

	r.broadcastRoomState()
	r.bc.Broadcast(r.Code, EventMapUpdated, MapUpdatedPayload{Buildings: r.state.Buildings})
}

// SetRolling mirrors the client's transient dice animation flag into shared
// state so the other players see it.
func (r *Room) SetRolling(playerID string, rolling bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, ok := r.state.Players[playerID]
	if !ok {
		return
	}
	r.touch()

	ps.IsRolling = rolling
	r.bc.Broadcast(r.Code, EventRollingUpdated, RollingUpdatedPayload{
		PlayerID:  playerID,
		IsRolling: rolling,
		GameState: r.state,
	})
}

// advanceTurn hands the turn to the next roster entry after current, wrapping
// in join order. Only a completed roll calls this; purchases and attacks keep
// the turn. Callers hold r.mu.
func (r *Room) advanceTurn(current string) {
	if len(r.players) == 0 {
		return
	}

	_, idx, found := lo.FindIndexOf(r.players, func(p *Player) bool {
		return p.ID == current
	})

	next := 0
	if found {
		next = (idx + 1) % len(r.players)
	}
	r.state.ActivePlayerID = r.players[next].ID
}

// checkWin records the winner once a player reaches the point threshold.
// Write-once: a set winner is never re-evaluated or cleared, and the room is
// terminal from then on. Callers hold r.mu.
func (r *Room) checkWin(playerID string) {
	ps, ok := r.state.Players[playerID]
	if !ok || ps.Points < WinPoints || r.state.Winner != "" {
		return
	}

	r.state.Winner = playerID

	name := "Unknown"
	if p, found := lo.Find(r.players, func(p *Player) bool { return p.ID == playerID }); found {
		name = p.Name
	}

	r.bc.Broadcast(r.Code, EventPlayerWon, PlayerWonPayload{
		PlayerID:   playerID,
		PlayerName: name,
	})
}

// playerConn is the roster's current connection for a player, the fallback
// route for requester-only notices when the caller supplied none. A rejoin
// refreshes it. Callers hold r.mu.
func (r *Room) playerConn(playerID string) Conn {
	for _, p := range r.players {
		if p.ID == playerID {
			return p.conn
		}
	}
	return nil
}

func (r *Room) broadcastRoomState() {
	r.bc.Broadcast(r.Code, EventRoomUpdated, RoomUpdatedPayload{
		Players:   r.players,
		GameState: r.state,
	})
}

// Snapshot returns the roster and state for inspection under the room lock.
// Test helper and debug surface; the live broadcast path serializes while the
// lock is held in the Broadcaster instead.
func (r *Room) Snapshot() ([]*Player, *GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.players, r.state
}
