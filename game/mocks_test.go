package game

import (
	"sync"
	"time"
)

// recordingBroadcaster captures everything a room publishes.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcastRecord
}

type broadcastRecord struct {
	room    string
	event   string
	payload any
}

func (b *recordingBroadcaster) Broadcast(roomCode, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastRecord{room: roomCode, event: event, payload: payload})
}

func (b *recordingBroadcaster) eventsOf(event string) []broadcastRecord {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []broadcastRecord
	for _, rec := range b.events {
		if rec.event == event {
			out = append(out, rec)
		}
	}
	return out
}

// recordingConn captures requester-only notices.
type recordingConn struct {
	mu     sync.Mutex
	events []broadcastRecord
}

func (c *recordingConn) Send(event string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, broadcastRecord{event: event, payload: payload})
}

func (c *recordingConn) messages(event string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []string
	for _, rec := range c.events {
		if rec.event == event {
			if p, ok := rec.payload.(ErrorPayload); ok {
				out = append(out, p.Message)
			}
		}
	}
	return out
}

// loadedDice yields scripted values, then ones forever.
type loadedDice struct {
	rolls []int
	next  int
}

func (d *loadedDice) Roll() int {
	if d.next >= len(d.rolls) {
		return 1
	}
	v := d.rolls[d.next]
	d.next++
	return v
}

func (d *loadedDice) load(rolls ...int) {
	d.rolls = append(d.rolls, rolls...)
}

// manualScheduler holds deferred tasks until the test fires them.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

func (s *manualScheduler) schedule(_ time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, fn)
}

func (s *manualScheduler) fire() {
	s.mu.Lock()
	pending := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (s *manualScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

type testRig struct {
	registry  *Registry
	bc        *recordingBroadcaster
	dice      *loadedDice
	scheduler *manualScheduler
}

func newTestRig() *testRig {
	bc := &recordingBroadcaster{}
	dice := &loadedDice{}
	scheduler := &manualScheduler{}

	registry := NewRegistry(bc, Options{
		Dice:        dice,
		Schedule:    scheduler.schedule,
		BattleDelay: time.Millisecond,
	})

	return &testRig{registry: registry, bc: bc, dice: dice, scheduler: scheduler}
}

// joinPlayers joins the given ids in order with generated names.
func (rig *testRig) joinPlayers(room *Room, ids ...string) {
	for _, id := range ids {
		room.Join(nil, id, "name-"+id)
	}
}

// placeBuilding plants a building directly, bypassing cost and adjacency, for
// scenario setup.
func placeBuilding(room *Room, playerID, buildingType string, x, y int) *Building {
	room.mu.Lock()
	defer room.mu.Unlock()
	b := newBuilding(playerID, buildingType, x, y)
	room.state.Buildings = append(room.state.Buildings, b)
	return b
}
