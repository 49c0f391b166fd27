package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("creates a room on first sight and reuses it", func(t *testing.T) {
		rig := newTestRig()

		room := rig.registry.Get("ab12cd")
		again := rig.registry.Get("AB12CD")

		assert.Same(t, room, again, "codes are case-insensitive")
		assert.Equal(t, "AB12CD", room.Code)
		assert.Equal(t, 1, rig.registry.Len())
	})

	t.Run("lookup never creates", func(t *testing.T) {
		rig := newTestRig()

		assert.Nil(t, rig.registry.Lookup("NOPE99"))
		assert.Equal(t, 0, rig.registry.Len())
	})

	t.Run("empty code yields no room", func(t *testing.T) {
		rig := newTestRig()

		assert.Nil(t, rig.registry.Get("  "))
	})

	t.Run("sweep evicts only idle unused rooms", func(t *testing.T) {
		rig := newTestRig()
		idle := rig.registry.Get("IDLE01")
		busy := rig.registry.Get("BUSY01")
		occupied := rig.registry.Get("OCCUP1")

		idle.mu.Lock()
		idle.lastActive = time.Now().Add(-time.Hour)
		idle.mu.Unlock()
		occupied.mu.Lock()
		occupied.lastActive = time.Now().Add(-time.Hour)
		occupied.mu.Unlock()

		inUse := func(code string) bool { return code == "OCCUP1" }
		evicted := rig.registry.Sweep(30*time.Minute, inUse)

		assert.Equal(t, 1, evicted)
		assert.Nil(t, rig.registry.Lookup("IDLE01"))
		assert.Same(t, busy, rig.registry.Lookup("BUSY01"))
		assert.Same(t, occupied, rig.registry.Lookup("OCCUP1"))
	})
}

func TestJoin(t *testing.T) {
	t.Run("first joiner becomes active and states are initialized", func(t *testing.T) {
		rig := newTestRig()
		room := rig.registry.Get("AB12CD")

		room.Join(nil, "p1", "Ada")

		assert.Equal(t, "p1", room.state.ActivePlayerID)
		require.Contains(t, room.state.Players, "p1")
		ps := room.state.Players["p1"]
		assert.Equal(t, startingWood, ps.Wood)
		assert.Equal(t, 1, ps.Die1)
		assert.Equal(t, 1, ps.MinRoll)
		assert.EqualValues(t, 1, ps.WoodMultiplier)

		require.Len(t, rig.bc.eventsOf(EventRoomUpdated), 1)
		require.Len(t, rig.bc.eventsOf(EventMapUpdated), 1)
	})

	t.Run("colors follow join order through the palette", func(t *testing.T) {
		rig := newTestRig()
		room := rig.registry.Get("AB12CD")

		rig.joinPlayers(room, "p1", "p2", "p3", "p4", "p5")

		assert.Equal(t, "Blue", room.players[0].Color.Name)
		assert.Equal(t, "Red", room.players[1].Color.Name)
		assert.Equal(t, "Green", room.players[2].Color.Name)
		assert.Equal(t, "Yellow", room.players[3].Color.Name)
		assert.Equal(t, "Blue", room.players[4].Color.Name, "palette wraps")
	})

	t.Run("rejoin keeps color, roster slot, economy and points", func(t *testing.T) {
		rig := newTestRig()
		room := rig.registry.Get("AB12CD")
		rig.joinPlayers(room, "p1", "p2")

		room.state.Players["p2"].Points = 60
		room.state.Players["p2"].Wood = 123

		room.Join(nil, "p2", "Rejoined Name")

		assert.Equal(t, "p2", room.players[1].ID, "roster slot preserved")
		assert.Equal(t, "Red", room.players[1].Color.Name)
		assert.Equal(t, 60, room.state.Players["p2"].Points)
		assert.Equal(t, 123, room.state.Players["p2"].Wood)
		assert.Equal(t, "Rejoined Name", room.players[1].Name)
	})

	t.Run("blank name gets a default", func(t *testing.T) {
		rig := newTestRig()
		room := rig.registry.Get("AB12CD")

		room.Join(nil, "abcdef123456", "")

		assert.Equal(t, "Player abcdef", room.players[0].Name)
	})

	t.Run("empty player id is ignored", func(t *testing.T) {
		rig := newTestRig()
		room := rig.registry.Get("AB12CD")

		room.Join(nil, "", "Ghost")

		assert.Empty(t, room.players)
		assert.Empty(t, rig.bc.events)
	})
}

func TestTurnOrder(t *testing.T) {
	t.Run("rolls cycle the roster in join order", func(t *testing.T) {
		rig := newTestRig()
		room := rig.registry.Get("AB12CD")
		rig.joinPlayers(room, "p1", "p2", "p3")

		order := []string{"p2", "p3", "p1", "p2"}
		for _, want := range order {
			rig.dice.load(3, 4)
			room.RollDice(room.state.ActivePlayerID)
			assert.Equal(t, want, room.state.ActivePlayerID)
		}
	})

	t.Run("purchases and attacks do not advance the turn", func(t *testing.T) {
		rig := newTestRig()
		room := rig.registry.Get("AB12CD")
		rig.joinPlayers(room, "p1", "p2")

		room.PurchaseBuilding(nil, "p1", BuildingCastle, 0, 0, false)
		assert.Equal(t, "p1", room.state.ActivePlayerID)

		target := placeBuilding(room, "p2", BuildingCastle, 0, 1)
		room.InitiateAttack(nil, "p1", "p2", target.ID, target.X, target.Y)
		assert.Equal(t, "p1", room.state.ActivePlayerID)
	})
}

func TestSetRolling(t *testing.T) {
	rig := newTestRig()
	room := rig.registry.Get("AB12CD")
	rig.joinPlayers(room, "p1")

	room.SetRolling("p1", true)

	assert.True(t, room.state.Players["p1"].IsRolling)
	updates := rig.bc.eventsOf(EventRollingUpdated)
	require.Len(t, updates, 1)
	detail, ok := updates[0].payload.(RollingUpdatedPayload)
	require.True(t, ok)
	assert.True(t, detail.IsRolling)

	room.SetRolling("ghost", true)
	assert.Len(t, rig.bc.eventsOf(EventRollingUpdated), 1)
}

func TestWinnerIsWriteOnce(t *testing.T) {
	rig := newTestRig()
	room := rig.registry.Get("AB12CD")
	rig.joinPlayers(room, "p1", "p2")

	room.state.Players["p1"].Points = WinPoints - 30
	room.PurchaseBuilding(nil, "p1", BuildingCastle, 0, 0, false)
	require.Equal(t, "p1", room.state.Winner)

	// p2 passing the threshold later must not replace the winner
	room.mu.Lock()
	room.state.Players["p2"].Points = WinPoints + 100
	room.checkWin("p2")
	room.mu.Unlock()

	assert.Equal(t, "p1", room.state.Winner)
	assert.Len(t, rig.bc.eventsOf(EventPlayerWon), 1)
}

func TestTerminalRoomFreezesAllActions(t *testing.T) {
	rig := newTestRig()
	room := rig.registry.Get("AB12CD")
	rig.joinPlayers(room, "p1", "p2")
	target := placeBuilding(room, "p2", BuildingCastle, 0, 1)
	placeBuilding(room, "p1", BuildingCastle, 0, 0)
	room.state.Winner = "p2"

	economyBefore := *room.state.Players["p1"]
	ledgerBefore := len(room.state.Buildings)

	room.RollDice("p1")
	room.PurchaseBuilding(nil, "p1", BuildingRoad, 1, 0, false)
	room.InitiateAttack(nil, "p1", "p2", target.ID, target.X, target.Y)

	assert.Equal(t, economyBefore, *room.state.Players["p1"])
	assert.Len(t, room.state.Buildings, ledgerBefore)
	assert.Empty(t, rig.bc.eventsOf(EventDiceRolled))
	assert.Empty(t, rig.bc.eventsOf(EventBattleStarted))
	assert.Equal(t, 0, rig.scheduler.pending())
}
