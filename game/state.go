package game

// PlayerState is a player's economy record. It is created once per player id
// and survives reconnects; nothing in the room ever resets it.
//
// The three gain multipliers default to 1 and are left alone by the room
// logic. They exist so power-up systems layered on top can scale gains
// without touching the roll pipeline.
type PlayerState struct {
	Die1             int     `json:"die1"`
	Die2             int     `json:"die2"`
	IsRolling        bool    `json:"isRolling"`
	Wood             int     `json:"wood"`
	Stone            int     `json:"stone"`
	Bricks           int     `json:"bricks"`
	WoodMultiplier   float64 `json:"woodMultiplier"`
	StoneMultiplier  float64 `json:"stoneMultiplier"`
	BricksMultiplier float64 `json:"bricksMultiplier"`
	FreeRolls        int     `json:"freeRolls"`
	MinRoll          int     `json:"minRoll"`
	Points           int     `json:"points"`
	HasAttacked      bool    `json:"hasAttacked"`
}

func newPlayerState() *PlayerState {
	return &PlayerState{
		Die1:             1,
		Die2:             1,
		Wood:             startingWood,
		Stone:            startingStone,
		Bricks:           startingBricks,
		WoodMultiplier:   1,
		StoneMultiplier:  1,
		BricksMultiplier: 1,
		MinRoll:          1,
	}
}

// GameState is everything the clients render: the per-player economies, whose
// turn it is, the building ledger, and the winner once one exists. It is owned
// by exactly one Room and only mutated under that room's lock.
type GameState struct {
	Players        map[string]*PlayerState `json:"players"`
	ActivePlayerID string                  `json:"activePlayerId"`
	Winner         string                  `json:"winner"`
	Buildings      []*Building             `json:"mapBuildings"`
}

func newGameState() *GameState {
	return &GameState{
		Players:   make(map[string]*PlayerState),
		Buildings: []*Building{},
	}
}

func (gs *GameState) buildingAt(x, y int) *Building {
	for _, b := range gs.Buildings {
		if b.X == x && b.Y == y {
			return b
		}
	}
	return nil
}

func (gs *GameState) buildingIndex(id string, x, y int) int {
	for i, b := range gs.Buildings {
		if b.ID == id && b.X == x && b.Y == y {
			return i
		}
	}
	return -1
}
