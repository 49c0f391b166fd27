package game

// Outbound event names. These are the room's side of the wire contract; the
// transport layer carries them verbatim.
const (
	EventRoomUpdated       = "room-updated"
	EventMapUpdated        = "map-updated"
	EventDiceRolled        = "dice-rolled"
	EventBuildingPurchased = "building-purchased"
	EventBuildingError     = "building-error"
	EventAttackError       = "attack-error"
	EventBattleStarted     = "battle-started"
	EventAttackResult      = "attack-result"
	EventPlayerWon         = "player-won"
	EventRollingUpdated    = "rolling-updated"
)

type RoomUpdatedPayload struct {
	Players   []*Player  `json:"players"`
	GameState *GameState `json:"gameState"`
}

type MapUpdatedPayload struct {
	Buildings []*Building `json:"buildings"`
}

type DiceRolledPayload struct {
	PlayerID  string     `json:"playerId"`
	GameState *GameState `json:"gameState"`
}

type BuildingPurchasedPayload struct {
	PlayerID   string     `json:"playerId"`
	BuildingID string     `json:"buildingId"`
	Points     int        `json:"points"`
	X          int        `json:"x"`
	Y          int        `json:"y"`
	GameState  *GameState `json:"gameState"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type BattleStartedPayload struct {
	AttackerID string `json:"attackerId"`
	DefenderID string `json:"defenderId"`
	BuildingID string `json:"buildingId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

type AttackResultPayload struct {
	AttackerID        string `json:"attackerId"`
	DefenderID        string `json:"defenderId"`
	AttackerRolls     []int  `json:"attackerRolls"`
	DefenderRolls     []int  `json:"defenderRolls"`
	AttackerTotal     int    `json:"attackerTotal"`
	DefenderTotal     int    `json:"defenderTotal"`
	AttackerMax       int    `json:"attackerMax"`
	DefenderMax       int    `json:"defenderMax"`
	Winner            string `json:"winner"`
	BuildingDestroyed bool   `json:"buildingDestroyed"`
	PointsGained      int    `json:"pointsGained"`
}

type PlayerWonPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type RollingUpdatedPayload struct {
	PlayerID  string     `json:"playerId"`
	IsRolling bool       `json:"isRolling"`
	GameState *GameState `json:"gameState"`
}
