package ws

import "encoding/json"

// Event is the wire envelope for both directions.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type EventHandler func(e Event, c *Client) error

// Inbound event names.
const (
	EventJoinRoom         = "join-room"
	EventRollDice         = "roll-dice"
	EventPurchaseBuilding = "purchase-building"
	EventInitiateAttack   = "initiate-attack"
	EventSetRolling       = "set-rolling"
	EventLeaveRoom        = "leave-room"

	EventError = "error"
)

type JoinRoomPayload struct {
	RoomID     string `json:"roomId" validate:"required"`
	PlayerID   string `json:"playerId" validate:"required"`
	PlayerName string `json:"playerName"`
}

type RollDicePayload struct {
	RoomID   string `json:"roomId" validate:"required"`
	PlayerID string `json:"playerId" validate:"required"`
}

// Coordinates are pointers so a missing field is distinguishable from tile 0
// and can be rejected instead of silently targeting the origin tile.
type PurchaseBuildingPayload struct {
	RoomID              string `json:"roomId" validate:"required"`
	PlayerID            string `json:"playerId" validate:"required"`
	BuildingID          string `json:"buildingId" validate:"required"`
	X                   *int   `json:"x" validate:"required"`
	Y                   *int   `json:"y" validate:"required"`
	CheckRoadConnection bool   `json:"checkRoadConnection"`
}

type InitiateAttackPayload struct {
	RoomID     string `json:"roomId" validate:"required"`
	AttackerID string `json:"attackerId" validate:"required"`
	DefenderID string `json:"defenderId" validate:"required"`
	BuildingID string `json:"buildingId" validate:"required"`
	X          *int   `json:"x" validate:"required"`
	Y          *int   `json:"y" validate:"required"`
}

type SetRollingPayload struct {
	RoomID    string `json:"roomId" validate:"required"`
	PlayerID  string `json:"playerId" validate:"required"`
	IsRolling bool   `json:"isRolling"`
}

type LeaveRoomPayload struct {
	RoomID string `json:"roomId" validate:"required"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewEvent(evtType string, payload any) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{Type: evtType, Payload: b}, nil
}

func NewErrorEvent(message string) (Event, error) {
	return NewEvent(EventError, ErrorPayload{Message: message})
}
