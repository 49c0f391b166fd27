package ws

import (
	"encoding/json"
	"errors"
)

var ErrUnknownEvent = errors.New("cannot handle this event")

// decode unmarshals and validates an inbound payload. A payload that fails
// validation is treated as malformed and the action is dropped.
func decode[P any](c *Client, e Event, payload *P) error {
	if err := json.Unmarshal(e.Payload, payload); err != nil {
		return err
	}
	return c.manager.validate.Struct(payload)
}

// JoinRoomHandler attaches the connection to the room's broadcast set and
// joins the player into the game, creating the room on first sight.
func JoinRoomHandler(e Event, c *Client) error {
	var payload JoinRoomPayload
	if err := decode(c, e, &payload); err != nil {
		return err
	}

	room := c.manager.registry.Get(payload.RoomID)
	if room == nil {
		return nil
	}

	c.manager.Subscribe(room.Code, c)
	room.Join(c, payload.PlayerID, payload.PlayerName)
	return nil
}

func RollDiceHandler(e Event, c *Client) error {
	var payload RollDicePayload
	if err := decode(c, e, &payload); err != nil {
		return err
	}

	room := c.manager.registry.Lookup(payload.RoomID)
	if room == nil {
		return nil
	}

	room.RollDice(payload.PlayerID)
	return nil
}

func PurchaseBuildingHandler(e Event, c *Client) error {
	var payload PurchaseBuildingPayload
	if err := decode(c, e, &payload); err != nil {
		return err
	}

	room := c.manager.registry.Lookup(payload.RoomID)
	if room == nil {
		return nil
	}

	room.PurchaseBuilding(c, payload.PlayerID, payload.BuildingID, *payload.X, *payload.Y, payload.CheckRoadConnection)
	return nil
}

func InitiateAttackHandler(e Event, c *Client) error {
	var payload InitiateAttackPayload
	if err := decode(c, e, &payload); err != nil {
		return err
	}

	room := c.manager.registry.Lookup(payload.RoomID)
	if room == nil {
		return nil
	}

	room.InitiateAttack(c, payload.AttackerID, payload.DefenderID, payload.BuildingID, *payload.X, *payload.Y)
	return nil
}

func SetRollingHandler(e Event, c *Client) error {
	var payload SetRollingPayload
	if err := decode(c, e, &payload); err != nil {
		return err
	}

	room := c.manager.registry.Lookup(payload.RoomID)
	if room == nil {
		return nil
	}

	room.SetRolling(payload.PlayerID, payload.IsRolling)
	return nil
}

// LeaveRoomHandler detaches the connection from the room's broadcasts. The
// player record and economy state stay behind for a possible rejoin.
func LeaveRoomHandler(e Event, c *Client) error {
	var payload LeaveRoomPayload
	if err := decode(c, e, &payload); err != nil {
		return err
	}

	room := c.manager.registry.Lookup(payload.RoomID)
	if room == nil {
		return nil
	}

	c.manager.Unsubscribe(room.Code, c)
	return nil
}
