package game

// Color is a player's display palette entry, assigned from join order.
type Color struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Name      string `json:"name"`
}

var colorPalette = []Color{
	{Primary: "#4A90E2", Secondary: "#2E5C8A", Name: "Blue"},
	{Primary: "#E24A4A", Secondary: "#8A2E2E", Name: "Red"},
	{Primary: "#4AE24A", Secondary: "#2E8A2E", Name: "Green"},
	{Primary: "#E2E24A", Secondary: "#8A8A2E", Name: "Yellow"},
}

// Player is a roster entry. The id is the identity key: a rejoin with the same
// id replaces the roster slot in place, so color and turn position survive a
// reconnect even though the connection handle changes.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`

	conn Conn
}

// Conn routes outbound events to a single connected client. The room only
// uses it for requester-scoped error notices; everything else fans out
// through the Broadcaster.
type Conn interface {
	Send(event string, payload any)
}

// Broadcaster publishes an event to every subscriber of a room. The transport
// layer implements it; the game core stays transport-agnostic.
type Broadcaster interface {
	Broadcast(roomCode, event string, payload any)
}

func sendTo(conn Conn, event, message string) {
	if conn == nil {
		return
	}
	conn.Send(event, ErrorPayload{Message: message})
}

func defaultName(playerID string) string {
	short := playerID
	if len(short) > 6 {
		short = short[:6]
	}
	return "Player " + short
}
