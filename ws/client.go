package ws

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	pongWait     = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
)

// egressBuffer absorbs broadcast bursts; a client that cannot drain it loses
// messages rather than stalling the whole room.
const egressBuffer = 64

// Inbound message budget per client. Normal play is a few messages a second;
// anything past the burst is dropped without processing.
const (
	inboundRate  = 20
	inboundBurst = 40
)

type Client struct {
	// SocketID distinguishes connections; PlayerID is the game identity the
	// connection authenticated as and survives reconnects.
	SocketID   string
	PlayerID   string
	PlayerName string

	connection *websocket.Conn
	manager    *Manager
	egress     chan Event
	limiter    *rate.Limiter
	err        chan error
}

func NewClient(playerID, playerName string, conn *websocket.Conn, manager *Manager) *Client {
	return &Client{
		SocketID:   uuid.NewString(),
		PlayerID:   playerID,
		PlayerName: playerName,
		connection: conn,
		manager:    manager,
		egress:     make(chan Event, egressBuffer),
		limiter:    rate.NewLimiter(inboundRate, inboundBurst),
		err:        make(chan error, 2),
	}
}

// Send implements game.Conn. The payload is marshalled immediately, while the
// caller still holds the room lock, so later state mutations cannot race the
// serialization.
func (c *Client) Send(event string, payload any) {
	evt, err := NewEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("cannot marshal outbound payload")
		return
	}
	c.push(evt)
}

// push queues an event for delivery, dropping it if the client is too far
// behind to keep up.
func (c *Client) push(evt Event) {
	select {
	case c.egress <- evt:
	default:
		log.Warn().Str("event", evt.Type).Str("player", c.PlayerID).Msg("egress full, dropping event")
	}
}

func (c *Client) readMessages() {
	c.connection.SetReadLimit(1024)

	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.handleError(err)
		return
	}

	c.connection.SetPongHandler(c.pongHandler)

	for {
		_, payload, err := c.connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("player", c.PlayerID).Msg("unexpected socket closure")
			}
			c.handleError(err)
			return
		}

		if !c.limiter.Allow() {
			log.Warn().Str("player", c.PlayerID).Msg("rate limit exceeded, dropping message")
			continue
		}

		var evt Event
		if err := json.Unmarshal(payload, &evt); err != nil {
			errEvent, err := NewErrorEvent("cannot unmarshal payload")
			if err != nil {
				continue
			}
			c.push(errEvent)
			continue
		}

		if err := c.manager.routeEvent(evt, c); err != nil {
			log.Debug().Err(err).Str("event", evt.Type).Msg("event rejected")

			errEvent, err := NewErrorEvent(err.Error())
			if err != nil {
				continue
			}
			c.push(errEvent)
		}
	}
}

func (c *Client) writeMessages() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case evt, ok := <-c.egress:
			if !ok {
				c.handleError(errors.New("client egress channel unexpectedly closed"))
				return
			}

			data, err := json.Marshal(evt)
			if err != nil {
				c.handleError(err)
				return
			}

			if err := c.connection.WriteMessage(websocket.TextMessage, data); err != nil {
				c.handleError(err)
				return
			}
		case <-ticker.C:
			if err := c.connection.WriteMessage(websocket.PingMessage, []byte("")); err != nil {
				c.handleError(err)
				return
			}
		}
	}
}

func (c *Client) pongHandler(pongMsg string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}

// handleError notifies the connection handler, which tears the client down.
// The channel is buffered so both pumps can report without blocking.
func (c *Client) handleError(e error) {
	select {
	case c.err <- e:
	default:
	}
}

func (c *Client) Err() chan error {
	return c.err
}
