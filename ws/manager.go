package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/castlerush/server/game"
	"github.com/castlerush/server/tokens"
	"github.com/castlerush/server/util"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Manager owns the websocket side: connected clients, the per-room subscriber
// sets the game broadcasts against, and the inbound event handler table.
type Manager struct {
	sync.RWMutex
	clients  map[string]*Client
	rooms    map[string]map[*Client]struct{}
	handlers map[string]EventHandler

	registry *game.Registry
	validate *validator.Validate
	config   *util.Config
}

func NewManager(config *util.Config) *Manager {
	m := &Manager{
		clients:  make(map[string]*Client),
		rooms:    make(map[string]map[*Client]struct{}),
		handlers: make(map[string]EventHandler),
		validate: validator.New(),
		config:   config,
	}

	m.setupEventHandlers()
	return m
}

// UseRegistry binds the room registry the event handlers act on. The manager
// is constructed first because the registry needs it as its Broadcaster.
func (m *Manager) UseRegistry(registry *game.Registry) {
	m.registry = registry
}

func (m *Manager) setupEventHandlers() {
	m.handlers[EventJoinRoom] = JoinRoomHandler
	m.handlers[EventRollDice] = RollDiceHandler
	m.handlers[EventPurchaseBuilding] = PurchaseBuildingHandler
	m.handlers[EventInitiateAttack] = InitiateAttackHandler
	m.handlers[EventSetRolling] = SetRollingHandler
	m.handlers[EventLeaveRoom] = LeaveRoomHandler
}

func (m *Manager) routeEvent(evt Event, c *Client) error {
	handler, ok := m.handlers[evt.Type]
	if !ok {
		return ErrUnknownEvent
	}
	return handler(evt, c)
}

// Broadcast implements game.Broadcaster: marshal once, fan out to every
// subscriber of the room. Called while the room lock is held, so the payload
// is serialized before any later mutation can touch it.
func (m *Manager) Broadcast(roomCode, event string, payload any) {
	evt, err := NewEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("cannot marshal broadcast payload")
		return
	}

	m.RLock()
	defer m.RUnlock()

	for client := range m.rooms[roomCode] {
		client.push(evt)
	}
}

// Subscribe adds a client to a room's broadcast set.
func (m *Manager) Subscribe(roomCode string, c *Client) {
	m.Lock()
	defer m.Unlock()

	subscribers, ok := m.rooms[roomCode]
	if !ok {
		subscribers = make(map[*Client]struct{})
		m.rooms[roomCode] = subscribers
	}
	subscribers[c] = struct{}{}
}

// Unsubscribe removes a client from a room's broadcast set. The player's
// roster entry and economy state are untouched; only delivery stops.
func (m *Manager) Unsubscribe(roomCode string, c *Client) {
	m.Lock()
	defer m.Unlock()

	if subscribers, ok := m.rooms[roomCode]; ok {
		delete(subscribers, c)
		if len(subscribers) == 0 {
			delete(m.rooms, roomCode)
		}
	}
}

// HasSubscribers reports whether any connection is still attached to the
// room. The registry's idle sweep uses it to spare occupied rooms.
func (m *Manager) HasSubscribers(roomCode string) bool {
	m.RLock()
	defer m.RUnlock()
	return len(m.rooms[roomCode]) > 0
}

func (m *Manager) addClient(c *Client) {
	m.Lock()
	defer m.Unlock()
	m.clients[c.SocketID] = c
}

func (m *Manager) removeClient(c *Client) {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.clients[c.SocketID]; !ok {
		return
	}

	c.connection.Close()
	delete(m.clients, c.SocketID)

	for code, subscribers := range m.rooms {
		delete(subscribers, c)
		if len(subscribers) == 0 {
			delete(m.rooms, code)
		}
	}
}

// ServeWS authenticates the handshake with the token minted by the HTTP
// surface, upgrades, and runs the read/write pumps until either errors.
func (m *Manager) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "token required"})
		return
	}

	payload, err := tokens.ParsePlayerToken(token, []byte(m.config.JWTSecret))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(payload.ID, payload.Name, conn, m)
	m.addClient(client)

	log.Info().Str("player", client.PlayerID).Str("name", client.PlayerName).Str("socket", client.SocketID).Msg("client connected")

	go client.readMessages()
	go client.writeMessages()

	err = <-client.Err()

	m.removeClient(client)
	log.Info().Err(err).Str("player", client.PlayerID).Msg("client disconnected")
}
