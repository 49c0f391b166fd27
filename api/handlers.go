package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/castlerush/server/game"
	"github.com/castlerush/server/tokens"
	"github.com/castlerush/server/util"
)

const tokenTTL = 24 * time.Hour

type createRoomRequest struct {
	PlayerName string `json:"playerName"`
}

// CreateRoom mints a fresh room code and a player identity. The room itself
// is created lazily when the first join-room event arrives over the socket.
func (s *Server) CreateRoom(c *gin.Context) {
	var data createRoomRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	roomID := util.NewRoomCode()
	playerID := util.NewPlayerID()
	playerName := data.PlayerName
	if playerName == "" {
		playerName = "Player " + playerID[:6]
	}

	token, err := tokens.NewPlayerToken(tokens.Payload{ID: playerID, Name: playerName}, []byte(s.config.JWTSecret), tokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("cannot sign player token")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, successResponse("Room created", gin.H{
		"roomId":     roomID,
		"playerId":   playerID,
		"playerName": playerName,
		"token":      token,
	}))
}

type joinRoomRequest struct {
	RoomID     string `json:"roomId" binding:"required"`
	PlayerName string `json:"playerName"`
}

// JoinRoom mints a player identity for an existing room code. The code is
// only normalized here; whether the room exists is decided at socket join,
// where an unseen code simply creates the room.
func (s *Server) JoinRoom(c *gin.Context) {
	var data joinRoomRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Room ID is required"))
		return
	}

	playerID := util.NewPlayerID()
	playerName := data.PlayerName
	if playerName == "" {
		playerName = "Player " + playerID[:6]
	}

	token, err := tokens.NewPlayerToken(tokens.Payload{ID: playerID, Name: playerName}, []byte(s.config.JWTSecret), tokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("cannot sign player token")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, successResponse("Joining room", gin.H{
		"roomId":     game.NormalizeCode(data.RoomID),
		"playerId":   playerID,
		"playerName": playerName,
		"token":      token,
	}))
}

// GetTokenData echoes the verified token payload; reconnecting clients use it
// to recover their identity without minting a new one.
func (s *Server) GetTokenData(c *gin.Context) {
	payload, ok := GetPayload(c)

	if !ok {
		log.Error().Msg("auth payload missing after middleware")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, successResponse("success", payload))
}
