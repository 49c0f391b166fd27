package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/castlerush/server/game"
	"github.com/castlerush/server/util"
	"github.com/castlerush/server/ws"
)

type Server struct {
	config    *util.Config
	registry  *game.Registry
	wsManager *ws.Manager
	router    *gin.Engine
}

func NewServer(config *util.Config) *Server {
	router := gin.Default()

	if len(config.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = config.CORSOrigins
		corsConfig.AllowCredentials = true
		router.Use(cors.New(corsConfig))
	}

	// the manager is the broadcast fan-out for every room the registry creates
	manager := ws.NewManager(config)
	registry := game.NewRegistry(manager, game.Options{})
	manager.UseRegistry(registry)

	server := &Server{
		config:    config,
		registry:  registry,
		wsManager: manager,
		router:    router,
	}

	router.GET("/ws", server.wsManager.ServeWS)
	router.POST("/rooms", server.CreateRoom)
	router.POST("/rooms/join", server.JoinRoom)
	router.GET("/auth/me", server.AuthMiddleware, server.GetTokenData)

	return server
}

// Start runs the idle-room janitor and then serves until the listener fails.
func (s *Server) Start() error {
	go s.sweepIdleRooms()
	return s.router.Run(fmt.Sprintf(":%v", s.config.Port))
}

func (s *Server) sweepIdleRooms() {
	ticker := time.NewTicker(s.config.RoomIdleTTL / 2)
	defer ticker.Stop()

	for range ticker.C {
		if n := s.registry.Sweep(s.config.RoomIdleTTL, s.wsManager.HasSubscribers); n > 0 {
			log.Info().Int("evicted", n).Msg("swept idle rooms")
		}
	}
}
