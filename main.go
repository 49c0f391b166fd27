package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/castlerush/server/api"
	"github.com/castlerush/server/util"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	util.InitValidator()

	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	server := api.NewServer(config)

	log.Info().Str("port", config.Port).Msg("starting castle rush server")

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
