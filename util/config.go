package util

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
}

type Config struct {
	Port        string `validate:"required,number"`
	JWTSecret   string `validate:"required"`
	CORSOrigins []string
	RoomIdleTTL time.Duration
}

const defaultRoomIdleTTL = 30 * time.Minute

func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Port:        os.Getenv("PORT"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RoomIdleTTL: defaultRoomIdleTTL,
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				config.CORSOrigins = append(config.CORSOrigins, o)
			}
		}
	}

	if ttl := os.Getenv("ROOM_IDLE_TTL_MINUTES"); ttl != "" {
		minutes, err := strconv.Atoi(ttl)
		if err != nil {
			return nil, err
		}
		config.RoomIdleTTL = time.Duration(minutes) * time.Minute
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
