package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Payload identifies a player across the HTTP surface and the websocket
// handshake. The id is the stable identity key; the name is display-only.
type Payload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewPlayerToken(payload Payload, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":   payload.ID,
		"name": payload.Name,
		"exp":  time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

func ParsePlayerToken(tokenString string, secret []byte) (*Payload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	id, ok1 := claims["id"].(string)
	name, ok2 := claims["name"].(string)

	if !ok1 || !ok2 || id == "" {
		return nil, errors.New("invalid token payload")
	}

	return &Payload{ID: id, Name: name}, nil
}
