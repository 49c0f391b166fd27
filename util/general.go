package util

import (
	"math/rand"

	"github.com/google/uuid"
)

const roomCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const RoomCodeLength = 6

// NewRoomCode mints a short upper-case alphanumeric room code. Uniqueness is
// best-effort: an unlucky collision just lands the caller in an existing room.
func NewRoomCode() string {
	b := make([]byte, RoomCodeLength)
	for i := range b {
		b[i] = roomCodeLetters[rand.Intn(len(roomCodeLetters))]
	}
	return string(b)
}

func NewPlayerID() string {
	return uuid.NewString()
}
