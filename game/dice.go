package game

import (
	"math/rand"
	"time"
)

// Dice yields a single die value in [1, 6]. Injected so tests can load them.
type Dice interface {
	Roll() int
}

type sixSided struct{}

func (sixSided) Roll() int {
	return rand.Intn(6) + 1
}

// Scheduler runs fn after the given delay. The default wraps time.AfterFunc;
// tests substitute a manual one so deferred combat resolution fires on demand.
type Scheduler func(delay time.Duration, fn func())

func afterFunc(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
