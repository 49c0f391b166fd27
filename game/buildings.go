package game

import (
	"fmt"
	"time"
)

const (
	BuildingCastle = "castle"
	BuildingRoad   = "road"
)

const (
	// MapSize is the side length of the square grid; coordinates run [0, MapSize).
	MapSize = 10

	// WinPoints is the score a player must reach to end the game.
	WinPoints = 200

	// ResourceCap limits stone and bricks after a roll. Wood is uncapped.
	ResourceCap = 100
)

const (
	startingWood   = 1000
	startingStone  = 1000
	startingBricks = 1000
)

type Cost struct {
	Wood   int `json:"wood"`
	Stone  int `json:"stone"`
	Bricks int `json:"bricks"`
}

type BuildingSpec struct {
	Cost   Cost
	Points int
	Icon   string
	Name   string
}

// Catalog mirrors the building configuration the front end renders from.
var Catalog = map[string]BuildingSpec{
	BuildingCastle: {Cost: Cost{Wood: 200, Stone: 150, Bricks: 100}, Points: 30, Icon: "🏰", Name: "Castle"},
	BuildingRoad:   {Cost: Cost{Wood: 50, Stone: 30, Bricks: 20}, Points: 0, Icon: "🛣️", Name: "Road"},
}

// Building is one placed tile on the shared grid. At most one building ever
// occupies a given (x, y).
type Building struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Type     string `json:"buildingId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Icon     string `json:"icon"`
	Name     string `json:"name"`
}

func newBuilding(playerID, buildingType string, x, y int) *Building {
	spec := Catalog[buildingType]
	return &Building{
		ID:       fmt.Sprintf("%s-%d", playerID, time.Now().UnixMilli()),
		PlayerID: playerID,
		Type:     buildingType,
		X:        x,
		Y:        y,
		Icon:     spec.Icon,
		Name:     spec.Name,
	}
}

// neighbors reports whether two tiles touch 4-directionally. Diagonals do not
// count anywhere in the placement or combat rules.
func neighbors(x1, y1, x2, y2 int) bool {
	dx := abs(x1 - x2)
	dy := abs(y1 - y2)
	return (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
