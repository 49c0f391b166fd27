package game

import (
	"errors"

	"github.com/samber/lo"
)

// Player-facing placement rejections. These exact texts reach the requester
// through building-error; every other rejection is silent.
var (
	errRoadNeedsCastle  = errors.New("You need to build a castle first before building roads!")
	errRoadDisconnected = errors.New("Road must be adjacent to a castle or another road!")
	errCastlesTouching  = errors.New("Castles cannot be directly adjacent! Build a road between them first.")
	errCastleNeedsRoad  = errors.New("Castle must be adjacent to a road! Castles cannot be directly next to each other.")
)

// PurchaseBuilding validates and commits a building placement. Structural
// failures (bad coordinates, occupied tile, unknown type, wrong turn, cannot
// afford, finished game) reject silently; adjacency rule violations notify
// the requester through conn.
//
// checkRoadConnection is supplied by the caller and gates the road-adjacency
// requirement for second-or-later castles. The server takes it at face value.
func (r *Room) PurchaseBuilding(conn Conn, playerID, buildingType string, x, y int, checkRoadConnection bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, ok := r.state.Players[playerID]
	if !ok {
		return
	}
	if conn == nil {
		conn = r.playerConn(playerID)
	}
	if r.state.Winner != "" {
		return
	}
	if r.state.ActivePlayerID != "" && r.state.ActivePlayerID != playerID {
		return
	}
	if x < 0 || y < 0 || x >= MapSize || y >= MapSize {
		return
	}
	if r.state.buildingAt(x, y) != nil {
		return
	}

	spec, known := Catalog[buildingType]
	if !known {
		return
	}
	r.touch()

	switch buildingType {
	case BuildingRoad:
		if err := r.validateRoadPlacement(playerID, x, y); err != nil {
			sendTo(conn, EventBuildingError, err.Error())
			return
		}
	case BuildingCastle:
		if err := r.validateCastlePlacement(playerID, x, y, checkRoadConnection); err != nil {
			sendTo(conn, EventBuildingError, err.Error())
			return
		}
	}

	if ps.Wood < spec.Cost.Wood || ps.Stone < spec.Cost.Stone || ps.Bricks < spec.Cost.Bricks {
		return
	}

	ps.Wood -= spec.Cost.Wood
	ps.Stone = max(ps.Stone-spec.Cost.Stone, 0)
	ps.Bricks = max(ps.Bricks-spec.Cost.Bricks, 0)
	ps.Points += spec.Points

	r.state.Buildings = append(r.state.Buildings, newBuilding(playerID, buildingType, x, y))

	r.checkWin(playerID)

	r.bc.Broadcast(r.Code, EventBuildingPurchased, BuildingPurchasedPayload{
		PlayerID:   playerID,
		BuildingID: buildingType,
		Points:     spec.Points,
		X:          x,
		Y:          y,
		GameState:  r.state,
	})
	r.bc.Broadcast(r.Code, EventMapUpdated, MapUpdatedPayload{Buildings: r.state.Buildings})
}

// validateRoadPlacement: a road needs an owned castle somewhere, and the tile
// must touch one of the player's roads or castles. By induction every road
// network stays a single component rooted at a castle.
func (r *Room) validateRoadPlacement(playerID string, x, y int) error {
	network := r.ownedBuildings(playerID, BuildingCastle, BuildingRoad)

	castles := lo.Filter(network, func(b *Building, _ int) bool {
		return b.Type == BuildingCastle
	})
	if len(castles) == 0 {
		return errRoadNeedsCastle
	}

	connected := lo.SomeBy(network, func(b *Building) bool {
		return neighbors(b.X, b.Y, x, y)
	})
	if !connected {
		return errRoadDisconnected
	}
	return nil
}

// validateCastlePlacement: a first castle goes anywhere free. Castles never
// touch the owner's other castles directly; with checkRoadConnection set,
// later castles must also touch one of the owner's roads.
func (r *Room) validateCastlePlacement(playerID string, x, y int, checkRoadConnection bool) error {
	castles := r.ownedBuildings(playerID, BuildingCastle)

	touchingCastle := lo.SomeBy(castles, func(b *Building) bool {
		return neighbors(b.X, b.Y, x, y)
	})
	if touchingCastle {
		return errCastlesTouching
	}

	if len(castles) > 0 && checkRoadConnection {
		roads := r.ownedBuildings(playerID, BuildingRoad)
		touchingRoad := lo.SomeBy(roads, func(b *Building) bool {
			return neighbors(b.X, b.Y, x, y)
		})
		if !touchingRoad {
			return errCastleNeedsRoad
		}
	}
	return nil
}

func (r *Room) ownedBuildings(playerID string, types ...string) []*Building {
	return lo.Filter(r.state.Buildings, func(b *Building, _ int) bool {
		return b.PlayerID == playerID && lo.Contains(types, b.Type)
	})
}
