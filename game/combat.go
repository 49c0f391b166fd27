package game

import "errors"

var (
	errAlreadyAttacked  = errors.New("You can only attack once per turn!")
	errNoAdjacentCastle = errors.New("You can only attack castles adjacent to your own castle!")
)

// InitiateAttack is the announce phase: validate, mark the attacker's attack
// used, tell the room a battle started, and schedule the resolution after the
// battle delay. No dice exist until the resolve fires.
func (r *Room) InitiateAttack(conn Conn, attackerID, defenderID, buildingID string, x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attacker, ok := r.state.Players[attackerID]
	if !ok {
		return
	}
	if _, ok := r.state.Players[defenderID]; !ok {
		return
	}
	if conn == nil {
		conn = r.playerConn(attackerID)
	}
	if r.state.Winner != "" {
		return
	}
	if r.state.ActivePlayerID != attackerID {
		return
	}

	if attacker.HasAttacked {
		sendTo(conn, EventAttackError, errAlreadyAttacked.Error())
		return
	}

	idx := r.state.buildingIndex(buildingID, x, y)
	if idx == -1 {
		return
	}
	target := r.state.Buildings[idx]

	if target.PlayerID == attackerID {
		return
	}
	if target.Type != BuildingCastle {
		return
	}

	ownAdjacentCastle := false
	for _, b := range r.ownedBuildings(attackerID, BuildingCastle) {
		if neighbors(b.X, b.Y, x, y) {
			ownAdjacentCastle = true
			break
		}
	}
	if !ownAdjacentCastle {
		sendTo(conn, EventAttackError, errNoAdjacentCastle.Error())
		return
	}

	attacker.HasAttacked = true
	r.touch()

	r.bc.Broadcast(r.Code, EventBattleStarted, BattleStartedPayload{
		AttackerID: attackerID,
		DefenderID: defenderID,
		BuildingID: buildingID,
		X:          x,
		Y:          y,
	})

	// The resolve interleaves with whatever arrives during the delay, so it
	// re-looks-up the room by code and re-validates everything on entry.
	code := r.Code
	reg := r.reg
	r.schedule(r.battleDelay, func() {
		room := r
		if reg != nil {
			room = reg.Lookup(code)
		}
		if room == nil {
			return
		}
		room.resolveAttack(attackerID, defenderID, buildingID, x, y)
	})
}

// resolveAttack is the deferred phase: three attacker dice against two
// defender dice; higher sum wins, then higher single die, and a full tie goes
// to the defender. The world may have changed since the announcement, so
// every precondition is re-checked and a vanished room, player, building, or
// an intervening winner makes this a no-op.
func (r *Room) resolveAttack(attackerID, defenderID, buildingID string, x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attacker, aok := r.state.Players[attackerID]
	defender, dok := r.state.Players[defenderID]
	if !aok || !dok {
		return
	}
	if r.state.Winner != "" {
		return
	}

	idx := r.state.buildingIndex(buildingID, x, y)
	if idx == -1 {
		return
	}
	target := r.state.Buildings[idx]
	r.touch()

	attackerRolls := []int{r.dice.Roll(), r.dice.Roll(), r.dice.Roll()}
	defenderRolls := []int{r.dice.Roll(), r.dice.Roll()}

	attackerTotal, attackerMax := sumAndMax(attackerRolls)
	defenderTotal, defenderMax := sumAndMax(defenderRolls)

	winner := defenderID
	if attackerTotal > defenderTotal {
		winner = attackerID
	} else if attackerTotal == defenderTotal && attackerMax > defenderMax {
		winner = attackerID
	}

	destroyed := false
	pointsGained := 0

	if winner == attackerID {
		pointsGained = Catalog[target.Type].Points
		r.state.Buildings = append(r.state.Buildings[:idx], r.state.Buildings[idx+1:]...)

		defender.Points = max(defender.Points-pointsGained, 0)
		attacker.Points += pointsGained
		destroyed = true

		r.checkWin(attackerID)
	}

	r.bc.Broadcast(r.Code, EventAttackResult, AttackResultPayload{
		AttackerID:        attackerID,
		DefenderID:        defenderID,
		AttackerRolls:     attackerRolls,
		DefenderRolls:     defenderRolls,
		AttackerTotal:     attackerTotal,
		DefenderTotal:     defenderTotal,
		AttackerMax:       attackerMax,
		DefenderMax:       defenderMax,
		Winner:            winner,
		BuildingDestroyed: destroyed,
		PointsGained:      pointsGained,
	})

	if destroyed {
		r.bc.Broadcast(r.Code, EventMapUpdated, MapUpdatedPayload{Buildings: r.state.Buildings})
	}
	r.broadcastRoomState()
}

func sumAndMax(rolls []int) (sum, maxDie int) {
	for _, die := range rolls {
		sum += die
		maxDie = max(maxDie, die)
	}
	return sum, maxDie
}
