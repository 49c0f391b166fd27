package game

// RollDice resolves the active player's turn roll: two d6, the player's
// minimum-roll floor, resource gains with the outcome bonus, and the turn
// handoff. Anything out of order (unknown player, finished game, not your
// turn) is a silent no-op.
func (r *Room) RollDice(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, ok := r.state.Players[playerID]
	if !ok {
		return
	}
	if r.state.Winner != "" {
		return
	}
	if r.state.ActivePlayerID != "" && r.state.ActivePlayerID != playerID {
		return
	}
	r.touch()

	die1 := r.dice.Roll()
	die2 := r.dice.Roll()

	if ps.MinRoll > 1 {
		die1 = max(die1, ps.MinRoll)
		die2 = max(die2, ps.MinRoll)
	}

	wood, stone, bricks := resourceGains(die1, die2, ps)

	ps.Die1 = die1
	ps.Die2 = die2
	ps.IsRolling = false
	ps.Wood += wood
	ps.Stone = min(ps.Stone+stone, ResourceCap)
	ps.Bricks = min(ps.Bricks+bricks, ResourceCap)

	if ps.FreeRolls > 0 {
		ps.FreeRolls--
	}

	r.advanceTurn(playerID)

	r.bc.Broadcast(r.Code, EventDiceRolled, DiceRolledPayload{
		PlayerID:  playerID,
		GameState: r.state,
	})
}

// resourceGains computes the three gains for a roll, after the bonus
// multiplier, truncated toward zero.
func resourceGains(die1, die2 int, ps *PlayerState) (wood, stone, bricks int) {
	bonus := bonusMultiplier(die1, die2)

	wood = int(float64(die1) * 10 * ps.WoodMultiplier * bonus)
	stone = int(float64(die2) * 5 * ps.StoneMultiplier * bonus)
	bricks = int(float64(die1+die2) * 2 * ps.BricksMultiplier * bonus)
	return wood, stone, bricks
}

// bonusMultiplier ranks roll outcomes: doubles beat a high sum beats a low
// sum. Double sixes are the jackpot.
func bonusMultiplier(die1, die2 int) float64 {
	switch {
	case die1 == die2 && die1 == 6:
		return 3
	case die1 == die2:
		return 2
	case die1+die2 >= 10:
		return 1.5
	case die1+die2 <= 4:
		return 0.8
	default:
		return 1
	}
}
