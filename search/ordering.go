package search

import (
	"sort"

	"falcon/board"
)

// Move ordering: hash move first, then captures by MVV-LVA, then killers,
// then the rest.
var mvvLva [7][7]int

func init() {
	victimValue := [7]int{0, 100, 320, 330, 500, 900, 0}
	for victim := 0; victim < 7; victim++ {
		for attacker := 0; attacker < 7; attacker++ {
			mvvLva[victim][attacker] = victimValue[victim]*10 - victimValue[attacker]
		}
	}
}

const (
	scoreTTMove     = 1_000_000
	scoreCapture    = 100_000
	scorePromotion  = 90_000
	scoreKiller     = 80_000
)

type scoredMove struct {
	move  board.Move
	score int
}

// orderMoves sorts ml's moves in place by descending heuristic score.
func orderMoves(pos *board.Position, ml *board.MoveList, ttMove board.Move, killers *KillerTable, ply int) {
	scored := make([]scoredMove, len(ml.Moves))
	for i, m := range ml.Moves {
		scored[i] = scoredMove{move: m, score: scoreMove(pos, m, ttMove, killers, ply)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	for i, sm := range scored {
		ml.Moves[i] = sm.move
	}
}

func scoreMove(pos *board.Position, m board.Move, ttMove board.Move, killers *KillerTable, ply int) int {
	if m == ttMove {
		return scoreTTMove
	}
	if m.IsCapture() {
		victim := m.CapturedPiece().Type()
		if m.IsEnPassant() {
			victim = board.Pawn
		}
		attacker := m.MovedPiece().Type()
		return scoreCapture + mvvLva[victim][attacker]
	}
	if m.IsPromotion() {
		return scorePromotion
	}
	if killers.IsKiller(ply, m) {
		return scoreKiller
	}
	return 0
}
