package board

import "sync"

// Perft counts leaf nodes of the legal move tree at the given depth, used
// to validate the move generator against known node counts. The move list
// used at each ply is pooled to keep the hot recursive path allocation-free.

var moveListPool = sync.Pool{New: func() any { return NewMoveList() }}

func Perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	ml := moveListPool.Get().(*MoveList)
	defer moveListPool.Put(ml)
	GenerateLegalMoves(pos, ml)

	if depth == 1 {
		return uint64(len(ml.Moves))
	}

	moves := make([]Move, len(ml.Moves))
	copy(moves, ml.Moves)

	var total uint64
	for _, m := range moves {
		pos.MakeMove(m)
		total += Perft(pos, depth-1)
		pos.UnmakeMove()
	}
	return total
}

// PerftDivide returns, for each legal root move, the leaf count below it.
func PerftDivide(pos *Position, depth int) []struct {
	Move  Move
	Nodes uint64
} {
	var ml MoveList
	GenerateLegalMoves(pos, &ml)
	moves := make([]Move, len(ml.Moves))
	copy(moves, ml.Moves)

	results := make([]struct {
		Move  Move
		Nodes uint64
	}, 0, len(moves))

	for _, m := range moves {
		pos.MakeMove(m)
		var nodes uint64
		if depth > 1 {
			nodes = Perft(pos, depth-1)
		} else {
			nodes = 1
		}
		pos.UnmakeMove()
		results = append(results, struct {
			Move  Move
			Nodes uint64
		}{Move: m, Nodes: nodes})
	}
	return results
}
