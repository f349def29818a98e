package board

// IsRepetitionDraw reports whether the current position is a draw by
// repetition, distinguishing cycles found purely inside the current
// search tree (searchPly plies deep from the search root) from repeats
// that reach back into the game's real move history: a single matching
// position within the search window is enough (the search would otherwise
// never terminate a cycling line), but a match that requires reaching
// outside the window needs a second occurrence to count as a genuine
// threefold.
func (pos *Position) IsRepetitionDraw(searchPly int) bool {
	if pos.halfmoveClock < 8 {
		return false
	}
	maxDist := pos.halfmoveClock
	if maxDist > len(pos.history) {
		maxDist = len(pos.history)
	}

	// Only entries at odd index distance d (same side to move as the current
	// position) are candidates: history[idx] stores the Zobrist key after
	// that ply's move and history[len-1] holds the current key, so the entry
	// at distance d lies d-1 plies back, an even number for odd d. idx == -1
	// is the boundary case: the
	// position before history[0]'s move was ever played, which has no
	// PostZobristKey of its own but is itself a legitimate occurrence.
	outsideMatches := 0
	for d := 5; d <= maxDist+1; d += 2 {
		idx := len(pos.history) - d
		if idx < -1 {
			break
		}
		var key uint64
		if idx == -1 {
			key = pos.history[0].PrevZobristKey
		} else {
			if pos.history[idx].IsNullMove {
				continue
			}
			key = pos.history[idx].PostZobristKey
		}
		if key != pos.zobristKey {
			continue
		}
		if d <= searchPly {
			return true
		}
		outsideMatches++
		if outsideMatches >= 2 {
			return true
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether the half-move clock has reached 100
// (fifty full moves without a capture or pawn push).
func (pos *Position) IsFiftyMoveDraw() bool { return pos.halfmoveClock >= 100 }
