package board

// MakeMove/UnmakeMove/MakeNullMove apply and undo moves with incremental
// Zobrist maintenance. Moves are expected to come from GenerateLegalMoves
// (or to already be known-legal, e.g. from a transposition table probe),
// so this does not re-check king safety after applying.

func pawnForward(c Colour) int {
	if c == White {
		return 8
	}
	return -8
}

func castlingRookSquares(c Colour, flag uint32) (from, to Square) {
	if c == White {
		if flag == moveFlagCastleKing {
			return 7, 5
		}
		return 0, 3
	}
	if flag == moveFlagCastleKing {
		return 63, 61
	}
	return 56, 59
}

func castlingRightsLostBy(sq Square) CastlingRights {
	switch sq {
	case 4:
		return WhiteKingside | WhiteQueenside
	case 0:
		return WhiteQueenside
	case 7:
		return WhiteKingside
	case 60:
		return BlackKingside | BlackQueenside
	case 56:
		return BlackQueenside
	case 63:
		return BlackKingside
	}
	return 0
}

// MakeMove applies m to pos, pushing a HistoryEntry that UnmakeMove consumes.
func (pos *Position) MakeMove(m Move) {
	b := &pos.board
	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	captured := m.CapturedPiece()
	flags := m.Flags()

	entry := HistoryEntry{
		Move:           m,
		CapturedPiece:  captured,
		PrevCastling:   pos.castling,
		PrevEpSquare:   pos.epSquare,
		PrevHalfmove:   pos.halfmoveClock,
		PrevZobristKey: pos.zobristKey,
	}

	key := pos.zobristKey
	key ^= zobristCastling[pos.castling]
	if epCaptureIsPossible(b, pos.epSquare, pos.sideToMove) {
		key ^= zobristEnPassant[pos.epSquare.File()]
	}

	if flags == moveFlagEnPassant {
		capSq := Square(int(to) - pawnForward(pos.sideToMove))
		key ^= zobristPiece[b.pieces[capSq]][capSq]
		b.removePiece(capSq)
	} else if captured != NoPiece {
		key ^= zobristPiece[captured][to]
		b.removePiece(to)
	}

	key ^= zobristPiece[moved][from]
	b.removePiece(from)

	placed := moved
	if promo := m.PromotionPiece(); promo != NoPiece {
		placed = promo
	}
	b.addPiece(placed, to)
	key ^= zobristPiece[placed][to]

	if flags == moveFlagCastleKing || flags == moveFlagCastleQueen {
		rookFrom, rookTo := castlingRookSquares(pos.sideToMove, flags)
		rook := b.pieces[rookFrom]
		key ^= zobristPiece[rook][rookFrom]
		b.removePiece(rookFrom)
		b.addPiece(rook, rookTo)
		key ^= zobristPiece[rook][rookTo]
	}

	pos.castling &^= castlingRightsLostBy(from)
	pos.castling &^= castlingRightsLostBy(to)
	key ^= zobristCastling[pos.castling]

	pos.epSquare = NoSquare
	if flags == moveFlagDoublePush {
		pos.epSquare = Square((int(from) + int(to)) / 2)
	}
	nextToMove := pos.sideToMove.Other()
	if epCaptureIsPossible(b, pos.epSquare, nextToMove) {
		key ^= zobristEnPassant[pos.epSquare.File()]
	}

	if moved.Type() == Pawn || captured != NoPiece || flags == moveFlagEnPassant {
		pos.halfmoveClock = 0
	} else {
		pos.halfmoveClock++
	}
	if pos.sideToMove == Black {
		pos.fullmoveNumber++
	}

	pos.sideToMove = nextToMove
	key ^= zobristSideToMove

	pos.zobristKey = key
	entry.PostZobristKey = key
	pos.history = append(pos.history, entry)
}

// UnmakeMove reverts the most recently made move.
func (pos *Position) UnmakeMove() {
	n := len(pos.history)
	entry := pos.history[n-1]
	pos.history = pos.history[:n-1]

	m := entry.Move
	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	flags := m.Flags()
	moverColour := moved.Colour()

	b := &pos.board
	b.removePiece(to)
	b.addPiece(moved, from)

	if flags == moveFlagEnPassant {
		capSq := Square(int(to) - pawnForward(moverColour))
		b.addPiece(entry.CapturedPiece, capSq)
	} else if entry.CapturedPiece != NoPiece {
		b.addPiece(entry.CapturedPiece, to)
	}

	if flags == moveFlagCastleKing || flags == moveFlagCastleQueen {
		rookFrom, rookTo := castlingRookSquares(moverColour, flags)
		rook := b.pieces[rookTo]
		b.removePiece(rookTo)
		b.addPiece(rook, rookFrom)
	}

	pos.castling = entry.PrevCastling
	pos.epSquare = entry.PrevEpSquare
	pos.halfmoveClock = entry.PrevHalfmove
	pos.zobristKey = entry.PrevZobristKey

	if moverColour == Black {
		pos.fullmoveNumber--
	}
	pos.sideToMove = moverColour
}

// MakeNullMove flips the side to move without playing a move, used by
// search's null-move pruning.
func (pos *Position) MakeNullMove() {
	entry := HistoryEntry{
		Move:           NullMove,
		PrevCastling:   pos.castling,
		PrevEpSquare:   pos.epSquare,
		PrevHalfmove:   pos.halfmoveClock,
		PrevZobristKey: pos.zobristKey,
		IsNullMove:     true,
	}
	key := pos.zobristKey
	if epCaptureIsPossible(&pos.board, pos.epSquare, pos.sideToMove) {
		key ^= zobristEnPassant[pos.epSquare.File()]
	}
	pos.epSquare = NoSquare
	if pos.sideToMove == Black {
		pos.fullmoveNumber++
	}
	pos.sideToMove = pos.sideToMove.Other()
	key ^= zobristSideToMove
	pos.zobristKey = key
	pos.halfmoveClock++

	entry.PostZobristKey = key
	pos.history = append(pos.history, entry)
}

func (pos *Position) UnmakeNullMove() {
	n := len(pos.history)
	entry := pos.history[n-1]
	pos.history = pos.history[:n-1]
	moverColour := pos.sideToMove.Other()
	pos.castling = entry.PrevCastling
	pos.epSquare = entry.PrevEpSquare
	pos.halfmoveClock = entry.PrevHalfmove
	if moverColour == Black {
		pos.fullmoveNumber--
	}
	pos.zobristKey = entry.PrevZobristKey
	pos.sideToMove = pos.sideToMove.Other()
}
