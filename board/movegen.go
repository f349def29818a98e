package board

// Move generation: pseudo-legal generation directly filtered into legal
// moves by precomputed checkers and pin rays, plus a noisy-only mode for
// quiescence search and perft counting.

// MoveList is a reusable, allocation-free destination for generated moves.
type MoveList struct {
	Moves []Move
}

func NewMoveList() *MoveList { return &MoveList{Moves: make([]Move, 0, 128)} }

func (ml *MoveList) Reset() { ml.Moves = ml.Moves[:0] }

func (ml *MoveList) add(m Move) { ml.Moves = append(ml.Moves, m) }

type genMode int

const (
	genAll genMode = iota
	genCapturesOnly
	genQuietsOnly
)

// IsSquareAttacked reports whether sq is attacked by any piece of colour by.
func IsSquareAttacked(b *Board, sq Square, by Colour) bool {
	return isSquareAttackedOcc(b, sq, by, b.all)
}

// isSquareAttackedOcc is IsSquareAttacked with an explicit occupancy for the
// slider rays, so a caller can remove a piece (e.g. the moving king) from
// occupancy before asking whether it would still block a checking slider.
func isSquareAttackedOcc(b *Board, sq Square, by Colour, occ Bitboard) bool {
	if PawnAttacks(by.Other(), sq)&b.PieceBB(MakePiece(by, Pawn)) != 0 {
		return true
	}
	if KnightAttacks(sq)&b.PieceBB(MakePiece(by, Knight)) != 0 {
		return true
	}
	if KingAttacks(sq)&b.PieceBB(MakePiece(by, King)) != 0 {
		return true
	}
	bishopsQueens := b.PieceBB(MakePiece(by, Bishop)) | b.PieceBB(MakePiece(by, Queen))
	if BishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := b.PieceBB(MakePiece(by, Rook)) | b.PieceBB(MakePiece(by, Queen))
	if RookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

func (pos *Position) InCheck() bool {
	return IsSquareAttacked(&pos.board, pos.board.KingSquare(pos.sideToMove), pos.sideToMove.Other())
}

// checkersAndPins computes, for the side to move, the bitboard of pieces
// directly giving check and, for every square, the ray a pinned piece on
// that square is restricted to (zero means "not pinned").
func checkersAndPins(b *Board, kingSq Square, us Colour) (checkers Bitboard, pinRay [64]Bitboard) {
	them := us.Other()
	checkers |= PawnAttacks(us, kingSq) & b.PieceBB(MakePiece(them, Pawn))
	checkers |= KnightAttacks(kingSq) & b.PieceBB(MakePiece(them, Knight))

	bishopsQueens := b.PieceBB(MakePiece(them, Bishop)) | b.PieceBB(MakePiece(them, Queen))
	rooksQueens := b.PieceBB(MakePiece(them, Rook)) | b.PieceBB(MakePiece(them, Queen))

	ownBB := b.byColour[us]

	kf, kr := kingSq.File(), kingSq.Rank()
	for _, d := range allDirs {
		isDiag := d[0] != 0 && d[1] != 0
		sliders := rooksQueens
		if isDiag {
			sliders = bishopsQueens
		}
		var firstBlocker Square = NoSquare
		f, r := kf+d[0], kr+d[1]
		for f >= 0 && f < 8 && r >= 0 && r < 8 {
			sq := SquareFromCoords(f, r)
			if b.all.Has(sq) {
				if firstBlocker == NoSquare {
					firstBlocker = sq
					if ownBB.Has(sq) {
						f += d[0]
						r += d[1]
						continue
					}
					// First blocker is an enemy piece: checker if it's a matching slider.
					if sliders.Has(sq) {
						checkers |= SquareBB(sq)
					}
					break
				}
				// Second blocker found: if it's an enemy matching slider, the
				// first (own) blocker is pinned along this ray.
				if sliders.Has(sq) {
					pinRay[firstBlocker] = lineBetween(kingSq, sq) | SquareBB(sq)
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return checkers, pinRay
}

// GenerateLegalMoves fills ml with every legal move in pos.
func GenerateLegalMoves(pos *Position, ml *MoveList) { generateInto(pos, ml, genAll) }

// GenerateCaptures fills ml with every legal capturing move (including
// en-passant and capture-promotions) plus non-capturing promotions, used by
// quiescence search.
func GenerateCaptures(pos *Position, ml *MoveList) { generateInto(pos, ml, genCapturesOnly) }

func generateInto(pos *Position, ml *MoveList, mode genMode) {
	ml.Reset()
	b := &pos.board
	us := pos.sideToMove
	them := us.Other()
	kingSq := b.KingSquare(us)

	checkers, pinRay := checkersAndPins(b, kingSq, us)
	numCheckers := checkers.PopCount()

	ownBB := b.byColour[us]
	theirBB := b.byColour[them]
	occ := b.all

	// When in check by more than one piece, only king moves can be legal:
	// no single non-king move can address two separate checking lines.
	var evasionMask Bitboard = ^Bitboard(0)
	if numCheckers == 1 {
		checkerSq, _ := checkers.PopLSB()
		evasionMask = SquareBB(checkerSq) | lineBetween(kingSq, checkerSq)
	} else if numCheckers > 1 {
		evasionMask = 0
	}

	addIfLegal := func(from, to Square, moved, captured, promo Piece, flags uint32) {
		if from != kingSq {
			if pr := pinRay[from]; pr != 0 && !pr.Has(to) {
				return
			}
			if numCheckers > 0 && !evasionMask.Has(to) {
				return
			}
		}
		switch mode {
		case genCapturesOnly:
			if captured == NoPiece && flags != moveFlagEnPassant && promo == NoPiece {
				return
			}
		case genQuietsOnly:
			if captured != NoPiece || flags == moveFlagEnPassant {
				return
			}
		}
		ml.add(NewMove(from, to, moved, captured, promo, flags))
	}

	genPromos := func(from, to Square, moved, captured Piece) {
		for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
			addIfLegal(from, to, moved, captured, MakePiece(us, pt), moveFlagNone)
		}
	}

	// Pawns.
	pawnBB := b.PieceBB(MakePiece(us, Pawn))
	forward := 8
	startRank, promoRank := Rank2ForColour(us), Rank8ForColour(us)
	if us == Black {
		forward = -8
	}
	for bb := pawnBB; bb != 0; {
		from, rest := bb.PopLSB()
		bb = rest
		to := Square(int(from) + forward)
		if to >= 0 && to < 64 && !occ.Has(to) {
			if to.Rank() == promoRank {
				genPromos(from, to, MakePiece(us, Pawn), NoPiece)
			} else {
				addIfLegal(from, to, MakePiece(us, Pawn), NoPiece, NoPiece, moveFlagNone)
				if from.Rank() == startRank {
					to2 := Square(int(from) + 2*forward)
					if !occ.Has(to2) {
						addIfLegal(from, to2, MakePiece(us, Pawn), NoPiece, NoPiece, moveFlagDoublePush)
					}
				}
			}
		}
		captures := PawnAttacks(us, from) & theirBB
		for cb := captures; cb != 0; {
			csq, crest := cb.PopLSB()
			cb = crest
			captured := b.pieces[csq]
			if csq.Rank() == promoRank {
				genPromos(from, csq, MakePiece(us, Pawn), captured)
			} else {
				addIfLegal(from, csq, MakePiece(us, Pawn), captured, NoPiece, moveFlagNone)
			}
		}
		if pos.epSquare != NoSquare && PawnAttacks(us, from).Has(pos.epSquare) {
			capturedSq := Square(int(pos.epSquare) - forward)
			// The horizontal discovered-check case: checkersAndPins can't
			// see a pin here, because both the capturing pawn and the
			// captured pawn sit between the king and a slider on the same
			// rank, and removing either one alone still leaves the ray
			// blocked. Re-test king safety directly with both pawns gone.
			occAfter := occ &^ SquareBB(from) &^ SquareBB(capturedSq) | SquareBB(pos.epSquare)
			if !isSquareAttackedOcc(b, kingSq, them, occAfter) {
				addIfLegal(from, pos.epSquare, MakePiece(us, Pawn), MakePiece(them, Pawn), NoPiece, moveFlagEnPassant)
			}
		}
	}

	genLeaper := func(pt PieceType, attacksOf func(Square) Bitboard) {
		for bb := b.PieceBB(MakePiece(us, pt)); bb != 0; {
			from, rest := bb.PopLSB()
			bb = rest
			targets := attacksOf(from) &^ ownBB
			for tb := targets; tb != 0; {
				to, trest := tb.PopLSB()
				tb = trest
				addIfLegal(from, to, MakePiece(us, pt), b.pieces[to], NoPiece, moveFlagNone)
			}
		}
	}
	genLeaper(Knight, KnightAttacks)

	// King moves: reject any destination the opponent attacks, with the
	// king itself removed from occupancy so it can't block a checking
	// slider from seeing through its own departure square.
	occWithoutKing := occ &^ SquareBB(kingSq)
	for bb := b.PieceBB(MakePiece(us, King)); bb != 0; {
		from, rest := bb.PopLSB()
		bb = rest
		targets := KingAttacks(from) &^ ownBB
		for tb := targets; tb != 0; {
			to, trest := tb.PopLSB()
			tb = trest
			if isSquareAttackedOcc(b, to, them, occWithoutKing) {
				continue
			}
			addIfLegal(from, to, MakePiece(us, King), b.pieces[to], NoPiece, moveFlagNone)
		}
	}

	genSlider := func(pt PieceType, attacksOf func(Square, Bitboard) Bitboard) {
		for bb := b.PieceBB(MakePiece(us, pt)); bb != 0; {
			from, rest := bb.PopLSB()
			bb = rest
			targets := attacksOf(from, occ) &^ ownBB
			for tb := targets; tb != 0; {
				to, trest := tb.PopLSB()
				tb = trest
				addIfLegal(from, to, MakePiece(us, pt), b.pieces[to], NoPiece, moveFlagNone)
			}
		}
	}
	genSlider(Bishop, BishopAttacks)
	genSlider(Rook, RookAttacks)
	genSlider(Queen, QueenAttacks)

	if mode != genCapturesOnly && numCheckers == 0 {
		generateCastling(pos, ml, addIfLegal)
	}
}

func Rank2ForColour(c Colour) int {
	if c == White {
		return Rank1 + 1
	}
	return Rank8 - 1
}

func Rank8ForColour(c Colour) int {
	if c == White {
		return Rank8
	}
	return Rank1
}

func generateCastling(pos *Position, ml *MoveList, addIfLegal func(from, to Square, moved, captured, promo Piece, flags uint32)) {
	b := &pos.board
	us := pos.sideToMove
	occ := b.all
	them := us.Other()

	if us == White {
		if pos.castling.Has(WhiteKingside) && !occ.Has(5) && !occ.Has(6) &&
			!IsSquareAttacked(b, 4, them) && !IsSquareAttacked(b, 5, them) && !IsSquareAttacked(b, 6, them) {
			addIfLegal(4, 6, WK, NoPiece, NoPiece, moveFlagCastleKing)
		}
		if pos.castling.Has(WhiteQueenside) && !occ.Has(1) && !occ.Has(2) && !occ.Has(3) &&
			!IsSquareAttacked(b, 4, them) && !IsSquareAttacked(b, 3, them) && !IsSquareAttacked(b, 2, them) {
			addIfLegal(4, 2, WK, NoPiece, NoPiece, moveFlagCastleQueen)
		}
	} else {
		if pos.castling.Has(BlackKingside) && !occ.Has(61) && !occ.Has(62) &&
			!IsSquareAttacked(b, 60, them) && !IsSquareAttacked(b, 61, them) && !IsSquareAttacked(b, 62, them) {
			addIfLegal(60, 62, BK, NoPiece, NoPiece, moveFlagCastleKing)
		}
		if pos.castling.Has(BlackQueenside) && !occ.Has(57) && !occ.Has(58) && !occ.Has(59) &&
			!IsSquareAttacked(b, 60, them) && !IsSquareAttacked(b, 59, them) && !IsSquareAttacked(b, 58, them) {
			addIfLegal(60, 58, BK, NoPiece, NoPiece, moveFlagCastleQueen)
		}
	}
}

// GivesCheck reports whether playing m from pos would leave the opponent's
// king in check, without mutating pos.
func GivesCheck(pos *Position, m Move) bool {
	np := pos.Clone()
	np.MakeMove(m)
	return np.InCheck()
}
