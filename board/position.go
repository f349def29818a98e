package board

import "fmt"

// Position wraps a Board with side-to-move, castling rights, the en-passant
// square, the half-move clock, the full-move counter, the incrementally
// maintained Zobrist key, and a history stack used for both undo (make/
// unmake) and repetition detection.
type Position struct {
	board Board

	sideToMove Colour
	castling   CastlingRights
	epSquare   Square

	halfmoveClock  int
	fullmoveNumber int

	zobristKey uint64

	history []HistoryEntry
}

// HistoryEntry records everything needed to unmake a move and to test for
// repetition: the move itself, what it captured, and the irreversible state
// it overwrote.
type HistoryEntry struct {
	Move           Move
	CapturedPiece  Piece
	PrevCastling   CastlingRights
	PrevEpSquare   Square
	PrevHalfmove   int
	PrevZobristKey uint64
	PostZobristKey uint64
	IsNullMove     bool
}

const maxHistoryCapacityHint = 256

func NewPosition() *Position {
	pos := &Position{history: make([]HistoryEntry, 0, maxHistoryCapacityHint)}
	for sq := range pos.board.pieces {
		pos.board.pieces[sq] = NoPiece
	}
	return pos
}

func (pos *Position) Board() *Board           { return &pos.board }
func (pos *Position) SideToMove() Colour      { return pos.sideToMove }
func (pos *Position) Castling() CastlingRights { return pos.castling }
func (pos *Position) EnPassantSquare() Square { return pos.epSquare }
func (pos *Position) HalfmoveClock() int      { return pos.halfmoveClock }
func (pos *Position) FullmoveNumber() int     { return pos.fullmoveNumber }
func (pos *Position) ZobristKey() uint64      { return pos.zobristKey }
func (pos *Position) Ply() int                { return len(pos.history) }

// Clone returns a deep, independent copy of the position.
func (pos *Position) Clone() *Position {
	np := *pos
	np.history = make([]HistoryEntry, len(pos.history), maxHistoryCapacityHint)
	copy(np.history, pos.history)
	return &np
}

func epCaptureIsPossible(b *Board, epSquare Square, sideToMove Colour) bool {
	if epSquare == NoSquare {
		return false
	}
	attackers := PawnAttacks(sideToMove.Other(), epSquare) & b.PieceBB(MakePiece(sideToMove, Pawn))
	return attackers != 0
}

// AssertConsistent cross-checks the mailbox/bitboards and the incrementally
// maintained Zobrist key, returning the first inconsistency found. Intended
// for use in tests and debug builds.
func (pos *Position) AssertConsistent() error {
	if err := pos.board.Validate(); err != nil {
		return err
	}
	if want := pos.ComputeZobrist(); want != pos.zobristKey {
		return fmt.Errorf("board: zobrist key mismatch: recomputed %#x, incremental %#x", want, pos.zobristKey)
	}
	return nil
}
