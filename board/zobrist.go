package board

// Zobrist hashing: a 64-bit fingerprint of a position maintained
// incrementally by make/unmake. Tables are generated at package init from a
// fixed xorshift64 seed (see attacks.go) rather than a seeded math/rand
// source, so every build produces byte-identical tables independent of the
// stdlib PRNG's implementation.

var (
	zobristPiece    [12][64]uint64
	zobristCastling [16]uint64
	zobristEnPassant [8]uint64
	zobristSideToMove uint64
)

const zobristSeed = 0xD1CEBEEF12345678

func init() {
	rng := newXorshift64(zobristSeed)
	for p := 0; p < 12; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rng.Next()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Next()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rng.Next()
	}
	zobristSideToMove = rng.Next()
}

// ComputeZobrist recomputes the Zobrist key of the position from scratch,
// used by Position.AssertConsistent to detect incremental-update drift.
func (pos *Position) ComputeZobrist() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		p := pos.board.pieces[sq]
		if p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	key ^= zobristCastling[pos.castling]
	if pos.epSquare != NoSquare && epCaptureIsPossible(&pos.board, pos.epSquare, pos.sideToMove) {
		key ^= zobristEnPassant[pos.epSquare.File()]
	}
	if pos.sideToMove == Black {
		key ^= zobristSideToMove
	}
	return key
}
