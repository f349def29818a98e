// Package search implements static evaluation and alpha-beta search on top
// of the board package: transposition table, move ordering, iterative
// deepening, quiescence search, and the UCI-facing search driver.
package search

import "falcon/board"

// Evaluation is a tapered material + piece-square + king-safety score from
// the perspective of the side to move, in centipawns.
func Evaluate(pos *board.Position) int {
	b := pos.Board()
	phase := gamePhase(b)

	mg, eg := 0, 0
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		sign := 1
		relSq := sq
		if p.Colour() == board.Black {
			sign = -1
			relSq = flipSquare(sq)
		}
		pt := p.Type()
		mg += sign * (pieceValueMG[pt] + psqtMG[pt][relSq])
		eg += sign * (pieceValueEG[pt] + psqtEG[pt][relSq])
	}

	mg += kingSafety(b, board.White, phase) - kingSafety(b, board.Black, phase)
	eg += kingSafetyEndgame(b, board.White) - kingSafetyEndgame(b, board.Black)

	score := (mg*phase + eg*(256-phase)) / 256
	if pos.SideToMove() == board.Black {
		score = -score
	}
	return score
}

func flipSquare(sq board.Square) board.Square {
	return board.SquareFromCoords(sq.File(), 7-sq.Rank())
}

// gamePhase returns a 0..256 value, 256 at the start of the game and
// trending to 0 as non-pawn material is traded off, used to blend the
// middlegame and endgame scores.
var phaseWeight = [7]int{0, 0, 1, 1, 2, 4, 0}

const totalPhase = 24 // 4 knights+bishops*1 + 4 rooks*2 + 2 queens*4

func gamePhase(b *board.Board) int {
	phase := 0
	for pt := board.Knight; pt <= board.Queen; pt++ {
		count := b.PieceBB(board.MakePiece(board.White, pt)).PopCount() +
			b.PieceBB(board.MakePiece(board.Black, pt)).PopCount()
		phase += count * phaseWeight[pt]
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase * 256 / totalPhase
}

var pieceValueMG = [7]int{0, 82, 337, 365, 477, 1025, 0}
var pieceValueEG = [7]int{0, 94, 281, 297, 512, 936, 0}

// kingSafety scores pawn-shield and open-file exposure around the king,
// phase-scaled so it matters most in the middlegame.
func kingSafety(b *board.Board, c board.Colour, phase int) int {
	kingSq := b.KingSquare(c)
	file := kingSq.File()

	shieldRank := kingSq.Rank() + 1
	if c == board.Black {
		shieldRank = kingSq.Rank() - 1
	}

	score := 0
	for df := -1; df <= 1; df++ {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		fileBB := fileMask(f)
		pawns := b.PieceBB(board.MakePiece(c, board.Pawn))
		if fileBB&pawns == 0 {
			score -= 12 // open file near the king
		}
		if shieldRank >= 0 && shieldRank < 8 {
			shieldSq := board.SquareFromCoords(f, shieldRank)
			if pawns.Has(shieldSq) {
				score += 8
			}
		}
	}
	return score * phase / 256
}

func kingSafetyEndgame(b *board.Board, c board.Colour) int {
	// In the endgame king activity matters more than shelter: reward
	// centralization lightly via distance from the four centre squares.
	kingSq := b.KingSquare(c)
	f, r := kingSq.File(), kingSq.Rank()
	centreDist := abs(f-3) + abs(f-4) + abs(r-3) + abs(r-4)
	return 10 - centreDist
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func fileMask(f int) board.Bitboard {
	var bb board.Bitboard
	for r := 0; r < 8; r++ {
		bb |= board.SquareBB(board.SquareFromCoords(f, r))
	}
	return bb
}
