package board

// betweenBB[a][b] holds the squares strictly between a and b when they lie
// on a common rank, file or diagonal (exclusive of both endpoints); zero
// otherwise. Precomputed once at init and used both to restrict a pinned
// piece's legal destinations to its pin ray and to compute the
// block-or-capture mask when the side to move is in check from a slider.
var betweenBB [64][64]Bitboard

var allDirs = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func init() {
	for a := Square(0); a < 64; a++ {
		af, ar := a.File(), a.Rank()
		for _, d := range allDirs {
			var ray Bitboard
			f, r := af+d[0], ar+d[1]
			for f >= 0 && f < 8 && r >= 0 && r < 8 {
				sq := SquareFromCoords(f, r)
				betweenBB[a][sq] = ray
				ray |= SquareBB(sq)
				f += d[0]
				r += d[1]
			}
		}
	}
}

func lineBetween(a, b Square) Bitboard { return betweenBB[a][b] }
