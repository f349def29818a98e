// Package board implements position representation, attack generation and
// move generation for a chess engine core: squares, bitboards, the mailbox
// board, Zobrist hashing, FEN parsing, and make/unmake move application.
package board

import (
	"fmt"
	"math/bits"
)

// Square is a board index in little-endian rank-file order: a1=0, b1=1, ..., h8=63.
type Square int8

const NoSquare Square = -1

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(s.File()), '1'+byte(s.Rank()))
}

func SquareFromCoords(file, rank int) Square { return Square(rank*8 + file) }

// Colour identifies the side to move or the owner of a piece.
type Colour int8

const (
	White Colour = 0
	Black Colour = 1
)

func (c Colour) Other() Colour { return c ^ 1 }

func (c Colour) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// PieceType is the kind of piece, independent of colour.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece packs a colour and a piece type into a single ordinal, so that the
// colour of a piece is derivable from it directly: WP..WK occupy 0..5,
// BP..BK occupy 6..11.
type Piece int8

const NoPiece Piece = -1

const (
	WP Piece = iota
	WN
	WB
	WR
	WQ
	WK
	BP
	BN
	BB
	BR
	BQ
	BK
)

func MakePiece(c Colour, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(int8(c)*6 + int8(pt) - 1)
}

func (p Piece) Colour() Colour {
	if p < BP {
		return White
	}
	return Black
}

func (p Piece) Type() PieceType {
	if p == NoPiece {
		return NoPieceType
	}
	if p < BP {
		return PieceType(p + 1)
	}
	return PieceType(p - BP + 1)
}

var pieceLetters = [...]byte{'P', 'N', 'B', 'R', 'Q', 'K', 'p', 'n', 'b', 'r', 'q', 'k'}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	return string(pieceLetters[p])
}

// Bitboard is a 64-bit set of squares, bit i corresponding to Square(i).
type Bitboard uint64

func SquareBB(s Square) Bitboard { return Bitboard(1) << uint(s) }

func (b Bitboard) Has(s Square) bool { return b&SquareBB(s) != 0 }

func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// PopLSB returns the least-significant set square and the bitboard with it cleared.
func (b Bitboard) PopLSB() (Square, Bitboard) {
	s := Square(bits.TrailingZeros64(uint64(b)))
	return s, b & (b - 1)
}

// CastlingRights is a 4-bit mask: bit0 white king-side, bit1 white queen-side,
// bit2 black king-side, bit3 black queen-side.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

func (cr CastlingRights) Has(right CastlingRights) bool { return cr&right != 0 }

const (
	FileA = 0
	FileH = 7
	Rank1 = 0
	Rank8 = 7
)

const (
	bitboardFileA Bitboard = 0x0101010101010101
	bitboardFileH Bitboard = 0x8080808080808080
	bitboardRank1 Bitboard = 0x00000000000000FF
	bitboardRank8 Bitboard = 0xFF00000000000000
)
