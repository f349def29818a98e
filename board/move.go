package board

// Move packs a move into a single uint32: from (6 bits), to (6 bits),
// moved piece (4 bits), captured piece (4 bits), promotion piece (4 bits),
// and a flags nibble for castling / en-passant / double-pawn-push.
type Move uint32

const (
	moveFlagNone         uint32 = 0
	moveFlagEnPassant    uint32 = 1
	moveFlagCastleKing   uint32 = 2
	moveFlagCastleQueen  uint32 = 3
	moveFlagDoublePush   uint32 = 4
)

func packPiece(p Piece) uint32 {
	if p == NoPiece {
		return 0xF
	}
	return uint32(p) + 1
}

func unpackPiece(v uint32) Piece {
	if v == 0 || v == 0xF {
		return NoPiece
	}
	return Piece(v - 1)
}

func NewMove(from, to Square, moved, captured, promo Piece, flags uint32) Move {
	return Move(uint32(from) |
		uint32(to)<<6 |
		packPiece(moved)<<12 |
		packPiece(captured)<<16 |
		packPiece(promo)<<20 |
		flags<<24)
}

func (m Move) From() Square     { return Square(uint32(m) & 0x3F) }
func (m Move) To() Square       { return Square((uint32(m) >> 6) & 0x3F) }
func (m Move) MovedPiece() Piece    { return unpackPiece((uint32(m) >> 12) & 0xF) }
func (m Move) CapturedPiece() Piece { return unpackPiece((uint32(m) >> 16) & 0xF) }
func (m Move) PromotionPiece() Piece { return unpackPiece((uint32(m) >> 20) & 0xF) }
func (m Move) Flags() uint32    { return (uint32(m) >> 24) & 0xF }

func (m Move) IsCapture() bool    { return m.CapturedPiece() != NoPiece || m.Flags() == moveFlagEnPassant }
func (m Move) IsEnPassant() bool  { return m.Flags() == moveFlagEnPassant }
func (m Move) IsPromotion() bool  { return m.PromotionPiece() != NoPiece }
func (m Move) IsCastle() bool     { return m.Flags() == moveFlagCastleKing || m.Flags() == moveFlagCastleQueen }
func (m Move) IsDoublePush() bool { return m.Flags() == moveFlagDoublePush }

const NullMove Move = 0

func (m Move) IsNull() bool { return m == NullMove }

// String renders the move in long algebraic UCI move-text form (e2e4, e7e8q).
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		switch promo.Type() {
		case Queen:
			s += "q"
		case Rook:
			s += "r"
		case Bishop:
			s += "b"
		case Knight:
			s += "n"
		}
	}
	return s
}
