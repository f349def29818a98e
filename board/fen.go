package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func pieceFromChar(c byte) (Piece, error) {
	switch c {
	case 'P':
		return WP, nil
	case 'N':
		return WN, nil
	case 'B':
		return WB, nil
	case 'R':
		return WR, nil
	case 'Q':
		return WQ, nil
	case 'K':
		return WK, nil
	case 'p':
		return BP, nil
	case 'n':
		return BN, nil
	case 'b':
		return BB, nil
	case 'r':
		return BR, nil
	case 'q':
		return BQ, nil
	case 'k':
		return BK, nil
	}
	return NoPiece, fmt.Errorf("fen: invalid piece char %q", c)
}

func charFromPiece(p Piece) byte {
	return pieceLetters[p]
}

// ParseFEN parses Forsyth-Edwards Notation into a Position.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen: expected at least 4 fields, got %d", len(fields))
	}

	pos := NewPosition()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := Rank8 - i
		file := FileA
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, err := pieceFromChar(c)
			if err != nil {
				return nil, err
			}
			if file > FileH {
				return nil, fmt.Errorf("fen: rank %d overflows", rank+1)
			}
			pos.board.addPiece(p, SquareFromCoords(file, rank))
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("fen: rank %d has wrong square count", rank+1)
		}
	}

	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	for _, c := range fields[2] {
		switch c {
		case 'K':
			pos.castling |= WhiteKingside
		case 'Q':
			pos.castling |= WhiteQueenside
		case 'k':
			pos.castling |= BlackKingside
		case 'q':
			pos.castling |= BlackQueenside
		case '-':
		default:
			return nil, fmt.Errorf("fen: invalid castling char %q", c)
		}
	}

	pos.epSquare = NoSquare
	if fields[3] != "-" {
		sq, err := parseAlgebraic(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid en-passant square: %w", err)
		}
		// The en-passant square is only ever the landing square of the side
		// that just double-pushed: rank 6 if White is to move (Black just
		// pushed), rank 3 if Black is to move (White just pushed).
		wantRank := Rank1 + 2
		if pos.sideToMove == White {
			wantRank = Rank8 - 2
		}
		if sq.Rank() != wantRank {
			return nil, fmt.Errorf("fen: en-passant square %s is not on the expected rank", sq)
		}
		pos.epSquare = sq
	}

	pos.halfmoveClock = 0
	pos.fullmoveNumber = 1
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid half-move clock: %w", err)
		}
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("fen: half-move clock %d does not fit in 8 bits", n)
		}
		pos.halfmoveClock = n
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid full-move number: %w", err)
		}
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("fen: full-move number %d does not fit in 8 bits", n)
		}
		pos.fullmoveNumber = n
	}

	pos.zobristKey = pos.ComputeZobrist()
	return pos, nil
}

// ToFEN renders the position back to Forsyth-Edwards Notation.
func (pos *Position) ToFEN() string {
	var sb strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			p := pos.board.pieces[SquareFromCoords(f, r)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != Rank1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.sideToMove.String())

	sb.WriteByte(' ')
	if pos.castling == 0 {
		sb.WriteByte('-')
	} else {
		if pos.castling.Has(WhiteKingside) {
			sb.WriteByte('K')
		}
		if pos.castling.Has(WhiteQueenside) {
			sb.WriteByte('Q')
		}
		if pos.castling.Has(BlackKingside) {
			sb.WriteByte('k')
		}
		if pos.castling.Has(BlackQueenside) {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.epSquare.String())

	fmt.Fprintf(&sb, " %d %d", pos.halfmoveClock, pos.fullmoveNumber)
	return sb.String()
}

func parseAlgebraic(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := s[0]
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return SquareFromCoords(int(file-'a'), int(rank-'1')), nil
}

// ParseUCIMove converts a UCI move-text token (e2e4, e7e8q, 0000) into a
// Move by resolving it against the legal moves of pos, so the resulting
// Move carries full capture/promotion/flag metadata.
func ParseUCIMove(pos *Position, text string) (Move, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "0000" {
		return NullMove, nil
	}
	if len(text) < 4 || len(text) > 5 {
		return 0, fmt.Errorf("uci move: invalid length %q", text)
	}
	from, err := parseAlgebraic(text[0:2])
	if err != nil {
		return 0, fmt.Errorf("uci move: %w", err)
	}
	to, err := parseAlgebraic(text[2:4])
	if err != nil {
		return 0, fmt.Errorf("uci move: %w", err)
	}
	var promoType PieceType
	if len(text) == 5 {
		switch text[4] {
		case 'q':
			promoType = Queen
		case 'r':
			promoType = Rook
		case 'b':
			promoType = Bishop
		case 'n':
			promoType = Knight
		default:
			return 0, fmt.Errorf("uci move: invalid promotion piece %q", text[4])
		}
	}

	var moves MoveList
	GenerateLegalMoves(pos, &moves)
	for _, m := range moves.Moves {
		if m.From() != from || m.To() != to {
			continue
		}
		if promoType != NoPieceType {
			if m.PromotionPiece() == NoPiece || m.PromotionPiece().Type() != promoType {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		return m, nil
	}
	return 0, fmt.Errorf("uci move: %q is not legal in this position", text)
}
