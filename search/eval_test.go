package search

import (
	"strings"
	"testing"

	"falcon/board"
)

func TestEvaluateStartPositionIsBalanced(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if score := Evaluate(pos); score != 0 {
		t.Errorf("expected the symmetric start position to evaluate to 0, got %d", score)
	}
}

func TestEvaluateIsColourSymmetric(t *testing.T) {
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1"
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	original := Evaluate(pos)

	mirrored := mirrorFEN(fen)
	mpos, err := board.ParseFEN(mirrored)
	if err != nil {
		t.Fatalf("ParseFEN(mirrored): %v", err)
	}
	flipped := Evaluate(mpos)

	if original != flipped {
		t.Errorf("evaluation is not colour-symmetric: %d vs %d", original, flipped)
	}
}

// mirrorFEN builds the colour-flipped twin of a FEN: ranks are reversed,
// every piece letter's case is swapped, the side to move and castling
// rights swap colour, and the en-passant rank is mirrored.
func mirrorFEN(fen string) string {
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	for i, r := range ranks {
		ranks[i] = swapCase(r)
	}
	fields[0] = strings.Join(ranks, "/")

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}

	fields[2] = swapCase(fields[2])

	if fields[3] != "-" && len(fields[3]) == 2 {
		file := fields[3][0]
		rank := fields[3][1]
		fields[3] = string([]byte{file, '9' - (rank - '0')})
	}

	return strings.Join(fields, " ")
}

func swapCase(s string) string {
	out := []byte(s)
	for i, c := range out {
		switch {
		case c >= 'a' && c <= 'z':
			out[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			out[i] = c - 'A' + 'a'
		}
	}
	return string(out)
}
