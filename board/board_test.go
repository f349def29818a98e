package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip: got %q, want %q", got, fen)
		}
		if err := pos.AssertConsistent(); err != nil {
			t.Errorf("AssertConsistent after parse: %v", err)
		}
	}
}

func TestMakeUnmakeRestoresZobrist(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	startKey := pos.ZobristKey()

	var ml MoveList
	GenerateLegalMoves(pos, &ml)
	if len(ml.Moves) != 20 {
		t.Fatalf("expected 20 legal moves from startpos, got %d", len(ml.Moves))
	}

	for _, m := range ml.Moves {
		pos.MakeMove(m)
		if err := pos.AssertConsistent(); err != nil {
			t.Fatalf("after MakeMove(%s): %v", m, err)
		}
		pos.UnmakeMove()
		if pos.ZobristKey() != startKey {
			t.Fatalf("UnmakeMove(%s) did not restore zobrist key: got %#x want %#x", m, pos.ZobristKey(), startKey)
		}
		if err := pos.AssertConsistent(); err != nil {
			t.Fatalf("after UnmakeMove(%s): %v", m, err)
		}
	}
}

func TestNullMoveRoundTrip(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	startKey := pos.ZobristKey()
	pos.MakeNullMove()
	if pos.SideToMove() != Black {
		t.Fatalf("null move should flip side to move")
	}
	pos.UnmakeNullMove()
	if pos.ZobristKey() != startKey {
		t.Fatalf("UnmakeNullMove did not restore zobrist key")
	}
}

func TestRepetitionDraw(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for i, mv := range moves {
		m, err := ParseUCIMove(pos, mv)
		if err != nil {
			t.Fatalf("move %d (%s): %v", i, mv, err)
		}
		pos.MakeMove(m)
	}
	if !pos.IsRepetitionDraw(0) {
		t.Errorf("expected repetition draw after replaying the same 4-move cycle twice")
	}
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseUCIMove(pos, "a1a8")
	if err != nil {
		t.Fatalf("ParseUCIMove: %v", err)
	}
	pos.MakeMove(m)
	if pos.Castling().Has(WhiteQueenside) {
		t.Errorf("white queenside rights should be lost after the rook itself moves")
	}
	if pos.Castling().Has(BlackQueenside) {
		t.Errorf("black queenside rights should be lost after its rook is captured")
	}
}

func TestKingCannotStepAdjacentToEnemyKing(t *testing.T) {
	pos, err := ParseFEN("8/8/8/3k4/8/3K4/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var ml MoveList
	GenerateLegalMoves(pos, &ml)
	d4 := SquareFromCoords(3, 3)
	for _, m := range ml.Moves {
		if m.To() == d4 {
			t.Errorf("Kd3-d4 would step adjacent to the black king, got it as legal")
		}
	}
}

func TestEnPassantCannotExposeHorizontalDiscoveredCheck(t *testing.T) {
	// White king a5, black rook h5; white pawn b5, black pawn c5 (having
	// just played c7-c5). b5xc6 e.p. removes both the b5 and c5 pawns from
	// the 5th rank in one move, opening the rank from Rh5 straight to Ka5 -
	// a discovered check that checkersAndPins cannot see, since two pawns
	// (one friendly, one enemy) sit between the king and the rook before
	// the capture, not one.
	pos, err := ParseFEN("k7/8/8/KPp4r/8/8/8/8 w - c6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var ml MoveList
	GenerateLegalMoves(pos, &ml)
	b5, c6 := SquareFromCoords(1, 4), SquareFromCoords(2, 5)
	for _, m := range ml.Moves {
		if m.From() == b5 && m.To() == c6 {
			t.Errorf("b5xc6 e.p. exposes Ka5 to Rh5 along the 5th rank, got it as legal")
		}
	}
}

func TestKingCannotRetreatAlongCheckingRookRay(t *testing.T) {
	// White king on e4, checked by a black rook on e8 down the open e-file.
	// Ke4-e3 retreats straight back along that same file: still in check
	// once the king actually leaves e4, even though e4's own occupancy
	// would otherwise shield e3 from the naive attack query.
	pos, err := ParseFEN("k3r3/8/8/8/4K3/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var ml MoveList
	GenerateLegalMoves(pos, &ml)
	e4, e3 := SquareFromCoords(4, 3), SquareFromCoords(4, 2)
	for _, m := range ml.Moves {
		if m.From() == e4 && m.To() == e3 {
			t.Errorf("Ke4-e3 stays in check on the rook's file, got it as legal")
		}
	}
}
