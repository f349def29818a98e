package tablebase

import (
	"testing"

	"falcon/board"
)

func TestNullNeverProbes(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var n Null
	if _, ok := n.ProbeWDL(pos); ok {
		t.Errorf("Null.ProbeWDL: want ok=false")
	}
	if _, ok := n.ProbeDTZ(pos); ok {
		t.Errorf("Null.ProbeDTZ: want ok=false")
	}
	if _, ok := n.ProbeRoot(pos, nil); ok {
		t.Errorf("Null.ProbeRoot: want ok=false")
	}
}

func TestIsProbeableRejectsCastlingRights(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	cfg := NewConfig()
	if IsProbeable(pos, cfg) {
		t.Errorf("start position has castling rights, should not be probeable")
	}
}

func TestIsProbeableRespectsPieceLimit(t *testing.T) {
	pos, err := board.ParseFEN("8/8/4k3/8/8/4K3/8/4R3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	cfg := NewConfig()
	if !IsProbeable(pos, cfg) {
		t.Errorf("KRvK has 3 pieces, well within the default limit of 6")
	}
	cfg.SetProbeLimit(2)
	if IsProbeable(pos, cfg) {
		t.Errorf("3 pieces should exceed a probe limit of 2")
	}
}

func TestShouldProbeHonoursDepthFloor(t *testing.T) {
	pos, err := board.ParseFEN("8/8/4k3/8/8/4K3/8/4R3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	cfg := NewConfig()
	cfg.SetProbeDepth(3)
	if ShouldProbe(pos, 2, cfg) {
		t.Errorf("remaining depth 2 is below the configured probe depth of 3")
	}
	if !ShouldProbe(pos, 3, cfg) {
		t.Errorf("remaining depth 3 meets the configured probe depth")
	}
}

func TestCentipawnValueMapping(t *testing.T) {
	cases := map[WdlResult]int{
		Win:         10000,
		CursedWin:   50,
		Draw:        0,
		BlessedLoss: -50,
		Loss:        -10000,
	}
	for wdl, want := range cases {
		if got := CentipawnValue(wdl); got != want {
			t.Errorf("CentipawnValue(%v) = %d, want %d", wdl, got, want)
		}
	}
}
