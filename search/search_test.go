package search

import (
	"testing"
	"time"

	"falcon/board"
)

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move, Re1-e8 is a back-rank mate.
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	s := NewSearcher(NewTranspositionTable(4))
	stopper := &Stopper{}
	best := s.Search(pos, Limits{Depth: 4}, stopper, NullReporter{})
	if best.String() != "e1e8" {
		t.Fatalf("expected the mating move e1e8, got %s", best)
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	s1 := NewSearcher(NewTranspositionTable(4))
	m1 := s1.Search(pos.Clone(), Limits{Depth: 5}, &Stopper{}, NullReporter{})

	s2 := NewSearcher(NewTranspositionTable(4))
	m2 := s2.Search(pos.Clone(), Limits{Depth: 5}, &Stopper{}, NullReporter{})

	if m1 != m2 {
		t.Errorf("search is not deterministic: got %s and %s from identical inputs", m1, m2)
	}
}

func TestSearchRespectsStopFlag(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	s := NewSearcher(NewTranspositionTable(4))
	stopper := &Stopper{}

	done := make(chan board.Move, 1)
	go func() {
		done <- s.Search(pos, Limits{Infinite: true}, stopper, NullReporter{})
	}()

	time.Sleep(20 * time.Millisecond)
	stopper.Stop()

	select {
	case m := <-done:
		if m.IsNull() {
			t.Errorf("expected a best move even when stopped early")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("search did not stop promptly after Stop()")
	}
}

func TestMateScoresAreMonotonicWithDistance(t *testing.T) {
	closer := MateValue - 2
	farther := MateValue - 6
	if !(closer > farther) {
		t.Errorf("a mate found closer to the root must score higher than one found farther away")
	}
}

func TestPVContainsOnlyLegalMoves(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	s := NewSearcher(NewTranspositionTable(4))
	var gotPV []board.Move
	reporter := reporterFunc{onIteration: func(info IterationInfo) { gotPV = info.PV }}
	s.Search(pos.Clone(), Limits{Depth: 4}, &Stopper{}, reporter)

	cur := pos.Clone()
	for _, m := range gotPV {
		var ml board.MoveList
		board.GenerateLegalMoves(cur, &ml)
		found := false
		for _, legal := range ml.Moves {
			if legal == m {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("PV move %s is not legal in the position it was played from", m)
		}
		cur.MakeMove(m)
	}
}

type reporterFunc struct {
	onIteration func(IterationInfo)
}

func (r reporterFunc) ReportIteration(info IterationInfo) {
	if r.onIteration != nil {
		r.onIteration(info)
	}
}
func (r reporterFunc) ReportBestMove(board.Move, board.Move) {}
