package search

import "falcon/board"

// Reporter receives progress information from the search as it runs, so the
// UCI adapter can translate it into "info" lines without the search package
// depending on UCI wire format.
type Reporter interface {
	ReportIteration(info IterationInfo)
	ReportBestMove(move board.Move, ponder board.Move)
}

// IterationInfo summarizes one completed iterative-deepening iteration.
type IterationInfo struct {
	Depth     int
	Score     int
	Nodes     uint64
	NPS       uint64
	ElapsedMs int64
	PV        []board.Move
	Mate      int // non-zero: score is a mate in this many moves (signed)
	HashFull  int // transposition table fill level, in permille
}

// NullReporter discards every report; used by perft/benchmark tools and in
// tests that don't care about progress output.
type NullReporter struct{}

func (NullReporter) ReportIteration(IterationInfo)         {}
func (NullReporter) ReportBestMove(board.Move, board.Move) {}
