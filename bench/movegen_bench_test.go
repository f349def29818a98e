package bench

import (
	"testing"

	"falcon/board"
)

func benchGenerateMoves(b *testing.B, fen string) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	var ml board.MoveList
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.GenerateLegalMoves(pos, &ml)
	}
}

func BenchmarkGenerateMoves_Initial(b *testing.B) {
	benchGenerateMoves(b, board.StartFEN)
}

func BenchmarkGenerateMoves_Kiwipete(b *testing.B) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	benchGenerateMoves(b, fen)
}

func BenchmarkGenerateMoves_Pos6(b *testing.B) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
	benchGenerateMoves(b, fen)
}

func benchCaptures(b *testing.B, fen string) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	var ml board.MoveList
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.GenerateCaptures(pos, &ml)
	}
}

func BenchmarkGenerateCaptures_EP(b *testing.B) {
	fen := "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	benchCaptures(b, fen)
}

func BenchmarkMakeUnmake_AllMoves_Initial(b *testing.B) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	var ml board.MoveList
	board.GenerateLegalMoves(pos, &ml)
	moves := make([]board.Move, len(ml.Moves))
	copy(moves, ml.Moves)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			pos.MakeMove(m)
			pos.UnmakeMove()
		}
	}
}
