package board_test

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"chess-core/board"
)

// Reference node counts from the standard perft positions.
var perftCases = []struct {
	name   string
	fen    string
	counts []uint64 // counts[i] is perft(i+1)
}{
	{
		name:   "startpos",
		fen:    board.FENStartPos,
		counts: []uint64{20, 400, 8902, 197281},
	},
	{
		name:   "kiwipete",
		fen:    "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		counts: []uint64{48, 2039, 97862},
	},
	{
		name:   "endgame",
		fen:    "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		counts: []uint64{14, 191, 2812, 43238},
	},
	{
		name:   "promotion",
		fen:    "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		counts: []uint64{6, 264, 9467},
	},
	{
		name:   "talkchess",
		fen:    "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		counts: []uint64{44, 1486, 62379},
	},
}

func TestPerft(t *testing.T) {
	for _, tc := range perftCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := board.MustParseFEN(tc.fen)
			for depth, want := range tc.counts {
				got := board.Perft(b, depth+1)
				if got != want {
					t.Errorf("perft(%d) = %d, want %d", depth+1, got, want)
				}
			}
			// Perft must leave the position untouched.
			if b.ToFEN() != tc.fen {
				t.Errorf("position mutated by perft: %q", b.ToFEN())
			}
		})
	}
}

// perftRef counts leaf nodes with dragontoothmg as an independent oracle.
func perftRef(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		nodes += perftRef(b, depth-1)
		unapply()
	}
	return nodes
}

// TestPerftAgainstReference cross-checks move generation against an
// independent engine at every node of a shallow tree, so a divergence is
// pinpointed to the position that caused it rather than a total count.
func TestPerftAgainstReference(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping differential perft in short mode")
	}
	for _, tc := range perftCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := board.MustParseFEN(tc.fen)
			ref := dragontoothmg.ParseFen(tc.fen)
			comparePerft(t, b, &ref, 3)
		})
	}
}

func comparePerft(t *testing.T, b *board.Board, ref *dragontoothmg.Board, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	moves := b.GenerateMoves()
	refMoves := ref.GenerateLegalMoves()
	if len(moves) != len(refMoves) {
		t.Fatalf("move count mismatch in %q: got %d, reference %d",
			b.ToFEN(), len(moves), len(refMoves))
	}
	for _, m := range moves {
		rm, ok := refMoveByUCI(refMoves, m.String())
		if !ok {
			t.Fatalf("generated %s in %q, reference does not", m, b.ToFEN())
		}
		st := b.MakeMove(m)
		unapply := ref.Apply(rm)
		comparePerft(t, b, ref, depth-1)
		unapply()
		b.UnmakeMove(m, st)
	}
}

func refMoveByUCI(moves []dragontoothmg.Move, uci string) (dragontoothmg.Move, bool) {
	for _, m := range moves {
		if m.String() == uci {
			return m, true
		}
	}
	return 0, false
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	b := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	divide := board.PerftDivide(b, 2)
	var sum uint64
	for _, n := range divide {
		sum += n
	}
	if len(divide) != 48 {
		t.Errorf("divide entries: got %d want 48", len(divide))
	}
	if sum != 2039 {
		t.Errorf("divide sum: got %d want 2039", sum)
	}
}

func BenchmarkPerft(b *testing.B) {
	pos := board.StartPos()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if n := board.Perft(pos, 4); n != 197281 {
			b.Fatalf("perft(4) = %d", n)
		}
	}
}

func BenchmarkGenerateMoves(b *testing.B) {
	pos := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	buf := make([]board.Move, 0, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = pos.GenerateMovesInto(buf[:0])
	}
}

func BenchmarkMakeUnmake(b *testing.B) {
	pos := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := pos.GenerateMoves()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := moves[i%len(moves)]
		st := pos.MakeMove(m)
		pos.UnmakeMove(m, st)
	}
}
