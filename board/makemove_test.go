package board_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"chess-core/board"
)

// playAndUndo makes the named move, checks the resulting position with the
// given function, unmakes, and verifies the full board state (bitboards,
// mailbox, castling, ep, clocks, zobrist, check info) is restored exactly.
func playAndUndo(t *testing.T, fen, uci string, check func(t *testing.T, b *board.Board)) {
	t.Helper()
	b := board.MustParseFEN(fen)
	before := *b

	m, ok := findMove(b, uci)
	if !ok {
		t.Fatalf("move %q not legal in %q", uci, fen)
	}
	st := b.MakeMove(m)
	if !b.Validate() {
		t.Fatalf("board invalid after %s", uci)
	}
	if check != nil {
		check(t, b)
	}
	b.UnmakeMove(m, st)
	if !b.Validate() {
		t.Fatalf("board invalid after unmaking %s", uci)
	}
	if diff := cmp.Diff(before, *b, cmp.AllowUnexported(board.Board{})); diff != "" {
		t.Errorf("board not restored after %s (-before +after):\n%s", uci, diff)
	}
}

func TestMakeUnmakeQuietMove(t *testing.T) {
	playAndUndo(t, board.FENStartPos, "e2e4", func(t *testing.T, b *board.Board) {
		if b.PieceAt(28) != board.WhitePawn { // e4
			t.Errorf("pawn missing from e4")
		}
		if b.PieceAt(12) != board.NoPiece { // e2
			t.Errorf("e2 not vacated")
		}
		if b.EnPassantSquare() != 20 { // e3
			t.Errorf("ep square: got %d want 20", b.EnPassantSquare())
		}
		if b.SideToMove() != board.Black {
			t.Errorf("side to move not flipped")
		}
	})
}

func TestMakeUnmakeCapture(t *testing.T) {
	fen := "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2"
	playAndUndo(t, fen, "e4d5", func(t *testing.T, b *board.Board) {
		if b.PieceAt(35) != board.WhitePawn { // d5
			t.Errorf("capturing pawn missing from d5")
		}
		if b.EnPassantSquare() != board.NoSquare {
			t.Errorf("ep square not cleared after capture")
		}
		if b.HalfmoveClock() != 0 {
			t.Errorf("halfmove clock not reset by capture")
		}
	})
}

func TestMakeUnmakeEnPassant(t *testing.T) {
	// White pawn e5, black just played d7d5.
	fen := "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"
	playAndUndo(t, fen, "e5d6", func(t *testing.T, b *board.Board) {
		if b.PieceAt(43) != board.WhitePawn { // d6
			t.Errorf("pawn missing from d6 after en passant")
		}
		if b.PieceAt(35) != board.NoPiece { // d5: the passed pawn, not the dest
			t.Errorf("captured pawn still on d5")
		}
		if b.PieceAt(36) != board.NoPiece { // e5
			t.Errorf("e5 not vacated")
		}
	})
}

func TestMakeUnmakeCastling(t *testing.T) {
	fen := "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1"

	playAndUndo(t, fen, "e1g1", func(t *testing.T, b *board.Board) {
		if b.PieceAt(6) != board.WhiteKing || b.PieceAt(5) != board.WhiteRook {
			t.Errorf("kingside castle placement wrong: g1=%v f1=%v", b.PieceAt(6), b.PieceAt(5))
		}
		if b.PieceAt(4) != board.NoPiece || b.PieceAt(7) != board.NoPiece {
			t.Errorf("e1/h1 not vacated")
		}
		if b.CastlingRightsMask()&(board.CastlingWhiteK|board.CastlingWhiteQ) != 0 {
			t.Errorf("white castling rights not cleared")
		}
		if b.CastlingRightsMask()&(board.CastlingBlackK|board.CastlingBlackQ) == 0 {
			t.Errorf("black castling rights should be untouched")
		}
	})

	playAndUndo(t, fen, "e1c1", func(t *testing.T, b *board.Board) {
		if b.PieceAt(2) != board.WhiteKing || b.PieceAt(3) != board.WhiteRook {
			t.Errorf("queenside castle placement wrong: c1=%v d1=%v", b.PieceAt(2), b.PieceAt(3))
		}
		if b.PieceAt(4) != board.NoPiece || b.PieceAt(0) != board.NoPiece {
			t.Errorf("e1/a1 not vacated")
		}
	})
}

func TestMakeUnmakePromotion(t *testing.T) {
	fen := "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1"

	playAndUndo(t, fen, "a7a8q", func(t *testing.T, b *board.Board) {
		if b.PieceAt(56) != board.WhiteQueen {
			t.Errorf("expected queen on a8, got %v", b.PieceAt(56))
		}
		if b.PieceAt(48) != board.NoPiece {
			t.Errorf("a7 not vacated")
		}
	})

	// Capture promotion, underpromoting to a knight.
	playAndUndo(t, fen, "a7b8n", func(t *testing.T, b *board.Board) {
		if b.PieceAt(57) != board.WhiteKnight {
			t.Errorf("expected knight on b8, got %v", b.PieceAt(57))
		}
	})
}

// TestMakeUnmakeAllMoves walks every legal move (two plies deep) from a set of
// tactically dense positions and requires an exact state restore after each
// unmake, including the stored check and pin information.
func TestMakeUnmakeAllMoves(t *testing.T) {
	fens := []string{
		board.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		b := board.MustParseFEN(fen)
		walkMakeUnmake(t, b, 2)
	}
}

func walkMakeUnmake(t *testing.T, b *board.Board, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	for _, m := range b.GenerateMoves() {
		before := *b
		st := b.MakeMove(m)
		if !b.Validate() {
			t.Fatalf("invalid state after %s in %q", m, before.ToFEN())
		}
		walkMakeUnmake(t, b, depth-1)
		b.UnmakeMove(m, st)
		if diff := cmp.Diff(before, *b, cmp.AllowUnexported(board.Board{})); diff != "" {
			t.Fatalf("state not restored after %s in %q:\n%s", m, before.ToFEN(), diff)
		}
	}
}

func TestNullMoveRoundTrip(t *testing.T) {
	fen := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	b := board.MustParseFEN(fen)
	before := *b

	st := b.MakeNullMove()
	if b.SideToMove() != board.Black {
		t.Fatalf("side not flipped by null move")
	}
	if b.EnPassantSquare() != board.NoSquare {
		t.Fatalf("ep square must be cleared by null move")
	}
	b.UnmakeNullMove(st)
	if diff := cmp.Diff(before, *b, cmp.AllowUnexported(board.Board{})); diff != "" {
		t.Fatalf("state not restored after null move:\n%s", diff)
	}
}

func TestZobristIncrementalMatchesRecompute(t *testing.T) {
	b := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for _, m := range b.GenerateMoves() {
		st := b.MakeMove(m)
		if b.Hash() != b.ComputeZobrist() {
			t.Errorf("incremental zobrist diverged after %s", m)
		}
		b.UnmakeMove(m, st)
	}
}

func TestMakeMovePanicsOnEmptySource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for move from empty square")
		}
	}()
	b := board.StartPos()
	b.MakeMove(board.NewMove(16, 24, board.FlagQuiet)) // a3a4, nothing on a3
}

func TestUnmakeMovePanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for mismatched undo record")
		}
	}()
	b := board.StartPos()
	m1, _ := findMove(b, "e2e4")
	st := b.MakeMove(m1)
	m2 := board.NewMove(12, 20, board.FlagQuiet)
	b.UnmakeMove(m2, st)
}
