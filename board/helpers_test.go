package board_test

import "chess-core/board"

// sq builds a square index from zero-based file and rank.
func sq(file, rank int) board.Square { return board.Square(rank*8 + file) }

// findMove looks up a legal move by its UCI string in the current position.
func findMove(b *board.Board, uci string) (board.Move, bool) {
	for _, m := range b.GenerateMoves() {
		if m.String() == uci {
			return m, true
		}
	}
	return 0, false
}
