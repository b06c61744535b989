package board

// IsLegal reports whether a pseudo-legal move for the side to move keeps
// its own king safe. For non-king moves this is an O(1) pin test: the move
// is legal iff the mover is not pinned or the destination stays on the line
// through the king (sliding along or straight back down the pin ray).
//
// Two move kinds need more than the pin test and are resolved here as well:
// en-passant captures simulate the post-capture occupancy, since removing
// two pawns from one rank can uncover a rook the pin bitboard cannot see,
// and king moves (castling included) query attacks on the destination with
// the king's origin square removed from the occupancy.
//
// Check evasion is not this oracle's concern: when the king is in check the
// generator restricts non-king moves to blocking or capturing squares
// before consulting it.
func (b *Board) IsLegal(m Move) bool {
	from := m.From()
	to := m.To()
	flag := m.Flag()
	us := b.sideToMove
	them := 1 - us
	ksq := b.KingSquare(us)

	if flag == FlagCastleKing || flag == FlagCastleQueen {
		// Castling out of or through an attacked square is illegal.
		if b.checkers != 0 {
			return false
		}
		dir := Square(1)
		if flag == FlagCastleQueen {
			dir = -1
		}
		occ := b.AllOccupancy()
		return !b.isSquareAttackedWithOcc(int(ksq+dir), them, occ) &&
			!b.isSquareAttackedWithOcc(int(ksq+2*dir), them, occ)
	}

	if from == ksq {
		// The origin square must not shield the destination from a slider.
		return !b.isSquareAttackedWithOcc(int(to), them, b.AllOccupancy()&^bb(from))
	}

	if flag == FlagEnPassant {
		capSq := epCaptureSquare(us, to)
		occ := b.AllOccupancy()&^bb(from)&^bb(capSq) | bb(to)
		ti := int(them)
		return bishopAttacks(int(ksq), occ)&(b.bishops[ti]|b.queens[ti]) == 0 &&
			rookAttacks(int(ksq), occ)&(b.rooks[ti]|b.queens[ti]) == 0
	}

	return b.pinned[us]&bb(from) == 0 || Aligned(from, to, ksq)
}
