package board

import "math/bits"

// setCheckInfo refreshes the stored derived state: the checkers bitboard
// for the side to move and the pinned bitboards for both sides. It is a
// pure function of the current occupancy and side to move, called
// synchronously at the end of every mutation.
func (b *Board) setCheckInfo() {
	occ := b.occupancy[0] | b.occupancy[1]
	b.checkers = b.computeCheckers(b.sideToMove, occ)
	b.pinned[White] = b.computePinned(White, occ)
	b.pinned[Black] = b.computePinned(Black, occ)
}

// computeCheckers returns the enemy pieces whose attack pattern, blockers
// included, covers the given side's king square.
func (b *Board) computeCheckers(side Color, occ uint64) uint64 {
	us := int(side)
	kingBB := b.kings[us]
	if kingBB == 0 {
		return 0
	}
	ksq := bits.TrailingZeros64(kingBB)
	return b.attackersTo(ksq, occ) & b.occupancy[1-us]
}

// computePinned returns the given side's pieces that stand alone between
// their king and an enemy slider. Each candidate ray is handled
// independently: a ray with two or more interposed pieces pins nothing.
func (b *Board) computePinned(side Color, occ uint64) uint64 {
	us := int(side)
	them := 1 - us
	kingBB := b.kings[us]
	if kingBB == 0 {
		return 0
	}
	ksq := bits.TrailingZeros64(kingBB)

	// Candidate pinners: enemy sliders aligned with the king as if the
	// board were empty.
	snipers := rookAttacks(ksq, 0)&(b.rooks[them]|b.queens[them]) |
		bishopAttacks(ksq, 0)&(b.bishops[them]|b.queens[them])

	var pinned uint64
	for snipers != 0 {
		s := popLSB(&snipers)
		blockers := betweenBB[ksq][s] & occ
		if blockers != 0 && blockers&(blockers-1) == 0 && blockers&b.occupancy[us] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}
