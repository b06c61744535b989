package board

import "math/bits"

// Precomputed attack masks for knights and kings from each square.
var knightMoves [64]uint64
var kingMoves [64]uint64

// Pawn attack masks: pawnAttacks[color][sq] gives the squares a pawn of
// 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

// Precomputed rays for sliders. For each square and direction, the bitboard
// of squares in that ray (excluding the origin square).
// Rook directions: 0=N, 1=S, 2=E, 3=W
var rookRays [64][4]uint64

// Bishop directions: 0=NE, 1=NW, 2=SE, 3=SW
var bishopRays [64][4]uint64

// betweenBB[a][b]: squares strictly between a and b when they share a rank,
// file or diagonal; zero otherwise.
var betweenBB [64][64]uint64

// lineBB[a][b]: the full rank/file/diagonal through a and b (both endpoints
// included) when they are aligned; zero otherwise.
var lineBB [64][64]uint64

// Masks and lookup tables for slider attacks (software pext).
var rookMask [64]uint64
var bishopMask [64]uint64
var rookAttTable [64][]uint64
var bishopAttTable [64][]uint64

func init() {
	initAttackTables()
	initRays()
	initAlignmentTables()
	initSliderTables()
}

// initAttackTables precomputes attack bitboards for knights, kings and pawn captures.
func initAttackTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		var nMask, kMask uint64
		for i := 0; i < 8; i++ {
			if r, f := rank+knightOffsets[i][0], file+knightOffsets[i][1]; r >= 0 && r < 8 && f >= 0 && f < 8 {
				nMask |= uint64(1) << uint(r*8+f)
			}
			if r, f := rank+kingOffsets[i][0], file+kingOffsets[i][1]; r >= 0 && r < 8 && f >= 0 && f < 8 {
				kMask |= uint64(1) << uint(r*8+f)
			}
		}
		knightMoves[sq] = nMask
		kingMoves[sq] = kMask

		// Pawn attacks
		if rank < 7 {
			if file > 0 {
				pawnAttacks[White][sq] |= uint64(1) << uint((rank+1)*8+file-1)
			}
			if file < 7 {
				pawnAttacks[White][sq] |= uint64(1) << uint((rank+1)*8+file+1)
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttacks[Black][sq] |= uint64(1) << uint((rank-1)*8+file-1)
			}
			if file < 7 {
				pawnAttacks[Black][sq] |= uint64(1) << uint((rank-1)*8+file+1)
			}
		}
	}
}

// initRays precomputes directional rays for rook and bishop movement.
func initRays() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8

		var ray uint64
		for r := rank + 1; r < 8; r++ {
			ray |= 1 << uint(r*8+file)
		}
		rookRays[sq][0] = ray // N

		ray = 0
		for r := rank - 1; r >= 0; r-- {
			ray |= 1 << uint(r*8+file)
		}
		rookRays[sq][1] = ray // S

		ray = 0
		for f := file + 1; f < 8; f++ {
			ray |= 1 << uint(rank*8+f)
		}
		rookRays[sq][2] = ray // E

		ray = 0
		for f := file - 1; f >= 0; f-- {
			ray |= 1 << uint(rank*8+f)
		}
		rookRays[sq][3] = ray // W

		ray = 0
		for r, f := rank+1, file+1; r < 8 && f < 8; r, f = r+1, f+1 {
			ray |= 1 << uint(r*8+f)
		}
		bishopRays[sq][0] = ray // NE

		ray = 0
		for r, f := rank+1, file-1; r < 8 && f >= 0; r, f = r+1, f-1 {
			ray |= 1 << uint(r*8+f)
		}
		bishopRays[sq][1] = ray // NW

		ray = 0
		for r, f := rank-1, file+1; r >= 0 && f < 8; r, f = r-1, f+1 {
			ray |= 1 << uint(r*8+f)
		}
		bishopRays[sq][2] = ray // SE

		ray = 0
		for r, f := rank-1, file-1; r >= 0 && f >= 0; r, f = r-1, f-1 {
			ray |= 1 << uint(r*8+f)
		}
		bishopRays[sq][3] = ray // SW
	}
}

// initAlignmentTables derives the between and line tables from the rays.
// Opposite direction pairs: N/S, E/W for rooks; NE/SW, NW/SE for bishops.
func initAlignmentTables() {
	rookOpp := [4]int{1, 0, 3, 2}
	bishopOpp := [4]int{3, 2, 1, 0}
	for a := 0; a < 64; a++ {
		for d := 0; d < 4; d++ {
			ray := rookRays[a][d]
			for t := ray; t != 0; {
				c := popLSB(&t)
				betweenBB[a][c] = ray &^ rookRays[c][d] &^ (uint64(1) << uint(c))
				lineBB[a][c] = rookRays[a][d] | rookRays[a][rookOpp[d]] | uint64(1)<<uint(a)
			}
			ray = bishopRays[a][d]
			for t := ray; t != 0; {
				c := popLSB(&t)
				betweenBB[a][c] = ray &^ bishopRays[c][d] &^ (uint64(1) << uint(c))
				lineBB[a][c] = bishopRays[a][d] | bishopRays[a][bishopOpp[d]] | uint64(1)<<uint(a)
			}
		}
	}
}

// Between returns the squares strictly between a and b on a shared rank,
// file or diagonal, or zero when the squares are not aligned.
func Between(a, b Square) uint64 { return betweenBB[int(a)][int(b)] }

// Line returns the full line through a and b, or zero when not aligned.
func Line(a, b Square) uint64 { return lineBB[int(a)][int(b)] }

// Aligned reports whether the three squares share a rank, file or diagonal.
// This is the O(1) pin-ray predicate used by the legality oracle.
func Aligned(a, b, c Square) bool {
	return lineBB[int(a)][int(b)]&bb(c) != 0
}

// initSliderTables builds per-square occupancy masks and attack tables.
func initSliderTables() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8

		// Rook mask excludes edge squares
		var rm uint64
		for r := rank + 1; r < 7; r++ {
			rm |= 1 << uint(r*8+file)
		}
		for r := rank - 1; r > 0; r-- {
			rm |= 1 << uint(r*8+file)
		}
		for f := file + 1; f < 7; f++ {
			rm |= 1 << uint(rank*8+f)
		}
		for f := file - 1; f > 0; f-- {
			rm |= 1 << uint(rank*8+f)
		}
		rookMask[sq] = rm

		// Bishop mask excludes edges
		var bm uint64
		for r, f := rank+1, file+1; r < 7 && f < 7; r, f = r+1, f+1 {
			bm |= 1 << uint(r*8+f)
		}
		for r, f := rank+1, file-1; r < 7 && f > 0; r, f = r+1, f-1 {
			bm |= 1 << uint(r*8+f)
		}
		for r, f := rank-1, file+1; r > 0 && f < 7; r, f = r-1, f+1 {
			bm |= 1 << uint(r*8+f)
		}
		for r, f := rank-1, file-1; r > 0 && f > 0; r, f = r-1, f-1 {
			bm |= 1 << uint(r*8+f)
		}
		bishopMask[sq] = bm

		// Build attack tables by iterating all subsets of the mask
		rBits := bits.OnesCount64(rm)
		bBits := bits.OnesCount64(bm)
		rookAttTable[sq] = make([]uint64, 1<<rBits)
		bishopAttTable[sq] = make([]uint64, 1<<bBits)

		for idx := 0; idx < (1 << rBits); idx++ {
			occ := pdep(uint64(idx), rm)
			rookAttTable[sq][idx] = rookAttacksSlow(sq, occ)
		}
		for idx := 0; idx < (1 << bBits); idx++ {
			occ := pdep(uint64(idx), bm)
			bishopAttTable[sq][idx] = bishopAttacksSlow(sq, occ)
		}
	}
}

// software pext: extract bits of x at positions where mask has 1s, packed into low bits
func pext(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; m &= m - 1 {
		bit := uint(bits.TrailingZeros64(m))
		if (x>>bit)&1 != 0 {
			res |= 1 << idx
		}
		idx++
	}
	return res
}

// software pdep: deposit low bits of x into positions of mask
func pdep(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; m &= m - 1 {
		bit := uint(bits.TrailingZeros64(m))
		if (x>>idx)&1 != 0 {
			res |= 1 << bit
		}
		idx++
	}
	return res
}

// rookAttacks returns rook attack squares from sq for the given occupancy.
func rookAttacks(sq int, occ uint64) uint64 {
	return rookAttTable[sq][pext(occ, rookMask[sq])]
}

// bishopAttacks returns bishop attack squares from sq for the given occupancy.
func bishopAttacks(sq int, occ uint64) uint64 {
	return bishopAttTable[sq][pext(occ, bishopMask[sq])]
}

// rookAttacksSlow walks the four rook rays, truncating at the first blocker.
// Used only to seed the lookup tables.
func rookAttacksSlow(sq int, occ uint64) uint64 {
	var attacks uint64
	for d := 0; d < 4; d++ {
		ray := rookRays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			var first int
			if d == 0 || d == 2 { // N, E increase square indices
				first = bits.TrailingZeros64(blockers)
			} else {
				first = 63 - bits.LeadingZeros64(blockers)
			}
			ray &^= rookRays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

// bishopAttacksSlow walks the four bishop rays, truncating at the first blocker.
func bishopAttacksSlow(sq int, occ uint64) uint64 {
	var attacks uint64
	for d := 0; d < 4; d++ {
		ray := bishopRays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			var first int
			if d == 0 || d == 1 { // NE, NW increase square indices
				first = bits.TrailingZeros64(blockers)
			} else {
				first = 63 - bits.LeadingZeros64(blockers)
			}
			ray &^= bishopRays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

// RookMoveBitboard returns rook attacks from the given square for the
// supplied occupancy mask.
func RookMoveBitboard(sq Square, occupancy uint64) uint64 {
	return rookAttacks(int(sq), occupancy)
}

// BishopMoveBitboard returns bishop attacks from the given square for the
// supplied occupancy mask.
func BishopMoveBitboard(sq Square, occupancy uint64) uint64 {
	return bishopAttacks(int(sq), occupancy)
}

// ==========================
// Attack queries
// ==========================

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isSquareAttackedWithOcc(int(sq), by, b.AllOccupancy())
}

func (b *Board) isSquareAttackedWithOcc(s int, by Color, occ uint64) bool {
	byIdx := int(by)

	// Pawn attacks via reverse mask
	if by == White {
		if pawnAttacks[Black][s]&b.pawns[byIdx] != 0 {
			return true
		}
	} else {
		if pawnAttacks[White][s]&b.pawns[byIdx] != 0 {
			return true
		}
	}

	if knightMoves[s]&b.knights[byIdx] != 0 {
		return true
	}
	if kingMoves[s]&b.kings[byIdx] != 0 {
		return true
	}

	if rq := b.rooks[byIdx] | b.queens[byIdx]; rq != 0 && rookAttacks(s, occ)&rq != 0 {
		return true
	}
	if bq := b.bishops[byIdx] | b.queens[byIdx]; bq != 0 && bishopAttacks(s, occ)&bq != 0 {
		return true
	}
	return false
}

// attackersTo returns all pieces of both colors attacking the square under
// the supplied occupancy.
func (b *Board) attackersTo(s int, occ uint64) uint64 {
	return pawnAttacks[Black][s]&b.pawns[White] |
		pawnAttacks[White][s]&b.pawns[Black] |
		knightMoves[s]&(b.knights[0]|b.knights[1]) |
		kingMoves[s]&(b.kings[0]|b.kings[1]) |
		rookAttacks(s, occ)&(b.rooks[0]|b.rooks[1]|b.queens[0]|b.queens[1]) |
		bishopAttacks(s, occ)&(b.bishops[0]|b.bishops[1]|b.queens[0]|b.queens[1])
}
