package board

import "math/bits"

// GeneratePseudoMovesInto appends all pseudo-legal moves for the side to
// move into dst and returns it. Pseudo-legal obeys piece rules and
// blockers; castling requires rights, an empty path and the rook on its
// corner, but king safety is left to IsLegal.
func (b *Board) GeneratePseudoMovesInto(dst []Move) []Move {
	moves := dst[:0]
	side := b.sideToMove
	us := int(side)
	them := 1 - us

	ownOcc := b.occupancy[us]
	oppOcc := b.occupancy[them]
	allOcc := ownOcc | oppOcc

	// Pawns
	pawns := b.pawns[us]
	for pawns != 0 {
		from := popLSB(&pawns)
		fromSq := Square(from)

		var one, promoRank, startRank int
		var caps uint64
		if side == White {
			one = from + 8
			promoRank = 7
			startRank = 1
			caps = pawnAttacks[White][from]
		} else {
			one = from - 8
			promoRank = 0
			startRank = 6
			caps = pawnAttacks[Black][from]
		}

		// Pushes
		if one >= 0 && one < 64 && allOcc&(uint64(1)<<uint(one)) == 0 {
			if one/8 == promoRank {
				moves = append(moves,
					NewMove(fromSq, Square(one), FlagPromoQueen),
					NewMove(fromSq, Square(one), FlagPromoRook),
					NewMove(fromSq, Square(one), FlagPromoBishop),
					NewMove(fromSq, Square(one), FlagPromoKnight),
				)
			} else {
				moves = append(moves, NewMove(fromSq, Square(one), FlagQuiet))
				if from/8 == startRank {
					two := 2*one - from
					if allOcc&(uint64(1)<<uint(two)) == 0 {
						moves = append(moves, NewMove(fromSq, Square(two), FlagDoublePush))
					}
				}
			}
		}

		// Captures
		for capTargets := caps & oppOcc; capTargets != 0; {
			to := popLSB(&capTargets)
			if to/8 == promoRank {
				moves = append(moves,
					NewMove(fromSq, Square(to), FlagPromoQueenCapture),
					NewMove(fromSq, Square(to), FlagPromoRookCapture),
					NewMove(fromSq, Square(to), FlagPromoBishopCapture),
					NewMove(fromSq, Square(to), FlagPromoKnightCapture),
				)
			} else {
				moves = append(moves, NewMove(fromSq, Square(to), FlagCapture))
			}
		}

		// En passant
		if b.enPassantSquare != NoSquare && caps&bb(b.enPassantSquare) != 0 {
			moves = append(moves, NewMove(fromSq, b.enPassantSquare, FlagEnPassant))
		}
	}

	appendTargets := func(fromSq Square, targets uint64) {
		for targets != 0 {
			to := popLSB(&targets)
			flag := FlagQuiet
			if oppOcc&(uint64(1)<<uint(to)) != 0 {
				flag = FlagCapture
			}
			moves = append(moves, NewMove(fromSq, Square(to), flag))
		}
	}

	// Knights
	knights := b.knights[us]
	for knights != 0 {
		from := popLSB(&knights)
		appendTargets(Square(from), knightMoves[from]&^ownOcc)
	}

	// Bishops
	bishops := b.bishops[us]
	for bishops != 0 {
		from := popLSB(&bishops)
		appendTargets(Square(from), bishopAttacks(from, allOcc)&^ownOcc)
	}

	// Rooks
	rooks := b.rooks[us]
	for rooks != 0 {
		from := popLSB(&rooks)
		appendTargets(Square(from), rookAttacks(from, allOcc)&^ownOcc)
	}

	// Queens
	queens := b.queens[us]
	for queens != 0 {
		from := popLSB(&queens)
		appendTargets(Square(from), (rookAttacks(from, allOcc)|bishopAttacks(from, allOcc))&^ownOcc)
	}

	// King
	if kbb := b.kings[us]; kbb != 0 {
		from := bits.TrailingZeros64(kbb)
		appendTargets(Square(from), kingMoves[from]&^ownOcc)

		// Castling candidates: rights, empty path, rook at home.
		if side == White {
			if b.castlingRights&CastlingWhiteK != 0 &&
				b.pieces[5] == NoPiece && b.pieces[6] == NoPiece && b.pieces[7] == WhiteRook {
				moves = append(moves, NewMove(4, 6, FlagCastleKing))
			}
			if b.castlingRights&CastlingWhiteQ != 0 &&
				b.pieces[1] == NoPiece && b.pieces[2] == NoPiece && b.pieces[3] == NoPiece && b.pieces[0] == WhiteRook {
				moves = append(moves, NewMove(4, 2, FlagCastleQueen))
			}
		} else {
			if b.castlingRights&CastlingBlackK != 0 &&
				b.pieces[61] == NoPiece && b.pieces[62] == NoPiece && b.pieces[63] == BlackRook {
				moves = append(moves, NewMove(60, 62, FlagCastleKing))
			}
			if b.castlingRights&CastlingBlackQ != 0 &&
				b.pieces[57] == NoPiece && b.pieces[58] == NoPiece && b.pieces[59] == NoPiece && b.pieces[56] == BlackRook {
				moves = append(moves, NewMove(60, 58, FlagCastleQueen))
			}
		}
	}

	return moves
}

// GeneratePseudoMoves returns all pseudo-legal moves (allocates a new slice).
func (b *Board) GeneratePseudoMoves() []Move {
	return b.GeneratePseudoMovesInto(make([]Move, 0, 128))
}

// GenerateMovesInto appends all legal moves for the side to move into dst
// and returns it. Check evasion is handled here: with one checker, non-king
// moves must block the check ray or capture the checker; with two, only the
// king may move. Everything else funnels through the legality oracle.
func (b *Board) GenerateMovesInto(dst []Move) []Move {
	pseudo := b.GeneratePseudoMovesInto(dst)
	out := pseudo[:0]

	us := b.sideToMove
	ksq := b.KingSquare(us)
	checkers := b.checkers
	doubleCheck := checkers&(checkers-1) != 0
	var checkMask uint64
	if checkers != 0 && !doubleCheck {
		csq := bits.TrailingZeros64(checkers)
		checkMask = betweenBB[int(ksq)][csq] | checkers
	}

	for _, m := range pseudo {
		if m.From() != ksq {
			if doubleCheck {
				continue
			}
			if checkers != 0 {
				if m.Flag() == FlagEnPassant {
					// An EP capture evades check only by taking the
					// checking pawn or landing on the check ray.
					if bb(epCaptureSquare(us, m.To()))&checkers == 0 && bb(m.To())&checkMask == 0 {
						continue
					}
				} else if bb(m.To())&checkMask == 0 {
					continue
				}
			}
		}
		if !b.IsLegal(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GenerateMoves generates all legal moves for the current side to move.
// It allocates a new slice; prefer GenerateMovesInto to reuse buffers in
// hot paths.
func (b *Board) GenerateMoves() []Move {
	return b.GenerateMovesInto(make([]Move, 0, 128))
}

// GenerateCapturesInto appends all legal captures (including en passant and
// capture promotions) into dst and returns it.
func (b *Board) GenerateCapturesInto(dst []Move) []Move {
	moves := b.GenerateMovesInto(dst)
	out := moves[:0]
	for _, m := range moves {
		if m.IsCapture() {
			out = append(out, m)
		}
	}
	return out
}

// GenerateQuietsInto appends all legal non-capturing moves (includes quiet
// promotions and castling) into dst and returns it.
func (b *Board) GenerateQuietsInto(dst []Move) []Move {
	moves := b.GenerateMovesInto(dst)
	out := moves[:0]
	for _, m := range moves {
		if !m.IsCapture() {
			out = append(out, m)
		}
	}
	return out
}

// Perft counts leaf nodes (move sequences) from the position for a given
// depth. Per-depth buffers are reused to avoid allocations.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(pc.bufs) {
		pc.bufs = append(pc.bufs, nil)
	}
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 256)
		pc.bufs[depth] = buf
	}
	return buf[:0]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	moves := b.GenerateMovesInto(pc.bufFor(depth))
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		st := b.MakeMove(m)
		nodes += perftRec(b, depth-1, pc)
		b.UnmakeMove(m, st)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf
// nodes reachable from that move at the given depth. Useful for debugging.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.GenerateMoves() {
		st := b.MakeMove(m)
		result[m] = Perft(b, depth-1)
		b.UnmakeMove(m, st)
	}
	return result
}
