package board

// MoveState holds the state saved before a move that cannot be recomputed
// cheaply during unmake. One record is produced per MakeMove and consumed
// by exactly one UnmakeMove; records must be consumed in LIFO order.
type MoveState struct {
	move          Move
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	prevCheckers  uint64
	prevPinned    [2]uint64
}

// Captured returns the piece removed by the move, or NoPiece.
func (st MoveState) Captured() Piece { return st.captured }

// castleRookSquares maps a castling king destination to the rook's corner
// square and its post-castle square.
func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case 6: // g1
		return 7, 5
	case 2: // c1
		return 0, 3
	case 62: // g8
		return 63, 61
	case 58: // c8
		return 56, 59
	}
	panic("castleRookSquares: invalid castling destination")
}

// epCaptureSquare returns the square of the pawn removed by an en-passant
// capture: one rank behind the destination relative to the mover's push
// direction. The captured pawn is never on the destination square.
func epCaptureSquare(mover Color, to Square) Square {
	if mover == White {
		return to - 8
	}
	return to + 8
}

// clearCornerRights drops the castling right tied to sq when sq is a rook
// home square. A rook can only be captured on its corner while the right is
// still live, so keying purely on src/dest squares never clears a right for
// a capture elsewhere on the board.
func clearCornerRights(cr CastlingRights, sq Square) CastlingRights {
	switch sq {
	case 0:
		cr &^= CastlingWhiteQ
	case 7:
		cr &^= CastlingWhiteK
	case 56:
		cr &^= CastlingBlackQ
	case 63:
		cr &^= CastlingBlackK
	}
	return cr
}

// MakeMove applies a legal move to the board and returns the undo record.
// Legality is the caller's contract: moves must come from the generator or
// be vetted by IsLegal first; it is not re-verified here. All derived state
// (castling rights, en-passant target, checkers, pinned) is left consistent
// for the new side to move before returning.
func (b *Board) MakeMove(m Move) MoveState {
	st := MoveState{
		move:          m,
		captured:      NoPiece,
		prevCastling:  b.castlingRights,
		prevEnPassant: b.enPassantSquare,
		prevHalfmove:  b.halfmoveClock,
		prevFullmove:  b.fullmoveNumber,
		prevZobrist:   b.zobristKey,
		prevCheckers:  b.checkers,
		prevPinned:    b.pinned,
	}

	from := m.From()
	to := m.To()
	flag := m.Flag()
	moved := b.pieces[int(from)]
	if moved == NoPiece {
		panic("MakeMove: no piece on source square for " + m.String())
	}
	us := b.sideToMove

	// Any king move, castling included, forfeits both rights for the mover.
	if typeOf(moved) == 6 {
		if us == White {
			b.castlingRights &^= CastlingWhiteK | CastlingWhiteQ
		} else {
			b.castlingRights &^= CastlingBlackK | CastlingBlackQ
		}
	}

	// Remove the captured piece. En passant removes the pawn behind the
	// destination, not the piece on it.
	if flag == FlagEnPassant {
		st.captured = b.removePiece(epCaptureSquare(us, to))
	} else if m.IsCapture() {
		st.captured = b.removePiece(to)
	}

	// The en-passant target lives for exactly one move.
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[int(b.enPassantSquare%8)]
		b.enPassantSquare = NoSquare
	}
	if flag == FlagDoublePush {
		ep := epCaptureSquare(us, to) // the skipped square
		b.enPassantSquare = ep
		b.zobristKey ^= zobristEnPassant[int(ep%8)]
	}

	// Castling relocates the rook alongside the king.
	if flag == FlagCastleKing || flag == FlagCastleQueen {
		rookFrom, rookTo := castleRookSquares(to)
		b.addPiece(rookTo, b.removePiece(rookFrom))
	}

	// Place the mover (or its promotion) on the destination, then vacate
	// the source.
	if promo := m.PromotionPieceType(); promo != PieceTypeNone {
		b.addPiece(to, PieceFromType(us, promo))
	} else {
		b.addPiece(to, moved)
	}
	b.removePiece(from)

	// Rook home squares appearing as source or destination drop the
	// corresponding right: the rook either moved away or was captured.
	b.castlingRights = clearCornerRights(b.castlingRights, from)
	b.castlingRights = clearCornerRights(b.castlingRights, to)
	if b.castlingRights != st.prevCastling {
		b.zobristKey ^= zobristCastle[int(st.prevCastling)]
		b.zobristKey ^= zobristCastle[int(b.castlingRights)]
	}

	// Hand the move over and advance the clocks.
	b.sideToMove = 1 - b.sideToMove
	b.zobristKey ^= zobristSide
	b.ply++
	if typeOf(moved) == 1 || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	// Derived state is recomputed synchronously, never lazily.
	b.setCheckInfo()
	return st
}

// UnmakeMove restores the board to its exact state before the matching
// MakeMove, derived fields included. The record must be the one produced by
// that MakeMove; unmakes must occur in reverse order of makes.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	if st.move != m {
		panic("UnmakeMove: move does not match undo record")
	}

	// Flip the side back first: every placement below uses the original
	// mover's color.
	b.sideToMove = 1 - b.sideToMove
	us := b.sideToMove

	from := m.From()
	to := m.To()

	if m.IsPromotion() {
		b.removePiece(to)
		b.addPiece(from, PieceFromType(us, PieceTypePawn))
	} else if m.IsCastle() {
		// King back first, then the rook.
		b.addPiece(from, b.removePiece(to))
		rookFrom, rookTo := castleRookSquares(to)
		b.addPiece(rookFrom, b.removePiece(rookTo))
	} else {
		b.addPiece(from, b.removePiece(to))
	}

	if st.captured != NoPiece {
		if m.Flag() == FlagEnPassant {
			b.addPiece(epCaptureSquare(us, to), st.captured)
		} else {
			b.addPiece(to, st.captured)
		}
	}

	// Rights and the en-passant target are restored verbatim; they are
	// monotonically lost and not derivable from the position alone. The
	// derived check/pin state is restored the same way: occupancy is fully
	// back, so the saved values are exact.
	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.ply--
	b.zobristKey = st.prevZobrist
	b.checkers = st.prevCheckers
	b.pinned = st.prevPinned
}

// NullState stores the minimal information needed to undo a null move.
type NullState struct {
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	prevSide      Color
	prevCheckers  uint64
	prevPinned    [2]uint64
}

// MakeNullMove switches the side to move without moving any piece. It
// clears the en-passant target and advances the clocks as a reversible
// quiet half-move.
func (b *Board) MakeNullMove() NullState {
	st := NullState{
		prevEnPassant: b.enPassantSquare,
		prevHalfmove:  b.halfmoveClock,
		prevFullmove:  b.fullmoveNumber,
		prevZobrist:   b.zobristKey,
		prevSide:      b.sideToMove,
		prevCheckers:  b.checkers,
		prevPinned:    b.pinned,
	}

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[int(b.enPassantSquare%8)]
		b.enPassantSquare = NoSquare
	}
	b.halfmoveClock++
	b.sideToMove = 1 - b.sideToMove
	b.zobristKey ^= zobristSide
	b.ply++
	if st.prevSide == Black {
		b.fullmoveNumber++
	}
	b.setCheckInfo()
	return st
}

// UnmakeNullMove restores the board to the state prior to MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.sideToMove = st.prevSide
	b.ply--
	b.zobristKey = st.prevZobrist
	b.checkers = st.prevCheckers
	b.pinned = st.prevPinned
}
