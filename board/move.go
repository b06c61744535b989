package board

import "strings"

// Move encodes a chess move in a 16-bit value.
//
// Bits 0-5 are the source square, bits 6-11 the destination square and bits
// 12-15 a flag nibble using the from-to based encoding: bit 2 of the flag
// marks a capture and bit 3 a promotion, so the capture/promotion/castle/EP
// predicates derive from the flag and are never stored separately.
type Move uint16

const (
	moveToShift   = 6
	moveFlagShift = 12
)

// Move flag nibble values
const (
	FlagQuiet uint8 = iota
	FlagDoublePush
	FlagCastleKing
	FlagCastleQueen
	FlagCapture
	FlagEnPassant
	_
	_
	FlagPromoKnight
	FlagPromoBishop
	FlagPromoRook
	FlagPromoQueen
	FlagPromoKnightCapture
	FlagPromoBishopCapture
	FlagPromoRookCapture
	FlagPromoQueenCapture
)

// NewMove constructs a Move value from source, destination and flag.
func NewMove(from, to Square, flag uint8) Move {
	return Move(uint16(from&0x3F) |
		uint16(to&0x3F)<<moveToShift |
		uint16(flag&0xF)<<moveFlagShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((m >> moveToShift) & 0x3F) }

// Flag returns the move flag nibble.
func (m Move) Flag() uint8 { return uint8(m >> moveFlagShift) }

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m.Flag()&0x4 != 0 }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flag()&0x8 != 0 }

// IsCastle reports whether the move is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == FlagCastleKing || f == FlagCastleQueen
}

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsDoublePush reports whether the move is a double pawn push.
func (m Move) IsDoublePush() bool { return m.Flag() == FlagDoublePush }

// PromotionPieceType returns the colorless promotion target, or
// PieceTypeNone for non-promotions. The capture bit is masked out so
// capture-promotions resolve to the same piece type.
func (m Move) PromotionPieceType() PieceType {
	switch m.Flag() &^ 0x4 {
	case FlagPromoKnight:
		return PieceTypeKnight
	case FlagPromoBishop:
		return PieceTypeBishop
	case FlagPromoRook:
		return PieceTypeRook
	case FlagPromoQueen:
		return PieceTypeQueen
	}
	return PieceTypeNone
}

// String produces the UCI representation of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	from := m.From()
	to := m.To()

	str := string([]byte{
		'a' + byte(from%8), '1' + byte(from/8),
		'a' + byte(to%8), '1' + byte(to/8),
	})
	switch m.PromotionPieceType() {
	case PieceTypeKnight:
		str += "n"
	case PieceTypeBishop:
		str += "b"
	case PieceTypeRook:
		str += "r"
	case PieceTypeQueen:
		str += "q"
	}
	return str
}

// ParseMove converts a UCI string (e2e4, e7e8q) into a Move against the
// current position; the flag is derived from the board state. Returns false
// if no pseudo-legal move matches.
func (b *Board) ParseMove(movestr string) (Move, bool) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) < 4 || len(movestr) > 5 {
		return 0, false
	}
	for _, m := range b.GeneratePseudoMoves() {
		if m.String() == movestr {
			return m, true
		}
	}
	return 0, false
}
