package board

// computeHash folds the full position into a Zobrist key from scratch. The
// incremental updates in put, clear, setCastleRights, setEnPassant, and
// ApplyUnchecked must always agree with this definition.
func (b *Board) computeHash() uint64 {
	var hash uint64
	for _, s := range []Side{SideWhite, SideBlack} {
		for p := PiecePawn; p <= PieceKing; p++ {
			for bm := b.pieces[p] & b.sides[s]; bm != 0; bm &= bm - 1 {
				hash ^= zobristPiece[s][p][bm.LS1B()]
			}
		}
	}
	hash ^= zobristCastleRights[b.castleRights]
	if b.enPassant != flagNoEnPassant {
		hash ^= zobristEnPassant[b.enPassant.X()]
	}
	if b.turn == SideWhite {
		hash ^= zobristSideWhite
	}
	return hash
}
