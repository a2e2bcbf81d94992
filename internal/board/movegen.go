package board

// Castling lane metadata, indexed by color.
var castleInfo = [2]struct {
	kingFrom                 Square
	kingSideTo, queenSideTo  Square
	kingRookFrom             Square
	queenRookFrom            Square
	kingSideRight            CastlingRights
	queenSideRight           CastlingRights
	kingSideEmpty            [2]Square // f1 g1 / f8 g8
	queenSideEmpty           [3]Square // d1 c1 b1 / d8 c8 b8
	kingSidePath             Square    // transit square the king crosses, king side
	queenSidePath            Square    // transit square the king crosses, queen side
}{
	{E1, G1, C1, H1, A1, WhiteKingSideCastle, WhiteQueenSideCastle, [2]Square{F1, G1}, [3]Square{D1, C1, B1}, F1, D1},
	{E8, G8, C8, H8, A8, BlackKingSideCastle, BlackQueenSideCastle, [2]Square{F8, G8}, [3]Square{D8, C8, B8}, F8, D8},
}

// castlingRightsMask[sq] holds the rights that survive a piece moving from
// or to sq. Moving the king or a rook off its home square, or capturing a
// rook on its home square, clears the corresponding rights.
var castlingRightsMask [64]CastlingRights

func init() {
	for sq := range castlingRightsMask {
		castlingRightsMask[sq] = AllCastling
	}
	castlingRightsMask[E1] &^= WhiteKingSideCastle | WhiteQueenSideCastle
	castlingRightsMask[H1] &^= WhiteKingSideCastle
	castlingRightsMask[A1] &^= WhiteQueenSideCastle
	castlingRightsMask[E8] &^= BlackKingSideCastle | BlackQueenSideCastle
	castlingRightsMask[H8] &^= BlackKingSideCastle
	castlingRightsMask[A8] &^= BlackQueenSideCastle
}

// GeneratePseudoLegalMoves generates all moves that obey piece movement rules
// for the side to move, without filtering out moves that leave the mover's
// king in check. Squares are scanned a1 through h8 so generation order is
// deterministic for a given position.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	moves := NewMoveList()
	us := p.SideToMove

	for sq := Square(0); sq < 64; sq++ {
		piece := p.Board[sq]
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		switch piece.Type() {
		case Pawn:
			p.genPawnMoves(moves, sq, us)
		case Knight:
			p.genStepMoves(moves, sq, us, knightDeltas[:])
		case Bishop:
			p.genSlideMoves(moves, sq, us, bishopDirs[:])
		case Rook:
			p.genSlideMoves(moves, sq, us, rookDirs[:])
		case Queen:
			p.genSlideMoves(moves, sq, us, bishopDirs[:])
			p.genSlideMoves(moves, sq, us, rookDirs[:])
		case King:
			p.genStepMoves(moves, sq, us, kingDeltas[:])
		}
	}

	p.genCastlingMoves(moves, us)
	return moves
}

func (p *Position) genPawnMoves(moves *MoveList, from Square, us Color) {
	file, rank := from.File(), from.Rank()
	dir := 1
	startRank, promoRank := 1, 7
	if us == Black {
		dir = -1
		startRank, promoRank = 6, 0
	}

	// Single and double push
	to := NewSquare(file, rank+dir)
	if p.Board[to] == NoPiece {
		if to.Rank() == promoRank {
			addPromotions(moves, from, to)
		} else {
			moves.Add(NewMove(from, to))
			if rank == startRank {
				to2 := NewSquare(file, rank+2*dir)
				if p.Board[to2] == NoPiece {
					moves.Add(NewDoublePush(from, to2))
				}
			}
		}
	}

	// Captures
	for _, df := range [2]int{-1, 1} {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		to := NewSquare(f, rank+dir)
		target := p.Board[to]
		if target != NoPiece && target.Color() != us {
			if to.Rank() == promoRank {
				addPromotions(moves, from, to)
			} else {
				moves.Add(NewMove(from, to))
			}
		} else if to == p.EnPassant && p.EnPassant != NoSquare {
			moves.Add(NewEnPassant(from, to))
		}
	}
}

func addPromotions(moves *MoveList, from, to Square) {
	moves.Add(NewPromotion(from, to, Knight))
	moves.Add(NewPromotion(from, to, Bishop))
	moves.Add(NewPromotion(from, to, Rook))
	moves.Add(NewPromotion(from, to, Queen))
}

func (p *Position) genStepMoves(moves *MoveList, from Square, us Color, deltas [][2]int) {
	file, rank := from.File(), from.Rank()
	for _, d := range deltas {
		f, r := file+d[0], rank+d[1]
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		to := NewSquare(f, r)
		if target := p.Board[to]; target == NoPiece || target.Color() != us {
			moves.Add(NewMove(from, to))
		}
	}
}

func (p *Position) genSlideMoves(moves *MoveList, from Square, us Color, dirs [][2]int) {
	file, rank := from.File(), from.Rank()
	for _, d := range dirs {
		for f, r := file+d[0], rank+d[1]; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+d[0], r+d[1] {
			to := NewSquare(f, r)
			target := p.Board[to]
			if target == NoPiece {
				moves.Add(NewMove(from, to))
				continue
			}
			if target.Color() != us {
				moves.Add(NewMove(from, to))
			}
			break
		}
	}
}

func (p *Position) genCastlingMoves(moves *MoveList, us Color) {
	info := castleInfo[us]
	them := us.Other()

	if p.CastlingRights&info.kingSideRight != 0 &&
		p.Board[info.kingSideEmpty[0]] == NoPiece &&
		p.Board[info.kingSideEmpty[1]] == NoPiece &&
		!p.IsSquareAttacked(info.kingFrom, them) &&
		!p.IsSquareAttacked(info.kingSidePath, them) &&
		!p.IsSquareAttacked(info.kingSideTo, them) {
		moves.Add(NewCastling(info.kingFrom, info.kingSideTo))
	}

	if p.CastlingRights&info.queenSideRight != 0 &&
		p.Board[info.queenSideEmpty[0]] == NoPiece &&
		p.Board[info.queenSideEmpty[1]] == NoPiece &&
		p.Board[info.queenSideEmpty[2]] == NoPiece &&
		!p.IsSquareAttacked(info.kingFrom, them) &&
		!p.IsSquareAttacked(info.queenSidePath, them) &&
		!p.IsSquareAttacked(info.queenSideTo, them) {
		moves.Add(NewCastling(info.kingFrom, info.queenSideTo))
	}
}

// GenerateLegalMoves generates all legal moves for the side to move. Each
// pseudo-legal move is played on the board and rejected if it leaves the
// mover's own king attacked.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	legal := NewMoveList()
	us := p.SideToMove

	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		if !p.IsSquareAttacked(p.KingSquare[us], us.Other()) {
			legal.Add(m)
		}
		p.UnmakeMove(m, undo)
	}
	return legal
}

// LegalMovesFrom returns the legal moves whose origin is the given square.
func (p *Position) LegalMovesFrom(from Square) *MoveList {
	all := p.GenerateLegalMoves()
	filtered := NewMoveList()
	for i := 0; i < all.Len(); i++ {
		if m := all.Get(i); m.From() == from {
			filtered.Add(m)
		}
	}
	return filtered
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, stopping at the first one found.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.GeneratePseudoLegalMoves()
	us := p.SideToMove
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		legal := !p.IsSquareAttacked(p.KingSquare[us], us.Other())
		p.UnmakeMove(m, undo)
		if legal {
			return true
		}
	}
	return false
}

// UndoInfo holds the state needed to unmake a move.
type UndoInfo struct {
	Captured       Piece  // captured piece, NoPiece if none
	CapturedSq     Square // square the captured piece stood on
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
}

// MakeMove applies a move to the position and returns the information
// needed to undo it. The move must be pseudo-legal for the current
// position; legality is the caller's concern.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		Captured:       NoPiece,
		CapturedSq:     NoSquare,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
	}

	from, to := m.From(), m.To()
	us := p.SideToMove
	piece := p.Board[from]

	// Clear old en passant from the hash; a new target is set below only
	// on a double push.
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	p.HalfMoveClock++
	if piece.Type() == Pawn {
		p.HalfMoveClock = 0
	}

	switch m.Flag() {
	case FlagEnPassant:
		capturedSq := NewSquare(to.File(), from.Rank())
		captured := p.removePiece(capturedSq)
		undo.Captured = captured
		undo.CapturedSq = capturedSq
		p.Hash ^= zobristPiece[captured][capturedSq]
		p.HalfMoveClock = 0

	case FlagCastling:
		// Move the rook; the king moves below like any other piece.
		info := castleInfo[us]
		var rookFrom, rookTo Square
		if to == info.kingSideTo {
			rookFrom, rookTo = info.kingRookFrom, info.kingSidePath
		} else {
			rookFrom, rookTo = info.queenRookFrom, info.queenSidePath
		}
		rook := p.Board[rookFrom]
		p.movePiece(rookFrom, rookTo)
		p.Hash ^= zobristPiece[rook][rookFrom] ^ zobristPiece[rook][rookTo]

	case FlagDoublePush:
		epSq := NewSquare(from.File(), (from.Rank()+to.Rank())/2)
		p.EnPassant = epSq
		p.Hash ^= zobristEnPassant[epSq.File()]

	default:
		if captured := p.Board[to]; captured != NoPiece {
			p.removePiece(to)
			undo.Captured = captured
			undo.CapturedSq = to
			p.Hash ^= zobristPiece[captured][to]
			p.HalfMoveClock = 0
		}
	}

	p.movePiece(from, to)
	p.Hash ^= zobristPiece[piece][from] ^ zobristPiece[piece][to]

	if m.IsPromotion() {
		p.removePiece(to)
		promoted := NewPiece(m.Promotion(), us)
		p.setPiece(promoted, to)
		p.Hash ^= zobristPiece[piece][to] ^ zobristPiece[promoted][to]
	}

	// Castling rights updates hash-correctly on every move; most moves
	// leave the mask unchanged.
	newRights := p.CastlingRights & castlingRightsMask[from] & castlingRightsMask[to]
	if newRights != p.CastlingRights {
		p.Hash ^= zobristCastling[p.CastlingRights] ^ zobristCastling[newRights]
		p.CastlingRights = newRights
	}

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = us.Other()
	p.Hash ^= zobristSideToMove

	return undo
}

// UnmakeMove reverses a move previously applied with MakeMove. Moves must
// be unmade in strict reverse order of making.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	p.SideToMove = p.SideToMove.Other()
	us := p.SideToMove
	if us == Black {
		p.FullMoveNumber--
	}

	from, to := m.From(), m.To()

	if m.IsPromotion() {
		p.removePiece(to)
		p.setPiece(NewPiece(Pawn, us), to)
	}

	p.movePiece(to, from)

	switch m.Flag() {
	case FlagCastling:
		info := castleInfo[us]
		if to == info.kingSideTo {
			p.movePiece(info.kingSidePath, info.kingRookFrom)
		} else {
			p.movePiece(info.queenSidePath, info.queenRookFrom)
		}
	}

	if undo.Captured != NoPiece {
		p.setPiece(undo.Captured, undo.CapturedSq)
	}

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
}

// Perft counts leaf nodes of the legal move tree to the given depth.
// Standard correctness check for move generation.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes += p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftDivide returns the perft count for each root move, keyed by the
// move's coordinate notation. Used to localize movegen discrepancies.
func (p *Position) PerftDivide(depth int) map[string]uint64 {
	result := make(map[string]uint64)
	moves := p.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		result[m.String()] = p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return result
}
