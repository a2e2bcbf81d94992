package board

// Zobrist hash keys for position hashing.
// Generated from a fixed-seed PRNG so hashes are stable across runs.
var (
	zobristPiece      [12][64]uint64 // [Piece][Square]
	zobristEnPassant  [8]uint64      // one per file
	zobristCastling   [16]uint64     // all castling-rights combinations
	zobristSideToMove uint64         // xored in when black is to move
)

func init() {
	rng := zobristRNG{state: 0x6C078965B1A4F09D}

	for p := WhitePawn; p <= BlackKing; p++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[p][sq] = rng.next()
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// xorshift64* generator
type zobristRNG struct {
	state uint64
}

func (r *zobristRNG) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

// ComputeHash calculates the Zobrist hash of a position from scratch.
// MakeMove and UnmakeMove maintain Hash incrementally; this exists for
// initialization and for verifying the incremental updates in tests.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if piece := p.Board[sq]; piece != NoPiece {
			h ^= zobristPiece[piece][sq]
		}
	}
	if p.EnPassant != NoSquare {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	h ^= zobristCastling[p.CastlingRights]
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
