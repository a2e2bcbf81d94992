package board

import "strings"

// ToSAN renders a legal move in Standard Algebraic Notation for this
// position. The position must be the one the move was generated from; it
// is restored before returning.
func (p *Position) ToSAN(m Move) string {
	var sb strings.Builder

	piece := p.Board[m.From()]
	capture := m.IsCapture(p)

	switch {
	case m.IsCastling():
		if m.To().File() > m.From().File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	case piece.Type() == Pawn:
		if capture {
			sb.WriteByte(byte('a' + m.From().File()))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteString(strings.ToUpper(NewPiece(m.Promotion(), White).String()))
		}
	default:
		sb.WriteString(NewPiece(piece.Type(), White).String())
		sb.WriteString(p.sanDisambiguation(m, piece))
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
	}

	// Check and mate suffix
	undo := p.MakeMove(m)
	if p.InCheck() {
		if p.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	p.UnmakeMove(m, undo)

	return sb.String()
}

// sanDisambiguation returns the file/rank qualifier needed when another
// piece of the same type could also reach the destination.
func (p *Position) sanDisambiguation(m Move, piece Piece) string {
	legal := p.GenerateLegalMoves()
	sameFile, sameRank, ambiguous := false, false, false

	for i := 0; i < legal.Len(); i++ {
		other := legal.Get(i)
		if other == m || other.To() != m.To() || other.From() == m.From() {
			continue
		}
		if p.Board[other.From()] != piece {
			continue
		}
		ambiguous = true
		if other.From().File() == m.From().File() {
			sameFile = true
		}
		if other.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(byte('a' + m.From().File()))
	case !sameRank:
		return string(byte('1' + m.From().Rank()))
	default:
		return m.From().String()
	}
}
