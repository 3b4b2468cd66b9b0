// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

// Position is a bitboard state for the column-stacking alignment game.
// me holds every cell occupied by the player to move, them holds every
// cell occupied by the opponent; me and them never overlap. ply counts
// stones already placed, 0 at the empty board.
type Position struct {
	me, them Bits
	ply      int
}

// NewPosition returns the empty starting position.
func NewPosition() Position {
	return Position{}
}

// Ply returns the number of stones already placed.
func (p Position) Ply() int { return p.ply }

// Me returns the bitboard of the player to move.
func (p Position) Me() Bits { return p.me }

// Them returns the bitboard of the opponent.
func (p Position) Them() Bits { return p.them }

// IsValidMove reports whether col has room for another stone.
func (p Position) IsValidMove(col int) bool {
	mask := ColumnMask(col)
	played := p.me.Or(p.them)
	return !played.And(mask).Eq(mask)
}

// nextDrops returns, for every column with room, the single cell
// the next stone dropped into that column would land on.
func (p Position) nextDrops() Bits {
	return p.me.Or(p.them).Add(BottomRow).AndNot(ColumnHeaders)
}

// Move plays col and returns the resulting position with the roles of
// the two players swapped: the returned position's Me is p's Them,
// unchanged, and its Them is p's Me plus the new stone.
// The caller must ensure IsValidMove(col).
func (p Position) Move(col int) Position {
	mask := ColumnMask(col)
	stone := p.nextDrops().And(mask)
	return Position{
		me:  p.them,
		them: p.me.Or(stone),
		ply: p.ply + 1,
	}
}

// Unmove undoes the most recent move, given the Me bitboard of the
// position before that move was played. Because Move swaps roles,
// p.me already holds the pre-move opponent board unchanged, so a
// single argument is enough to restore the prior position.
func (p Position) Unmove(priorMe Bits) Position {
	return Position{
		me:  priorMe,
		them: p.me,
		ply: p.ply - 1,
	}
}

func hasWonBoard(b Bits) bool {
	for _, dir := range directions {
		pairs := b.And(b.Shl(2 * dir))
		if !pairs.And(pairs.Shl(dir)).IsZero() {
			return true
		}
	}
	return false
}

// HasPlayerWon reports whether the player to move has four in a row.
func (p Position) HasPlayerWon() bool { return hasWonBoard(p.me) }

// HasOpponentWon reports whether the opponent has four in a row.
func (p Position) HasOpponentWon() bool { return hasWonBoard(p.them) }

// IsDraw reports whether every column is full with neither side having won.
func (p Position) IsDraw() bool {
	return p.me.Or(p.them).Eq(ValidCells) && !p.HasPlayerWon() && !p.HasOpponentWon()
}

// IsGameOver reports whether the position is terminal: a win for
// either side, or every column full.
func (p Position) IsGameOver() bool {
	return p.HasPlayerWon() || p.HasOpponentWon() || p.IsDraw()
}

func findWinningStonesInDirection(b Bits, dir uint) Bits {
	pairs := b.And(b.Shl(2 * dir))
	quads := pairs.And(pairs.Shl(dir))

	winningPairs := quads.Or(quads.Shr(dir))
	return winningPairs.Or(winningPairs.Shr(2 * dir))
}

// findWinningStones returns every cell of b that participates in a
// completed four-in-a-row, in any direction.
func findWinningStones(b Bits) Bits {
	var out Bits
	for _, dir := range directions {
		out = out.Or(findWinningStonesInDirection(b, dir))
	}
	return out
}

// CanPlayerWin reports whether the player to move could still complete
// four in a row given the remaining empty cells, ignoring gravity.
// Used to tighten the search window when a draw becomes provable.
func (p Position) CanPlayerWin() bool {
	empty := ValidCells.AndNot(p.me.Or(p.them))
	return !findWinningStones(p.me.Or(empty)).IsZero()
}

// CanOpponentWin is CanPlayerWin for the opponent.
func (p Position) CanOpponentWin() bool {
	empty := ValidCells.AndNot(p.me.Or(p.them))
	return !findWinningStones(p.them.Or(empty)).IsZero()
}

func findThreatsInDirection(b Bits, dir uint) Bits {
	doubles := b.And(b.Shl(dir))
	triples := doubles.And(doubles.Shl(dir))

	return b.Shr(dir).And(doubles.Shl(dir)).
		Or(b.Shl(dir).And(doubles.Shr(2 * dir))).
		Or(triples.Shl(dir)).
		Or(triples.Shr(3 * dir))
}

func allThreats(b Bits) Bits {
	var out Bits
	for _, dir := range directions {
		out = out.Or(findThreatsInDirection(b, dir))
	}
	return out
}

// FindPlayerThreats returns every cell where, if the player to move
// dropped a stone there right now (gravity permitting), it would
// complete four in a row.
func (p Position) FindPlayerThreats() Bits {
	threats := allThreats(p.me)
	return threats.And(p.nextDrops())
}

// FindOpponentThreats is FindPlayerThreats for the opponent: every
// cell where the opponent would win if it were their move and a
// stone could land there right now.
func (p Position) FindOpponentThreats() Bits {
	threats := allThreats(p.them)
	return threats.And(p.nextDrops())
}

// FindPlayerOpportunities returns every empty cell that would complete
// four in a row for the player to move, regardless of whether gravity
// allows a stone to reach it yet. Used to score future threats during
// move ordering, mirroring find_opportunities in the reference solver.
func (p Position) FindPlayerOpportunities() Bits {
	threats := allThreats(p.me)
	return threats.AndNot(p.them).And(ValidCells)
}

// FindOpponentOpportunities is FindPlayerOpportunities for the opponent.
func (p Position) FindOpponentOpportunities() Bits {
	threats := allThreats(p.them)
	return threats.AndNot(p.me).And(ValidCells)
}

// WinsThisMove reports whether col both is a legal move and
// immediately wins for the player to move.
func (p Position) WinsThisMove(col int) bool {
	return !p.FindPlayerThreats().And(ColumnMask(col)).IsZero()
}

// FindNonLosingMoves returns every immediately-playable cell that does
// not hand the opponent an immediate winning reply. A move at column c
// is losing if it is not itself the cell that completes the player's
// own win and playing it leaves a cell directly above it (the
// opponent's next drop in that column) as an opponent threat.
func (p Position) FindNonLosingMoves() Bits {
	possible := p.nextDrops()
	winning := p.FindPlayerThreats()

	oppWins := allThreats(p.them).And(ValidCells)
	forbidden := oppWins.Shr(1)

	safe := possible.AndNot(forbidden)
	return safe.Or(winning)
}

// FindOddEvenThreats splits the player's future opportunities into odd
// (rows 0, 2, 4, ...) and even threats, used by move ordering's parity
// heuristic: in this game a lone odd threat favours the first player
// and a lone even threat favours the second.
func (p Position) FindOddEvenThreats() (odd, even Bits) {
	opportunities := p.FindPlayerOpportunities()
	odd = opportunities.And(OddRowMask)
	even = opportunities.AndNot(OddRowMask)
	return odd, even
}

func tooShort(dir uint) Bits {
	pairs := ValidCells.Shr(dir).And(ValidCells)
	triples := pairs.Shr(dir).And(ValidCells)
	quads := triples.Shr(dir).And(ValidCells)

	quadsShifted := quads.Or(quads.Shl(dir))
	possibleWins := quadsShifted.Or(quadsShifted.Shl(2 * dir))

	return ValidCells.AndNot(possibleWins)
}

func borderStonesInDirection(dir uint) Bits {
	right := ValidCells.Shl(dir).And(ValidCells)
	left := ValidCells.Shr(dir).And(ValidCells)
	center := right.And(left)
	return center.Not()
}

func deadStonesInDirection(b0, b1 Bits, dir uint) Bits {
	played := b0.Or(b1)
	empty := ValidCells.AndNot(played)

	uncovered := empty.Shr(dir).And(played).Or(empty.Shl(dir).And(played))
	coveredBy1 := uncovered.Shr(dir).And(played).Or(uncovered.Shl(dir).And(played))

	pairs := b0.Shr(dir).And(b0).Or(b1.Shr(dir).And(b1))
	coveredByPair := coveredBy1.Shr(dir).And(pairs.Shr(dir)).
		Or(coveredBy1.Shl(dir).And(pairs.Shl(2 * dir)))

	covered := played.AndNot(uncovered).AndNot(coveredBy1).AndNot(coveredByPair)

	excluded := tooShort(dir)

	between := b0.Shr(dir).And(b1.Shl(dir)).Or(b1.Shr(dir).And(b0.Shl(dir)))
	pinned := borderStonesInDirection(dir).And(played).
		And(between.Shr(2 * dir).Or(between.Shl(2 * dir)))

	return covered.Or(excluded).Or(pinned)
}

// FindDeadStones returns every cell occupied by either player that can
// no longer influence whether the game is won or drawn: a stone so
// boxed in that no line of four through it can ever be completed by
// either side. Used by Hash to canonicalize equivalent positions.
func FindDeadStones(b0, b1 Bits) Bits {
	out := ValidCells
	for _, dir := range directions {
		out = out.And(deadStonesInDirection(b0, b1, dir))
	}
	return out
}

// Mirror returns b reflected left-to-right across the board's
// vertical center line.
func Mirror(b Bits) Bits {
	var out Bits
	for col := 0; col <= (Width-1)/2; col++ {
		shift := uint(Width-2*col-1) * Height1
		leftMask := FirstColumnHeader.Shl(uint(col) * Height1)
		rightMask := FirstColumnHeader.Shl(uint(Width-col-1) * Height1)

		out = out.Or(b.And(leftMask).Shl(shift))
		out = out.Or(b.And(rightMask).Shr(shift))
	}
	return out
}

// Hash returns a canonical 64-bit digest of the position, stable under
// left-right mirroring and under substituting dead stones for the
// player to move's stones, for use as a transposition table key.
// mirrored reports whether the canonical digest corresponds to the
// left-right mirror image of p; callers that recover a column from a
// table entry keyed by this hash must mirror that column back
// (col -> Width-1-col) when mirrored is true.
func (p Position) Hash() (hash uint64, mirrored bool) {
	dead := FindDeadStones(p.me, p.them)
	columnHeaders := p.me.Or(p.them).Add(BottomRow)
	h := p.me.Or(dead).Or(columnHeaders)

	m := Mirror(h)
	if m.Less(h) {
		return m.Uint64(), true
	}
	return h.Uint64(), false
}

// MirrorColumn returns the column that corresponds to col once a board
// has been reflected left-to-right.
func MirrorColumn(col int) int {
	return Width - 1 - col
}

// ColumnOfBit returns the column that bit index i, as used throughout
// this package, belongs to.
func ColumnOfBit(i uint) int {
	return int(i) / Height1
}

// String renders the position as a human-readable grid, '@' for the
// player to move, 'o' for the opponent, '.' for empty.
func (p Position) String() string {
	buf := make([]byte, 0, (Width+3)*(Height+2))
	buf = append(buf, '+')
	for x := 0; x < Width; x++ {
		buf = append(buf, '-')
	}
	buf = append(buf, '+', '\n')

	for y := Height - 1; y >= 0; y-- {
		buf = append(buf, '|')
		for x := 0; x < Width; x++ {
			shift := uint(y + x*Height1)
			switch {
			case p.me.Bit(shift) == 1:
				buf = append(buf, '@')
			case p.them.Bit(shift) == 1:
				buf = append(buf, 'o')
			default:
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '|', '\n')
	}

	buf = append(buf, '+')
	for x := 0; x < Width; x++ {
		buf = append(buf, '-')
	}
	buf = append(buf, '+', '\n')
	return string(buf)
}
