// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package order scores and sorts a position's legal moves so that
// alpha-beta search visits the most promising column first.
package order

import "github.com/ChristopheSteininger/c4-sub000/internal/board"

// tableMoveScore is large enough to always sort ahead of any move
// scored purely from threats and parity, mirroring calc_score's 1000
// for the table-recommended move in the reference solver.
const tableMoveScore = 1000.0

// NoHint indicates no transposition table move is available to try first.
const NoHint = -1

// Moves holds a position's legal columns sorted from most to least
// promising.
type Moves struct {
	cols   [board.Width]int
	scores [board.Width]float64
	n      int
}

// Len returns the number of legal moves.
func (m *Moves) Len() int { return m.n }

// At returns the column of the i'th move, 0 being the most promising.
func (m *Moves) At(i int) int { return m.cols[i] }

func (m *Moves) insert(col int, score float64) {
	i := m.n
	for i > 0 && score > m.scores[i-1] {
		m.cols[i] = m.cols[i-1]
		m.scores[i] = m.scores[i-1]
		i--
	}
	m.cols[i] = col
	m.scores[i] = score
	m.n++
}

// centerOutColumn returns the x'th column visited by the default
// center-out iteration order: center, center-1, center+1, center-2,
// center+2, ... This is the move order the reference solver falls
// back to absent any other information, since the center column
// participates in the most lines of four.
func centerOutColumn(x int) int {
	return board.Width/2 + x/2 - x*(x&1)
}

// rotate shifts x by jitter positions modulo Width, used to give each
// parallel search worker a distinct default visiting order so workers
// racing on the same position don't duplicate each other's early work.
func rotate(x, jitter int) int {
	return (x + jitter) % board.Width
}

// score rates how promising playing col is for p, following the
// reference solver's calc_score: count the opponent-facing threats
// the move creates, plus half a point per odd/even threat that favors
// whichever side is about to move after it, plus a small bias toward
// the center column (ties are otherwise broken arbitrarily).
func score(p board.Position, col int) float64 {
	after := p.Move(col)
	threatCount := after.FindOpponentThreats().Popcount()

	odd, even := after.FindOddEvenThreats()
	parityBonus := 0.0
	if after.Ply()%2 == 1 {
		// The mover just became "them" in after; an odd threat now
		// favors the player who moved first overall.
		parityBonus = 0.5 * float64(odd.Popcount())
	} else {
		parityBonus = 0.5 * float64(even.Popcount())
	}

	centerBias := 0.1 * float64(min(col, board.Width-1-col)) / float64(board.Width)

	return float64(threatCount) + parityBonus + centerBias
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Order returns p's legal moves sorted best-first. hint, if not
// NoHint, is a transposition-table move tried before anything else.
// jitter rotates the default center-out visiting order, giving
// parallel workers distinct tie-breaking so they don't all search the
// same move first.
func Order(p board.Position, hint int, jitter int) Moves {
	var moves Moves
	for x := 0; x < board.Width; x++ {
		col := centerOutColumn(rotate(x, jitter))
		if !p.IsValidMove(col) {
			continue
		}

		s := tableMoveScore
		if col != hint {
			s = score(p, col)
		}
		moves.insert(col, s)
	}
	return moves
}
