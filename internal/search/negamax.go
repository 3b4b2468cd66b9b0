// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package search implements the single-threaded negamax / alpha-beta
// search that the worker pool runs in parallel over the shared
// transposition table.
package search

import (
	"sync/atomic"

	"github.com/ChristopheSteininger/c4-sub000/internal/board"
	"github.com/ChristopheSteininger/c4-sub000/internal/order"
	"github.com/ChristopheSteininger/c4-sub000/internal/table"
)

// Stopped is returned by Negamax in place of a score when the search
// was cancelled mid-node. Callers must check for it before treating
// the return value as a score; it is chosen far outside the game's
// possible score range ([board.MinScore, board.MaxScore]) so an
// accidental comparison fails loudly rather than silently.
const Stopped = 1 << 30

// Cancel is a relaxed-ordering flag polled on every node entry: a
// boolean set once from another goroutine and read often here, which
// is exactly what atomic.Bool is for.
type Cancel struct {
	flag atomic.Bool
}

// Set requests cancellation. Safe to call from any goroutine.
func (c *Cancel) Set() { c.flag.Store(true) }

// Reset clears a cancellation request before starting a new search.
func (c *Cancel) Reset() { c.flag.Store(false) }

// IsSet reports whether cancellation has been requested.
func (c *Cancel) IsSet() bool { return c.flag.Load() }

// Stats accumulates per-worker search counters, mirroring
// stat_num_nodes/stat_num_child_nodes/stat_num_moves_checked/
// stat_num_best_moves_guessed in the reference solver.
type Stats struct {
	Nodes             uint64
	ChildNodes        uint64
	MovesChecked      uint64
	BestMovesGuessed  uint64
	TableHits         uint64
	TableCollisions   uint64
	TableLookups      uint64
}

// Merge folds other's counts into s.
func (s *Stats) Merge(other Stats) {
	s.Nodes += other.Nodes
	s.ChildNodes += other.ChildNodes
	s.MovesChecked += other.MovesChecked
	s.BestMovesGuessed += other.BestMovesGuessed
	s.TableHits += other.TableHits
	s.TableCollisions += other.TableCollisions
	s.TableLookups += other.TableLookups
}

// workEstimate returns floor(log8(nodes)), clamped so nodes=0 reads
// as nodes=1, used as the table's replacement-priority field per
// spec.md's "work estimate" (a cheap proxy for how expensive the
// stored result would be to recompute).
func workEstimate(nodes uint64) int {
	if nodes == 0 {
		nodes = 1
	}
	work := 0
	for nodes >= 8 {
		nodes /= 8
		work++
	}
	return work
}

func nodeType(value, alpha, beta int) table.NodeType {
	if value <= alpha {
		return table.Upper
	}
	if value >= beta {
		return table.Lower
	}
	return table.Exact
}

// scoreLossSoonest returns the score of a loss completed as early as
// physically possible from p: the current player must make one move
// (p.Ply()+1) and the opponent completes their four on the move right
// after (p.Ply()+2).
func scoreLossSoonest(p board.Position) int {
	return board.ScoreLossAt(p.Ply() + 2)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Negamax evaluates p over the window [alpha, beta) and returns its
// fail-soft negamax score, which may lie outside the window when the
// search fails low or high, or Stopped if cancel fires mid-search.
// alpha must be < beta. tbl is the shared transposition table; jitter
// is this worker's rotation offset for move ordering, used to
// desynchronize parallel workers.
//
// Before searching, Negamax checks whether the player to move has an
// immediate winning reply and, if so, returns that win's score
// directly. Every recursive call below goes through Negamax, so this
// check runs at every node. See checkImmediateWin.
func Negamax(p board.Position, alpha, beta int, jitter int, tbl *table.Table, cancel *Cancel, stats *Stats) int {
	if cancel.IsSet() {
		return Stopped
	}
	if win, ok := checkImmediateWin(p); ok {
		return win
	}
	return negamax(p, alpha, beta, jitter, tbl, cancel, stats)
}

// checkImmediateWin returns (score_win_at(p.Ply()+1), true) if the
// player to move can complete a four-in-a-row this turn.
func checkImmediateWin(p board.Position) (int, bool) {
	if !p.FindPlayerThreats().IsZero() {
		return board.ScoreWinAt(p.Ply() + 1), true
	}
	return 0, false
}

func negamax(p board.Position, alpha, beta int, jitter int, tbl *table.Table, cancel *Cancel, stats *Stats) int {
	// 1. Cancellation probe.
	if cancel.IsSet() {
		return Stopped
	}
	stats.Nodes++
	originalAlpha, originalBeta := alpha, beta
	nodesBefore := stats.Nodes

	// 2. Hash (prefetch has no Go stdlib analogue; the hash is
	// computed up front anyway since the table lookup needs it).
	hash, mirrored := p.Hash()

	// 3. Static upper-bound tightening: if the player to move cannot
	// physically complete four-in-a-row with the remaining empties,
	// the best this node can ever be is a draw.
	if !p.CanPlayerWin() {
		beta = min(beta, 0)
		if alpha >= beta {
			return 0
		}
	}

	// 4. Non-losing moves. An empty set means every legal reply hands
	// the opponent an immediate win next turn.
	nonLosing := p.FindNonLosingMoves()
	if nonLosing.IsZero() {
		return scoreLossSoonest(p)
	}

	// 5. Opponent-wins-next analysis.
	oppThreats := p.FindOpponentThreats()
	oppThreatCount := oppThreats.Popcount()
	if oppThreatCount >= 2 {
		return scoreLossSoonest(p)
	}
	if oppThreatCount == 1 {
		if oppThreats.And(nonLosing).IsZero() {
			// The only blocking reply is itself a losing drop.
			return scoreLossSoonest(p)
		}

		col := board.ColumnOfBit(oppThreats.TrailingZeros())
		score := Negamax(p.Move(col), -beta, -alpha, jitter, tbl, cancel, stats)
		if score == Stopped {
			return Stopped
		}
		return -score
	}

	// 6. Dynamic window tightening now that neither side wins within
	// the next two plies.
	alpha = max(alpha, board.ScoreLossAt(p.Ply()+2))
	beta = min(beta, board.ScoreWinAt(p.Ply()+2))
	if alpha >= beta {
		return beta
	}

	// 7. Table lookup.
	hint := order.NoHint
	stats.TableLookups++
	entry, ok, collision := tbl.Get(hash)
	if collision {
		stats.TableCollisions++
	}
	if ok {
		stats.TableHits++
		value := entry.Score()
		switch entry.Type() {
		case table.Exact:
			return value
		case table.Lower:
			alpha = max(alpha, value)
		case table.Upper:
			beta = min(beta, value)
		}
		if alpha >= beta {
			return value
		}
		if entry.Move() != int(table.NoMove) {
			hint = entry.Move()
			if mirrored {
				hint = board.MirrorColumn(hint)
			}
		}
	}

	// 8. Child evaluation in move-order.
	moves := order.Order(p, hint, jitter)
	value := board.MinScore - 1
	bestCol := int(table.NoMove)
	bestIsFirstTried := false

	for i := 0; i < moves.Len() && alpha < beta; i++ {
		col := moves.At(i)
		if nonLosing.And(board.ColumnMask(col)).IsZero() {
			continue
		}

		childScore := Negamax(p.Move(col), -beta, -alpha, jitter, tbl, cancel, stats)
		if childScore == Stopped {
			return Stopped
		}
		childScore = -childScore

		stats.MovesChecked++
		if childScore > value {
			value = childScore
			bestCol = col
			bestIsFirstTried = i == 0
		}
		alpha = max(alpha, value)
	}

	stats.ChildNodes += uint64(moves.Len())
	if bestIsFirstTried {
		stats.BestMovesGuessed++
	}

	// 9. Store result.
	kind := nodeType(value, originalAlpha, originalBeta)
	storeMove := bestCol
	if mirrored && storeMove != int(table.NoMove) {
		storeMove = board.MirrorColumn(storeMove)
	}
	work := workEstimate(stats.Nodes - nodesBefore)
	tbl.Put(hash, storeMove, kind, value, work)

	return value
}
