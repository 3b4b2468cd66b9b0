// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool runs the negamax search in parallel across a fixed set
// of goroutine workers that share one transposition table. The worker
// lifecycle and aspiration-style solve helpers here generalize a
// single-goroutine iterative-deepening driver to a multi-worker
// design, built entirely from standard library concurrency
// primitives.
package pool

import (
	"context"
	"sync"

	"github.com/ChristopheSteininger/c4-sub000/internal/board"
	"github.com/ChristopheSteininger/c4-sub000/internal/search"
	"github.com/ChristopheSteininger/c4-sub000/internal/table"
)

// DefaultThreads is used when New is given a non-positive worker count.
const DefaultThreads = 4

type job struct {
	pos         board.Position
	alpha, beta int
	jitter      int
	cancel      *search.Cancel
	results     chan<- workerResult
}

type workerResult struct {
	score int
	stats search.Stats
}

// Worker runs negamax on its own goroutine, one job at a time. It owns
// no state across jobs beyond its private Stats, mirroring spec's
// "each worker owns a Search holding its private stats."
type Worker struct {
	id   int
	tbl  *table.Table
	jobs chan job
}

func newWorker(id int, tbl *table.Table) *Worker {
	w := &Worker{id: id, tbl: tbl, jobs: make(chan job)}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	var stats search.Stats
	for j := range w.jobs {
		stats = search.Stats{}
		score := search.Negamax(j.pos, j.alpha, j.beta, j.jitter, w.tbl, j.cancel, &stats)
		j.results <- workerResult{score: score, stats: stats}
	}
}

// Pool is NUM_THREADS persistent workers sharing one transposition
// table. Pool and its workers live for the life of the solver; each
// call to Search resets only the per-search cancellation token, not
// the workers themselves, matching spec's "Pool and workers live for
// the life of the solver; each search resets per-search stats and the
// cancellation flag."
type Pool struct {
	tbl     *table.Table
	workers []*Worker

	mu    sync.Mutex
	stats search.Stats
}

// New builds a pool of numThreads workers sharing tbl. numThreads <= 0
// is treated as DefaultThreads.
func New(tbl *table.Table, numThreads int) *Pool {
	if numThreads <= 0 {
		numThreads = DefaultThreads
	}
	p := &Pool{tbl: tbl, workers: make([]*Worker, numThreads)}
	for i := range p.workers {
		p.workers[i] = newWorker(i, tbl)
	}
	return p
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int { return len(p.workers) }

// Close stops every worker goroutine. The pool must not be used again
// after Close.
func (p *Pool) Close() {
	for _, w := range p.workers {
		close(w.jobs)
	}
}

// Stats returns the accumulated stats merged across every Search call
// since the pool was created or last reset.
func (p *Pool) Stats() search.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// ResetStats zeroes the pool's accumulated stats.
func (p *Pool) ResetStats() {
	p.mu.Lock()
	p.stats = search.Stats{}
	p.mu.Unlock()
}

func (p *Pool) mergeStats(s search.Stats) {
	p.mu.Lock()
	p.stats.Merge(s)
	p.mu.Unlock()
}

// jitterFor computes worker i's move-ordering rotation offset for a
// search over [alpha, beta). Jitter is deterministic in both i and
// the window width: it is i times max(1, 2*board.Width/width), so the
// returned offset grows as the window narrows. order.Order applies the
// offset modulo board.Width, so for windows of width 1 or 2 (scale 14
// or 7 on the default board) every worker gets the same visiting
// order; wider windows rotate each worker's order differently.
func jitterFor(i int, alpha, beta int) int {
	width := beta - alpha
	if width < 1 {
		width = 1
	}
	scale := (2 * board.Width) / width
	if scale < 1 {
		scale = 1
	}
	return i * scale
}

// Search implements Pool.search(pos, alpha, beta) from spec §4.6:
// every worker races to evaluate pos over the same window with its
// own jitter, the first worker to publish a real (non-Stopped) score
// wins, every worker is then signalled to stop, and their stats are
// merged into the pool's accumulator before returning. ctx cancellation
// stops the race early and the call returns search.Stopped.
func (p *Pool) Search(ctx context.Context, pos board.Position, alpha, beta int) int {
	cancel := &search.Cancel{}

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-ctx.Done():
			cancel.Set()
		case <-stopWatch:
		}
	}()

	results := make(chan workerResult, len(p.workers))
	for i, w := range p.workers {
		w.jobs <- job{
			pos:     pos,
			alpha:   alpha,
			beta:    beta,
			jitter:  jitterFor(i, alpha, beta),
			cancel:  cancel,
			results: results,
		}
	}

	score := search.Stopped
	haveScore := false
	for i := 0; i < len(p.workers); i++ {
		r := <-results
		if !haveScore && r.score != search.Stopped {
			score = r.score
			haveScore = true
			// Fairness: the first real score wins; signal the rest to
			// stop early. Their in-flight table writes are preserved.
			cancel.Set()
		}
		p.mergeStats(r.stats)
	}
	return score
}

// trivialScore reports pos's score without a search, for the cases
// spec's solve_weak/solve_strong both special-case before negamax
// ever runs: the position is already decided, or the player to move
// has an immediate winning reply.
func trivialScore(pos board.Position) (int, bool) {
	switch {
	case pos.HasOpponentWon():
		return board.ScoreLossAt(pos.Ply()), true
	case pos.HasPlayerWon():
		return board.ScoreWinAt(pos.Ply()), true
	case !pos.FindPlayerThreats().IsZero():
		return board.ScoreWinAt(pos.Ply() + 1), true
	case pos.IsDraw():
		return 0, true
	default:
		return 0, false
	}
}

func clamp(value, alpha, beta int) int {
	if value < alpha {
		return alpha
	}
	if value > beta {
		return beta
	}
	return value
}

// Solve is the aspiration helper Solver.solve delegates to: trivial
// positions are resolved without a search, otherwise the window
// [alpha, beta) is handed to Search.
func (p *Pool) Solve(ctx context.Context, pos board.Position, alpha, beta int) int {
	if value, ok := trivialScore(pos); ok {
		return clamp(value, alpha, beta)
	}
	return p.Search(ctx, pos, alpha, beta)
}

// sign reports whether x is positive, negative or zero.
func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// SolveWeak returns +1, 0 or -1: whether the player to move wins,
// draws or loses under optimal play. It probes the [-1, 0) window
// first and only widens to [0, 1) when the result is exactly 0, since
// a 0 from the first probe is only a lower bound: it is ambiguous
// between "draw" and "win."
// A trivial (already-decided or immediate-win) position comes back
// already clamped to the probe window by trivialScore/clamp, but a
// deep, non-trivial search fails high or low with its real fail-soft
// score magnitude (e.g. -20, not -1), so the result still needs
// sign() applied before it is the +1/0/-1 this function promises.
func (p *Pool) SolveWeak(ctx context.Context, pos board.Position) int {
	score := p.Solve(ctx, pos, -1, 0)
	if score == search.Stopped {
		return search.Stopped
	}
	if score == 0 {
		score = p.Solve(ctx, pos, 0, 1)
		if score == search.Stopped {
			return search.Stopped
		}
	}
	return sign(score)
}

// SolveStrong returns the exact score under optimal play from both
// sides: board.ScoreWinAt or board.ScoreLossAt of the ply on which the
// game ends, or 0 for a draw.
func (p *Pool) SolveStrong(ctx context.Context, pos board.Position) int {
	return p.Solve(ctx, pos, board.MinScore, board.MaxScore)
}

// GetBestMove returns the column that achieves score from pos. It
// first tries the transposition table's own recorded move for pos
// (un-mirroring it if pos was looked up under its mirror image), and
// falls back to re-deriving the move by solving each legal reply over
// a window pinned around -score, per spec's get_best_move.
func (p *Pool) GetBestMove(ctx context.Context, pos board.Position, score int) int {
	if hash, mirrored := pos.Hash(); true {
		if entry, ok, _ := p.tbl.Get(hash); ok && entry.Move() != int(table.NoMove) {
			move := entry.Move()
			if mirrored {
				move = board.MirrorColumn(move)
			}
			if pos.IsValidMove(move) {
				return move
			}
		}
	}

	for col := 0; col < board.Width; col++ {
		if !pos.IsValidMove(col) {
			continue
		}
		childScore := p.Solve(ctx, pos.Move(col), -score, -score+1)
		if childScore == search.Stopped {
			return int(table.NoMove)
		}
		if -childScore == score {
			return col
		}
	}
	return int(table.NoMove)
}
