// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver is the public API of the column-stacking alignment
// game solver: construct a Solver with Settings, then call
// SolveWeak/SolveStrong/GetBestMove on positions from internal/board.
// It plays the same role engine.Engine plays for zurichess, generalized
// to wrap the parallel pool instead of a single-threaded search.
package solver

import (
	"context"
	"fmt"
	"sync"

	"github.com/ChristopheSteininger/c4-sub000/internal/board"
	"github.com/ChristopheSteininger/c4-sub000/internal/pool"
	"github.com/ChristopheSteininger/c4-sub000/internal/search"
	"github.com/ChristopheSteininger/c4-sub000/internal/table"
)

// DefaultTableSize is used when Settings.TableSize is left at 0.
const DefaultTableSize = 8_388_617 // a prime near 2^23

// Logger reports search progress, modeled line for line on
// engine.Logger/engine.NulLogger.
type Logger interface {
	// BeginSearch signals a new Solve/SolveWeak/SolveStrong call started.
	BeginSearch()
	// EndSearch signals that call finished.
	EndSearch()
	// ReportResult logs the final score, best move (or NoMove) and
	// accumulated stats for the search that just ended.
	ReportResult(score, bestMove int, stats search.Stats)
}

// NulLogger is a Logger that does nothing.
type NulLogger struct{}

func (NulLogger) BeginSearch()                                  {}
func (NulLogger) EndSearch()                                    {}
func (NulLogger) ReportResult(score, bestMove int, stats search.Stats) {}

// Settings configures a Solver. Zero values are replaced by defaults
// in New, matching NewEngine's pos == nil meaning "use the default."
type Settings struct {
	// NumThreads is the number of parallel search workers. 0 means
	// pool.DefaultThreads.
	NumThreads int

	// TableSize is the number of slots in the shared transposition
	// table. 0 means DefaultTableSize. Per spec.md §4.2, an odd
	// (ideally prime) size is recommended; table.New enforces oddness.
	TableSize int

	// Logger receives search progress notifications. nil means NulLogger.
	Logger Logger
}

// Solver is the solver's public entry point: a transposition table,
// a worker pool built on top of it, and the settings used to build
// them.
type Solver struct {
	settings Settings
	tbl      *table.Table
	pool     *pool.Pool
	log      Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New constructs a Solver: allocates the transposition table and
// spawns the worker pool, mirroring NewEngine's "construct; allocate;
// ready to search" shape. Negative settings are rejected as malformed
// input; zero means "use the default."
func New(settings Settings) (*Solver, error) {
	if settings.NumThreads < 0 {
		return nil, fmt.Errorf("solver: NumThreads must be >= 0, got %d", settings.NumThreads)
	}
	if settings.TableSize < 0 {
		return nil, fmt.Errorf("solver: TableSize must be >= 0, got %d", settings.TableSize)
	}

	numThreads := settings.NumThreads
	if numThreads == 0 {
		numThreads = pool.DefaultThreads
	}
	tableSize := settings.TableSize
	if tableSize == 0 {
		tableSize = DefaultTableSize
	}
	logger := settings.Logger
	if logger == nil {
		logger = NulLogger{}
	}

	tbl := table.New(tableSize)
	return &Solver{
		settings: Settings{NumThreads: numThreads, TableSize: tableSize, Logger: logger},
		tbl:      tbl,
		pool:     pool.New(tbl, numThreads),
		log:      logger,
	}, nil
}

// Close stops every worker goroutine. The Solver must not be used
// again after Close.
func (s *Solver) Close() {
	s.pool.Close()
}

// newSearchContext creates a fresh cancellable context for the next
// search call, replacing any context from a previous call so Cancel
// always targets the search currently in flight.
func (s *Solver) newSearchContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	return ctx
}

// Cancel requests that the in-flight Solve/SolveWeak/SolveStrong call
// return early with search.Stopped. Safe to call from any goroutine,
// matching spec.md §4.6/§5's "Solver.cancel" cross-thread contract.
func (s *Solver) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Solve is the aspiration helper Solver::solve(pos, alpha, beta) from
// spec.md §4.7: search pos over [alpha, beta) and return its score,
// or search.Stopped if cancelled.
func (s *Solver) Solve(pos board.Position, alpha, beta int) int {
	ctx := s.newSearchContext()
	s.log.BeginSearch()
	score := s.pool.Solve(ctx, pos, alpha, beta)
	s.log.EndSearch()
	return score
}

// SolveWeak returns +1, 0 or -1: whether the player to move wins,
// draws or loses under optimal play.
func (s *Solver) SolveWeak(pos board.Position) int {
	ctx := s.newSearchContext()
	s.log.BeginSearch()
	score := s.pool.SolveWeak(ctx, pos)
	s.log.EndSearch()
	return score
}

// SolveStrong returns the exact score under optimal play from both
// sides: board.ScoreWinAt or board.ScoreLossAt of the ply on which the
// game ends, or 0 for a draw.
func (s *Solver) SolveStrong(pos board.Position) int {
	ctx := s.newSearchContext()
	s.log.BeginSearch()
	score := s.pool.SolveStrong(ctx, pos)
	s.log.EndSearch()
	return score
}

// GetBestMove returns the column that achieves score from pos, per
// spec.md §4.7's get_best_move.
func (s *Solver) GetBestMove(pos board.Position, score int) int {
	ctx := s.newSearchContext()
	move := s.pool.GetBestMove(ctx, pos, score)
	s.log.ReportResult(score, move, s.pool.Stats())
	return move
}

// GetMergedStats returns the stats accumulated across every search
// since the Solver was created or last reset.
func (s *Solver) GetMergedStats() search.Stats {
	return s.pool.Stats()
}

// ResetStats zeroes the accumulated stats.
func (s *Solver) ResetStats() {
	s.pool.ResetStats()
}

// GetSettingsString renders the Solver's configuration, in the spirit
// of the "info string" diagnostics cmd/zurichess/main.go prints at
// startup.
func (s *Solver) GetSettingsString() string {
	return fmt.Sprintf("threads=%d table-size=%d board=%dx%d",
		s.settings.NumThreads, s.settings.TableSize, board.Width, board.Height)
}
