// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package book reads and writes the opening-book CSV format from
// spec.md §6 ("hash,move,score", one row per position) and drives
// book generation per §4.7: enumerate all base-W sequences of D
// moves, dedupe by canonical hash, solve_strong + get_best_move each
// distinct position. It generalizes puzzle/puzzle.go's "read
// positions from a file, solve each, write results to an output
// file" shape to this game.
package book

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ChristopheSteininger/c4-sub000/internal/board"
	"github.com/ChristopheSteininger/c4-sub000/internal/search"
	"github.com/ChristopheSteininger/c4-sub000/solver"
)

// Header is the CSV header row every book file starts with.
var Header = []string{"hash", "move", "score"}

// Entry is one opening-book row: the canonical hash of a position,
// its best move, and its exact score.
//
// The hash column is a single 64-bit value rather than spec.md §6's
// two-word 128-bit form: internal/board.Position.Hash always folds
// its digest down to one uint64 (see DESIGN.md's Hash open-question
// entry), the same simplification internal/table relies on for its
// partial-hash check, so there is only ever one hash word to write.
type Entry struct {
	Hash  uint64
	Move  int
	Score int
}

// WriteCSV writes entries as a header row followed by one row per entry.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			strconv.FormatUint(e.Hash, 10),
			strconv.Itoa(e.Move),
			strconv.Itoa(e.Score),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a book file written by WriteCSV.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("book: reading header: %w", err)
	}
	if len(header) != 3 || header[0] != Header[0] || header[1] != Header[1] || header[2] != Header[2] {
		return nil, fmt.Errorf("book: header = %v, want %v", header, Header)
	}

	var entries []Entry
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		hash, err := strconv.ParseUint(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("book: invalid hash %q: %w", row[0], err)
		}
		move, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("book: invalid move %q: %w", row[1], err)
		}
		score, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("book: invalid score %q: %w", row[2], err)
		}
		entries = append(entries, Entry{Hash: hash, Move: move, Score: score})
	}
	return entries, nil
}

// enumerate returns every canonically-distinct position reachable
// from the empty board in exactly depth plies, by base-board.Width
// counting over all move sequences and deduping mirror images by
// hash, per spec.md §4.7.
func enumerate(depth int) []board.Position {
	seen := make(map[uint64]bool)
	var positions []board.Position

	var walk func(pos board.Position, remaining int)
	walk = func(pos board.Position, remaining int) {
		if remaining == 0 {
			hash, _ := pos.Hash()
			if seen[hash] {
				return
			}
			seen[hash] = true
			positions = append(positions, pos)
			return
		}
		for col := 0; col < board.Width; col++ {
			if !pos.IsValidMove(col) {
				continue
			}
			walk(pos.Move(col), remaining-1)
		}
	}
	walk(board.NewPosition(), depth)
	return positions
}

// Generate enumerates every canonically-distinct position at depth
// plies and solves each with s, returning one Entry per position.
// Per spec.md §4.7, s must have been constructed with NumThreads: 1
// and no thread affinity, since book generation parallelizes across
// positions rather than within a single search. ctx cancellation
// stops enumeration early; positions already solved are kept.
func Generate(ctx context.Context, s *solver.Solver, depth int) []Entry {
	var entries []Entry
	for _, pos := range enumerate(depth) {
		if ctx.Err() != nil {
			break
		}

		hash, _ := pos.Hash()
		score := s.SolveStrong(pos)
		if score == search.Stopped {
			break
		}
		move := s.GetBestMove(pos, score)
		entries = append(entries, Entry{Hash: hash, Move: move, Score: score})
	}
	return entries
}
