// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package movestring parses and formats the front end's move
// encoding: a completed game is a decimal string of moves in 1..W,
// one digit per ply, per spec.md §6. It plays the role
// notation/epd.go plays for chess FEN/SAN, generalized to this game's
// far simpler digit-per-ply notation.
package movestring

import (
	"fmt"

	"github.com/ChristopheSteininger/c4-sub000/internal/board"
)

// Parse converts a move string (each byte '1'..('0'+board.Width)) to
// zero-indexed column numbers, without playing them.
func Parse(s string) ([]int, error) {
	cols := make([]int, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '1' || int(c) > '0'+board.Width {
			return nil, fmt.Errorf("movestring: byte %d (%q) at position %d is not a digit in 1..%d", c, c, i, board.Width)
		}
		cols = append(cols, int(c-'1'))
	}
	return cols, nil
}

// Format renders zero-indexed columns back to the front end's
// one-indexed decimal encoding.
func Format(cols []int) (string, error) {
	buf := make([]byte, len(cols))
	for i, col := range cols {
		if col < 0 || col >= board.Width {
			return "", fmt.Errorf("movestring: column %d at position %d is out of range [0, %d)", col, i, board.Width)
		}
		buf[i] = byte('1' + col)
	}
	return string(buf), nil
}

// Play parses s and replays it from the empty board, returning the
// resulting position. It reports an error if s contains an invalid
// digit or plays into an already-full column.
func Play(s string) (board.Position, error) {
	cols, err := Parse(s)
	if err != nil {
		return board.Position{}, err
	}

	p := board.NewPosition()
	for i, col := range cols {
		if !p.IsValidMove(col) {
			return board.Position{}, fmt.Errorf("movestring: move %d (column %d) plays into a full column", i, col)
		}
		p = p.Move(col)
	}
	return p, nil
}
