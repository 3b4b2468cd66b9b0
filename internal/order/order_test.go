// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package order

import (
	"testing"

	"github.com/ChristopheSteininger/c4-sub000/internal/board"
)

func TestOrderVisitsEveryLegalColumnExactlyOnce(t *testing.T) {
	p := board.NewPosition()
	moves := Order(p, NoHint, 0)
	if moves.Len() != board.Width {
		t.Fatalf("Len() = %d, want %d", moves.Len(), board.Width)
	}

	seen := make(map[int]bool)
	for i := 0; i < moves.Len(); i++ {
		col := moves.At(i)
		if seen[col] {
			t.Fatalf("column %d returned more than once", col)
		}
		seen[col] = true
	}
}

func TestOrderPutsHintFirst(t *testing.T) {
	p := board.NewPosition()
	for hint := 0; hint < board.Width; hint++ {
		moves := Order(p, hint, 0)
		if moves.At(0) != hint {
			t.Fatalf("with hint=%d, At(0) = %d, want the hint first", hint, moves.At(0))
		}
	}
}

func TestOrderSkipsFullColumns(t *testing.T) {
	p := board.NewPosition()
	for i := 0; i < board.Height; i++ {
		p = p.Move(0)
	}
	moves := Order(p, NoHint, 0)
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i) == 0 {
			t.Fatalf("column 0 is full and must not appear in the ordered moves")
		}
	}
	if moves.Len() != board.Width-1 {
		t.Fatalf("Len() = %d, want %d", moves.Len(), board.Width-1)
	}
}

func TestJitterStillVisitsEveryColumnOnce(t *testing.T) {
	p := board.NewPosition()
	for jitter := 0; jitter < board.Width; jitter++ {
		moves := Order(p, NoHint, jitter)
		seen := make(map[int]bool)
		for i := 0; i < moves.Len(); i++ {
			seen[moves.At(i)] = true
		}
		if len(seen) != board.Width {
			t.Fatalf("jitter=%d: expected all %d columns visited, got %d", jitter, board.Width, len(seen))
		}
	}
}
