// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"testing"

	"github.com/ChristopheSteininger/c4-sub000/internal/board"
	"github.com/ChristopheSteininger/c4-sub000/internal/table"
)

func TestCancelStopsImmediately(t *testing.T) {
	var cancel Cancel
	cancel.Set()

	tbl := table.New(101)
	var stats Stats
	got := Negamax(board.NewPosition(), board.MinScore, board.MaxScore, 0, tbl, &cancel, &stats)
	if got != Stopped {
		t.Fatalf("Negamax with cancellation set = %d, want Stopped", got)
	}
}

func TestCancelResetAllowsSearchToProceed(t *testing.T) {
	var cancel Cancel
	cancel.Set()
	cancel.Reset()
	if cancel.IsSet() {
		t.Fatalf("IsSet() = true after Reset()")
	}
}

func TestImmediateWinShortCircuits(t *testing.T) {
	p := board.NewPosition()
	for _, col := range []int{0, 6, 1, 6, 2, 6} {
		p = p.Move(col)
	}
	if !p.WinsThisMove(3) {
		t.Fatalf("test setup invalid: column 3 should complete a horizontal four")
	}

	tbl := table.New(101)
	var cancel Cancel
	var stats Stats
	got := Negamax(p, board.MinScore, board.MaxScore, 0, tbl, &cancel, &stats)
	want := board.ScoreWinAt(p.Ply() + 1)
	if got != want {
		t.Fatalf("Negamax() = %d, want %d (immediate win short circuit)", got, want)
	}
}

func TestWorkEstimate(t *testing.T) {
	cases := []struct {
		nodes uint64
		want  int
	}{
		{0, 0},
		{1, 0},
		{7, 0},
		{8, 1},
		{63, 1},
		{64, 2},
	}
	for _, c := range cases {
		if got := workEstimate(c.nodes); got != c.want {
			t.Errorf("workEstimate(%d) = %d, want %d", c.nodes, got, c.want)
		}
	}
}

func TestNodeTypeClassification(t *testing.T) {
	if got := nodeType(-5, 0, 10); got != table.Upper {
		t.Errorf("value <= alpha should classify as Upper, got %v", got)
	}
	if got := nodeType(15, 0, 10); got != table.Lower {
		t.Errorf("value >= beta should classify as Lower, got %v", got)
	}
	if got := nodeType(5, 0, 10); got != table.Exact {
		t.Errorf("value strictly inside (alpha, beta) should classify as Exact, got %v", got)
	}
}

func TestScoreLossSoonestIsTwoPliesAhead(t *testing.T) {
	p := board.NewPosition()
	got := scoreLossSoonest(p)
	want := board.ScoreLossAt(p.Ply() + 2)
	if got != want {
		t.Fatalf("scoreLossSoonest() = %d, want %d", got, want)
	}
}

func TestStatsMerge(t *testing.T) {
	a := Stats{Nodes: 1, ChildNodes: 2, MovesChecked: 3, BestMovesGuessed: 4, TableHits: 5, TableCollisions: 6, TableLookups: 7}
	b := Stats{Nodes: 10, ChildNodes: 20, MovesChecked: 30, BestMovesGuessed: 40, TableHits: 50, TableCollisions: 60, TableLookups: 70}
	a.Merge(b)

	want := Stats{Nodes: 11, ChildNodes: 22, MovesChecked: 33, BestMovesGuessed: 44, TableHits: 55, TableCollisions: 66, TableLookups: 77}
	if a != want {
		t.Fatalf("Merge() = %+v, want %+v", a, want)
	}
}
