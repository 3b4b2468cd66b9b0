// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package board implements the bitboard representation of the
// column-stacking alignment game: move/unmove, win and threat
// detection, dead-stone pruning, and canonical hashing.
//
// A column has Height playable cells plus one sentinel bit above it
// (the "header"), so a column occupies Height1 = Height+1 bits and
// the whole board occupies Width*Height1 bits. The sentinel row lets
// a single shift-and-AND detect four-in-a-column, four-in-a-row, and
// both diagonals, and lets a "+BottomRow" ripple-carry trick locate
// the next empty cell of every column in one addition.
package board

const (
	// Width is the number of columns. Canonical value is 7.
	Width = 7
	// Height is the number of playable rows per column. Canonical value is 6.
	Height = 6
	// Height1 is the column stride: one bit per playable row plus the sentinel.
	Height1 = Height + 1
	// Height2 is Height+2, one of the four shift directions (a diagonal).
	Height2 = Height + 2
	// TotalBits is the number of bits needed to hold the board, sentinels included.
	TotalBits = Width * Height1

	// MaxScore is the best possible score: a win on the earliest possible ply (7).
	MaxScore = (Width*Height - 7 + 1) / 2
	// MinScore is the worst possible score: a loss on the earliest possible ply (7).
	MinScore = -MaxScore
)

// directions are the four shift amounts that, applied repeatedly,
// walk every line of four aligned cells on the board: vertical (1),
// horizontal (Height1), and the two diagonals (Height and Height2).
var directions = [4]uint{1, Height, Height1, Height2}

var (
	// FirstColumn has a 1 in every playable cell of column 0.
	FirstColumn Bits
	// FirstColumnHeader is FirstColumn plus column 0's sentinel bit.
	FirstColumnHeader Bits
	// BottomRow has a 1 in the bottom playable cell of every column.
	BottomRow Bits
	// ColumnHeaders has a 1 in the sentinel bit above every column.
	ColumnHeaders Bits
	// ValidCells has a 1 in every playable (non-sentinel) cell.
	ValidCells Bits
	// OddRowMask has a 1 in rows 0, 2, 4, ... of every column (used by
	// the odd/even threat parity heuristic).
	OddRowMask Bits
)

func init() {
	for i := uint(0); i < Height; i++ {
		FirstColumn = FirstColumn.Or(BitAt(i))
	}
	for i := uint(0); i <= Height; i++ {
		FirstColumnHeader = FirstColumnHeader.Or(BitAt(i))
	}
	for col := 0; col < Width; col++ {
		BottomRow = BottomRow.Or(BitAt(uint(col) * Height1))
		ColumnHeaders = ColumnHeaders.Or(BitAt(uint(col)*Height1 + Height))
		for row := 0; row < Height; row++ {
			ValidCells = ValidCells.Or(BitAt(uint(col*Height1 + row)))
		}
	}
	for i := uint(0); i < Height; i += 2 {
		OddRowMask = OddRowMask.Or(BottomRow.Shl(i))
	}
}

// ScoreWinAt returns the score of a win completed on ply.
func ScoreWinAt(ply int) int {
	return (Width*Height - ply + 1) / 2
}

// ScoreLossAt returns the score of a loss completed on ply.
func ScoreLossAt(ply int) int {
	return -ScoreWinAt(ply)
}

// ColumnMask returns the mask of the playable cells of col.
func ColumnMask(col int) Bits {
	return FirstColumn.Shl(uint(col) * Height1)
}
