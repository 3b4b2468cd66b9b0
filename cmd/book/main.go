// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command book generates an opening book per spec.md §4.7: it
// enumerates all base-board.Width sequences of -depth moves, solves
// each distinct position, and appends CSV rows. It generalizes
// puzzle/puzzle.go's "read positions, solve, write results" shape.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/ChristopheSteininger/c4-sub000/internal/book"
	"github.com/ChristopheSteininger/c4-sub000/solver"
)

var (
	depth     = flag.Int("depth", 8, "number of plies to enumerate from the empty board")
	output    = flag.String("output", "", "file to write the opening book CSV to")
	tableSize = flag.Int("table-size", 0, "number of transposition table slots (0 = default)")
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")
	log.SetFlags(0)

	flag.Parse()
	if *output == "" {
		log.Fatal("--output not specified")
	}

	// Book generation parallelizes across positions, not within a
	// single search, so per spec.md §4.7 it must run with exactly one
	// search worker.
	s, err := solver.New(solver.Settings{NumThreads: 1, TableSize: *tableSize})
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	fout, err := os.Create(*output)
	if err != nil {
		log.Fatalf("cannot open %s for writing: %v", *output, err)
	}
	defer fout.Close()

	entries := book.Generate(context.Background(), s, *depth)
	if err := book.WriteCSV(fout, entries); err != nil {
		log.Fatalf("writing %s: %v", *output, err)
	}

	log.Printf("wrote %d entries to %s", len(entries), *output)
}
