// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command solve solves one position given as a move string and
// prints its score and best move. It generalizes cmd/zurichess's
// read-eval-print shape without the UCI protocol, since spec.md names
// no UCI-equivalent protocol for this game.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ChristopheSteininger/c4-sub000/internal/movestring"
	"github.com/ChristopheSteininger/c4-sub000/solver"
)

var (
	weak      = flag.Bool("weak", false, "report the weak (win/draw/loss) score")
	strong    = flag.Bool("strong", false, "report the strong (exact) score; the default if neither flag is set")
	threads   = flag.Int("threads", 0, "number of search worker goroutines (0 = default)")
	tableSize = flag.Int("table-size", 0, "number of transposition table slots (0 = default)")
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")
	log.SetFlags(0)

	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: solve [flags] <move-string>")
	}
	if !*weak && !*strong {
		*strong = true
	}

	pos, err := movestring.Play(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	s, err := solver.New(solver.Settings{NumThreads: *threads, TableSize: *tableSize})
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	log.Print(s.GetSettingsString())

	if *weak {
		fmt.Printf("weak score %d\n", s.SolveWeak(pos))
	}
	if *strong {
		score := s.SolveStrong(pos)
		fmt.Printf("strong score %d\n", score)
		fmt.Printf("move %d\n", s.GetBestMove(pos, score)+1) // one-indexed, per spec.md's front-end move encoding
	}

	log.Printf("nodes %d", s.GetMergedStats().Nodes)
}
