// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bench runs internal/bench against dataset files named on
// the command line and reports pass/fail counts and nodes/sec,
// generalizing internal/bench/bench.go's "replay games, count nodes"
// shape to this game's benchmark-dataset format (spec.md §6/§8).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ChristopheSteininger/c4-sub000/internal/bench"
	"github.com/ChristopheSteininger/c4-sub000/solver"
)

var (
	strong    = flag.Bool("strong", false, "check exact scores instead of sign(score)")
	threads   = flag.Int("threads", 0, "number of search worker goroutines (0 = default)")
	tableSize = flag.Int("table-size", 0, "number of transposition table slots (0 = default)")
)

func runFile(s *solver.Solver, path string) bool {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("cannot open %s: %v", path, err)
	}
	defer f.Close()

	cases, err := bench.ParseDataset(f)
	if err != nil {
		log.Fatalf("cannot parse %s: %v", path, err)
	}

	var res bench.Result
	if *strong {
		res = bench.RunStrong(s, cases)
	} else {
		res = bench.RunWeak(s, cases)
	}

	fmt.Printf("%s: %d/%d passed, %d nodes, %.0f nodes/sec\n",
		path, res.Passed, res.Total, res.Nodes, res.NodesPerSecond())
	for _, f := range res.Failures {
		log.Printf("%s line %d: moves %s, expected %d, got %d",
			path, f.Case.Line, f.Case.Moves, f.Case.Expected, f.Got)
	}
	return res.Passed == res.Total
}

func main() {
	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")
	log.SetFlags(0)

	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: bench [flags] <dataset-file>...")
	}

	s, err := solver.New(solver.Settings{NumThreads: *threads, TableSize: *tableSize})
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	allPassed := true
	for _, path := range flag.Args() {
		if !runFile(s, path) {
			allPassed = false
		}
	}
	if !allPassed {
		os.Exit(1)
	}
}
