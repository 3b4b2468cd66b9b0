// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package book

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestEnumerateDepthOneDedupesMirrorImages(t *testing.T) {
	// Depth 1 from the empty board plays one of 7 columns; columns
	// (0,6), (1,5) and (2,4) are left-right mirrors of each other and
	// column 3 is its own mirror, so 4 canonically distinct positions
	// should remain.
	got := enumerate(1)
	if len(got) != 4 {
		t.Fatalf("enumerate(1) returned %d positions, want 4", len(got))
	}
}

func TestEnumerateDepthZeroReturnsOnlyTheEmptyBoard(t *testing.T) {
	got := enumerate(0)
	if len(got) != 1 {
		t.Fatalf("enumerate(0) returned %d positions, want 1", len(got))
	}
	if got[0].Ply() != 0 {
		t.Fatalf("enumerate(0)[0].Ply() = %d, want 0", got[0].Ply())
	}
}

func TestWriteCSVThenReadCSVRoundTrips(t *testing.T) {
	entries := []Entry{
		{Hash: 1, Move: 3, Score: 18},
		{Hash: 2, Move: 0, Score: -4},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Fatalf("ReadCSV() = %+v, want %+v", got, entries)
	}
}

func TestWriteCSVEmitsTheSpecHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	firstLine := strings.SplitN(buf.String(), "\n", 2)[0]
	if firstLine != "hash,move,score" {
		t.Fatalf("header line = %q, want %q", firstLine, "hash,move,score")
	}
}

func TestReadCSVRejectsWrongHeader(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("move,hash,score\n1,2,3\n")); err == nil {
		t.Fatalf("ReadCSV() with a scrambled header: want error, got nil")
	}
}

func TestReadCSVRejectsMalformedScore(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("hash,move,score\n1,2,notanumber\n")); err == nil {
		t.Fatalf("ReadCSV() with a non-numeric score: want error, got nil")
	}
}
