// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "testing"

func TestPutThenGetRoundTrips(t *testing.T) {
	tb := New(1009)
	hash := uint64(123456789)

	tb.Put(hash, 3, Exact, 7, 100)
	entry, ok, collision := tb.Get(hash)
	if !ok {
		t.Fatalf("expected a hit right after Put")
	}
	if collision {
		t.Fatalf("a hit must not also report a collision")
	}
	if entry.Move() != 3 || entry.Score() != 7 || entry.Type() != Exact {
		t.Fatalf("got %+v, want move=3 score=7 type=Exact", entry)
	}
}

func TestGetMissOnEmptySlot(t *testing.T) {
	tb := New(1009)
	_, ok, collision := tb.Get(42)
	if ok {
		t.Fatalf("expected a miss on an empty table")
	}
	if collision {
		t.Fatalf("a miss on an empty slot must not report a collision")
	}
}

func TestGetMissOnIndexCollisionWithDifferentPartialHash(t *testing.T) {
	tb := New(101)
	hash1 := uint64(5)
	hash2 := hash1 + uint64(tb.Len()) // same index, different quotient

	tb.Put(hash1, 1, Exact, 1, 10)
	_, ok, collision := tb.Get(hash2)
	if ok {
		t.Fatalf("expected a miss for a different hash that aliases the same index")
	}
	if !collision {
		t.Fatalf("expected an index collision against a different hash sharing the same index")
	}
	// The original hash must still be retrievable.
	entry, ok, _ := tb.Get(hash1)
	if !ok || entry.Move() != 1 {
		t.Fatalf("original entry should still be present and unaffected")
	}
}

func TestGetCountsLookupsHitsAndCollisionsInStats(t *testing.T) {
	tb := New(101)
	hash1 := uint64(5)
	hash2 := hash1 + uint64(tb.Len()) // same index, different quotient

	tb.Put(hash1, 1, Exact, 1, 10)
	tb.Get(hash1)  // hit
	tb.Get(hash2)  // collision
	tb.Get(9999999) // plain miss (empty slot)

	got := tb.Stats()
	if got.Lookups != 3 {
		t.Fatalf("Stats().Lookups = %d, want 3", got.Lookups)
	}
	if got.Hits != 1 {
		t.Fatalf("Stats().Hits = %d, want 1", got.Hits)
	}
	if got.Collisions != 1 {
		t.Fatalf("Stats().Collisions = %d, want 1", got.Collisions)
	}
}

func TestPutPrefersHigherWorkOnReplacement(t *testing.T) {
	tb := New(101)
	hash1 := uint64(7)
	hash2 := hash1 + uint64(tb.Len())

	tb.Put(hash1, 1, Exact, 1, 500)
	tb.Put(hash2, 2, Exact, 2, 10) // cheaper to recompute, should not replace

	entry, ok, _ := tb.Get(hash1)
	if !ok || entry.Move() != 1 {
		t.Fatalf("higher-work entry should survive a lower-work contender")
	}

	tb.Put(hash2, 2, Exact, 2, 1000) // more expensive, should now replace
	entry, ok, _ = tb.Get(hash2)
	if !ok || entry.Move() != 2 {
		t.Fatalf("higher-work contender should replace the existing entry")
	}
}

func TestPutTracksEntryCountAndOverwritesInStats(t *testing.T) {
	tb := New(101)
	hash1 := uint64(7)
	hash2 := hash1 + uint64(tb.Len())

	tb.Put(hash1, 1, Exact, 1, 500)
	if got := tb.Stats().Entries; got != 1 {
		t.Fatalf("Stats().Entries after first Put = %d, want 1", got)
	}

	tb.Put(hash2, 2, Exact, 2, 1000) // same slot, more expensive: overwrite
	stats := tb.Stats()
	if stats.Entries != 1 {
		t.Fatalf("Stats().Entries after an overwrite = %d, want 1 (no new slot filled)", stats.Entries)
	}
	if stats.Overwrites != 1 {
		t.Fatalf("Stats().Overwrites = %d, want 1", stats.Overwrites)
	}
}

func TestClearEmptiesAllSlots(t *testing.T) {
	tb := New(101)
	tb.Put(1, 0, Exact, 0, 1)
	tb.Clear()
	if got := tb.Stats(); got != (Stats{}) {
		t.Fatalf("Stats() after Clear = %+v, want zero value", got)
	}
	_, ok, _ := tb.Get(1)
	if ok {
		t.Fatalf("expected a miss after Clear")
	}
}

func TestNewRoundsEvenSizeUpToOdd(t *testing.T) {
	tb := New(100)
	if tb.Len()%2 == 0 {
		t.Fatalf("table size should always be odd, got %d", tb.Len())
	}
}

func TestStatsRates(t *testing.T) {
	s := Stats{Lookups: 10, Hits: 4, Collisions: 1, Entries: 50, Overwrites: 2}
	if got := s.HitRate(); got != 0.4 {
		t.Fatalf("HitRate() = %v, want 0.4", got)
	}
	if got := s.CollisionRate(); got != 0.1 {
		t.Fatalf("CollisionRate() = %v, want 0.1", got)
	}
	if got := s.Density(100); got != 0.5 {
		t.Fatalf("Density() = %v, want 0.5", got)
	}
}
