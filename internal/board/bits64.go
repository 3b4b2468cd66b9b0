// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !board128

package board

import "math/bits"

// Bits is the board's native word. With the default 7x6 board
// TotalBits is 49, which fits a single uint64, so this build uses
// the plain scalar representation. Build with -tags board128 to
// switch to the two-word representation needed for larger boards
// (see bits128.go).
type Bits uint64

// BitAt returns a Bits with only bit i set.
func BitAt(i uint) Bits {
	return Bits(1) << i
}

// Shl returns b shifted left by i bits.
func (b Bits) Shl(i uint) Bits { return b << i }

// Shr returns b shifted right by i bits.
func (b Bits) Shr(i uint) Bits { return b >> i }

// And returns the bitwise AND of b and c.
func (b Bits) And(c Bits) Bits { return b & c }

// Or returns the bitwise OR of b and c.
func (b Bits) Or(c Bits) Bits { return b | c }

// Xor returns the bitwise XOR of b and c.
func (b Bits) Xor(c Bits) Bits { return b ^ c }

// AndNot returns b &^ c.
func (b Bits) AndNot(c Bits) Bits { return b &^ c }

// Not returns the bitwise complement of b.
func (b Bits) Not() Bits { return ^b }

// Add returns b+c, used by the bottom-row ripple-carry next-empty-cell trick.
func (b Bits) Add(c Bits) Bits { return b + c }

// IsZero reports whether b has no bits set.
func (b Bits) IsZero() bool { return b == 0 }

// Eq reports whether b equals c.
func (b Bits) Eq(c Bits) bool { return b == c }

// Less reports whether b, read as an unsigned integer, is less than c.
// Used to canonicalize a position's hash against its mirror.
func (b Bits) Less(c Bits) bool { return b < c }

// Popcount returns the number of set bits in b.
func (b Bits) Popcount() int { return bits.OnesCount64(uint64(b)) }

// Bit returns 1 if bit i of b is set, 0 otherwise.
func (b Bits) Bit(i uint) uint { return uint(b>>i) & 1 }

// TrailingZeros returns the number of trailing zero bits in b.
// Undefined (returns bit width) when b is zero.
func (b Bits) TrailingZeros() uint { return uint(bits.TrailingZeros64(uint64(b))) }

// ClearLowestSet returns b with its lowest set bit cleared.
func (b Bits) ClearLowestSet() Bits { return b & (b - 1) }

// Uint64 returns the low 64 bits of b, for hashing and table indexing.
func (b Bits) Uint64() uint64 { return uint64(b) }
