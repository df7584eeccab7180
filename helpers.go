// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package critbit

import (
	"math/bits"
	"unsafe"
)

// Key is the set of fixed-width unsigned integers an Index can be keyed by.
type Key interface {
	~uint32 | ~uint64
}

// keyBits returns the width of K in bits.
func keyBits[K Key]() int {
	var k K
	return int(unsafe.Sizeof(k)) * 8
}

// bitAt reports whether bit b of k is set. Bit 0 is the most significant.
func bitAt[K Key](k K, b int) bool {
	shift := keyBits[K]() - 1 - b
	return (uint64(k)>>shift)&1 != 0
}

// divergence returns the MSB-first index of the highest bit where a and b
// differ, or -1 when they are equal.
func divergence[K Key](a, b K) int {
	x := uint64(a ^ b)
	if x == 0 {
		return -1
	}
	return bits.LeadingZeros64(x) - (64 - keyBits[K]())
}
