// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package critbit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	t.Parallel()

	idx := New[uint32, string]()
	idx.Set(10, "ten")
	idx.Set(20, "twenty")
	idx.Set(30, "thirty")
	require.True(t, idx.Remove(10))

	type pair struct {
		k uint32
		v string
	}
	want := []pair{{30, "thirty"}, {20, "twenty"}}

	it := idx.Iterator()
	for pass := 0; pass < 2; pass++ {
		var got []pair
		for {
			k, v, ok := it.Next()
			if !ok {
				break
			}
			got = append(got, pair{k, *v})
		}
		require.Equal(t, want, got)
		_, v, ok := it.Next()
		require.False(t, ok)
		require.Nil(t, v)
		it.Reset()
	}
}

func TestValueIterator(t *testing.T) {
	t.Parallel()

	idx := New[uint64, int]()
	for i := 0; i < 50; i++ {
		idx.Set(uint64(i)<<40, i)
	}
	for i := 0; i < 50; i += 3 {
		idx.Remove(uint64(i) << 40)
	}

	it := idx.ValueIterator()
	n := 0
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		require.NotZero(t, *v%3)
		n++
	}
	require.Equal(t, idx.Len(), n)

	// Writes through the iterator land in the index.
	it.Reset()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		*v = -*v
	}
	require.Equal(t, -1, *idx.Find(1 << 40))
}

func TestSequences(t *testing.T) {
	t.Parallel()

	idx := New[uint32, int]()
	for i := uint32(1); i <= 5; i++ {
		idx.Set(i, int(i)*10)
	}

	sum := 0
	for v := range idx.Values() {
		sum += *v
	}
	require.Equal(t, 150, sum)

	var keys []uint32
	for k := range idx.Keys() {
		keys = append(keys, k)
	}
	require.Equal(t, []uint32{1, 2, 3, 4, 5}, keys)

	n := 0
	for k, v := range idx.All() {
		require.Equal(t, int(k)*10, *v)
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)

	count := 0
	idx.ForEach(func(v *int) {
		*v++
		count++
	})
	require.Equal(t, 5, count)
	require.Equal(t, 11, *idx.Find(1))
}
