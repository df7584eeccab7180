// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package critbit

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-uuid"
	"github.com/stretchr/testify/require"
)

func TestCache_InvalidSize(t *testing.T) {
	t.Parallel()

	_, err := NewCache[int](0)
	require.Error(t, err)
}

func TestCache_Eviction(t *testing.T) {
	t.Parallel()

	c, err := NewCache[string](2)
	require.NoError(t, err)

	require.False(t, c.Add([]byte("a"), "A"))
	require.False(t, c.Add([]byte("b"), "B"))
	v, ok := c.Get([]byte("a"))
	require.True(t, ok)
	require.Equal(t, "A", v)

	// b is now the least recently used entry.
	require.True(t, c.Add([]byte("c"), "C"))
	require.Equal(t, 2, c.Len())
	require.False(t, c.Contains([]byte("b")))
	require.True(t, c.Contains([]byte("a")))
	require.True(t, c.Contains([]byte("c")))

	// Re-adding an existing key updates it in place.
	require.False(t, c.Add([]byte("c"), "C2"))
	v, ok = c.Get([]byte("c"))
	require.True(t, ok)
	require.Equal(t, "C2", v)
	require.Equal(t, 2, c.Len())
}

func TestCache_Remove(t *testing.T) {
	t.Parallel()

	c, err := NewCache[int](8)
	require.NoError(t, err)
	c.Add([]byte("x"), 1)
	c.Add([]byte("y"), 2)
	require.True(t, c.Remove([]byte("x")))
	require.False(t, c.Remove([]byte("x")))
	_, ok := c.Get([]byte("x"))
	require.False(t, ok)
	require.Equal(t, 1, c.Len())
	require.Equal(t, 1, c.lru.Len())

	// Removal goes through the eviction callback, so the slot is free for
	// reuse and the remaining entry is untouched.
	v, ok := c.Get([]byte("y"))
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.False(t, c.Add([]byte("x"), 3))
	require.Equal(t, 2, c.Len())
	checkInvariants(t, &c.index)
}

func TestCache_HashCollisionIsAMiss(t *testing.T) {
	t.Parallel()

	c, err := NewCache[int](8)
	require.NoError(t, err)
	c.index.Set(xxhash.Sum64([]byte("x")), cacheEntry[int]{key: "y", value: 1})

	_, ok := c.Get([]byte("x"))
	require.False(t, ok)
	require.False(t, c.Contains([]byte("x")))
	require.False(t, c.Remove([]byte("x")))
}

func TestCache_Purge(t *testing.T) {
	t.Parallel()

	c, err := NewCache[int](1000)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		id, err := uuid.GenerateUUID()
		require.NoError(t, err)
		c.Add([]byte(id), i)
	}
	require.Equal(t, 500, c.Len())
	c.Purge()
	require.Equal(t, 0, c.Len())
}

func TestCache_BoundedUnderChurn(t *testing.T) {
	t.Parallel()

	c, err := NewCache[int](64)
	require.NoError(t, err)
	var last []byte
	for i := 0; i < 1000; i++ {
		id, err := uuid.GenerateUUID()
		require.NoError(t, err)
		last = []byte(id)
		c.Add(last, i)
		require.LessOrEqual(t, c.Len(), 64)
	}
	v, ok := c.Get(last)
	require.True(t, ok)
	require.Equal(t, 999, v)
	checkInvariants(t, &c.index)
}
