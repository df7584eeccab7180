// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package critbit

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// StringTable remembers strings by their 64-bit hash so that a hash seen
// elsewhere can be resolved back to the string it came from. Hashes are
// stable across processes. It is safe for concurrent use.
type StringTable struct {
	mu    sync.Mutex
	index Index[uint64, string]
}

// NewStringTable returns an empty table.
func NewStringTable() *StringTable {
	return &StringTable{}
}

// Hash returns the key s is stored under.
func (st *StringTable) Hash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Add records s and returns its hash. A later string with the same hash
// replaces the earlier one.
func (st *StringTable) Add(s string) uint64 {
	h := st.Hash(s)
	st.mu.Lock()
	st.index.Set(h, s)
	st.mu.Unlock()
	return h
}

// AddAll records every string in ss under a single lock acquisition.
func (st *StringTable) AddAll(ss []string) {
	keys := make([]uint64, len(ss))
	for i, s := range ss {
		keys[i] = st.Hash(s)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, p := range st.index.PutBulk(keys, nil) {
		*p = ss[i]
	}
}

// Lookup returns the string recorded under h.
func (st *StringTable) Lookup(h uint64) (string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.index.Get(h)
}

func (st *StringTable) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.index.Len()
}
