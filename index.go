// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package critbit implements a compressed binary trie (crit-bit or Patricia
// tree) keyed by fixed-width unsigned integers, typically hash values.
//
// Records are kept in a dense slice rather than in the trie itself. Leaves
// hold the index of their record, and each record remembers its leaf, so a
// removal can fill the hole with the last record and patch the trie in
// constant time. Iteration walks the dense slice, which means any mutation
// may reorder records. Pointers returned by Find and Put are only valid
// until the next call that mutates the index.
//
// An Index is not safe for concurrent use.
package critbit

import (
	"golang.org/x/exp/slices"
)

// Index maps keys of type K to records of type T. The zero value is an
// empty index ready to use.
type Index[K Key, T any] struct {
	root  nodeID
	nodes []node
	free  []nodeID

	// Dense record store. values[i] has key keys[i] and is referenced by
	// the leaf leaves[i].
	values []T
	keys   []K
	leaves []nodeID
}

// WalkFn is used when walking the trie. Takes a key and a pointer to its
// record, returning if iteration should be terminated.
type WalkFn[K Key, T any] func(k K, v *T) bool

// New returns an empty index.
func New[K Key, T any]() *Index[K, T] {
	return &Index[K, T]{}
}

// Len returns the number of records in the index.
func (t *Index[K, T]) Len() int {
	return len(t.values)
}

func (t *Index[K, T]) IsEmpty() bool {
	return len(t.values) == 0
}

// Clear drops every record and node.
func (t *Index[K, T]) Clear() {
	*t = Index[K, T]{}
}

// Find returns the record stored under k, or nil if there is none.
func (t *Index[K, T]) Find(k K) *T {
	if rec := t.search(k); rec >= 0 {
		return &t.values[rec]
	}
	return nil
}

// Get returns a copy of the record stored under k.
func (t *Index[K, T]) Get(k K) (T, bool) {
	if rec := t.search(k); rec >= 0 {
		return t.values[rec], true
	}
	var zero T
	return zero, false
}

func (t *Index[K, T]) search(k K) int {
	n := t.root
	for n != noNode {
		nd := t.node(n)
		if nd.isLeaf() {
			if t.keys[nd.rec] == k {
				return int(nd.rec)
			}
			return -1
		}
		n = nd.child(bitAt(k, int(nd.bit)))
	}
	return -1
}

// Put returns the record stored under k, creating a zero record if the key
// is not present yet.
func (t *Index[K, T]) Put(k K) *T {
	if p := t.Find(k); p != nil {
		return p
	}
	var zero T
	rec := len(t.values)
	t.values = append(t.values, zero)
	t.keys = append(t.keys, k)
	t.leaves = append(t.leaves, noNode)

	if t.root == noNode {
		t.root = t.newLeaf(rec)
	} else {
		t.root = t.insert(t.root, k, rec)
	}
	return &t.values[rec]
}

// Set stores v under k, overwriting any previous record, and returns a
// pointer to the stored record.
func (t *Index[K, T]) Set(k K, v T) *T {
	p := t.Put(k)
	*p = v
	return p
}

// insert places a leaf for rec below n and returns the new subtree root.
func (t *Index[K, T]) insert(n nodeID, k K, rec int) nodeID {
	if n == noNode {
		return t.newLeaf(rec)
	}

	nd := t.node(n)
	if nd.isLeaf() {
		d := divergence(k, t.keys[nd.rec])
		if d < 0 {
			panic("critbit: duplicate key reached insert")
		}
		leaf := t.newLeaf(rec)
		if bitAt(k, d) {
			return t.newInternal(d, n, leaf)
		}
		return t.newInternal(d, leaf, n)
	}

	right := bitAt(k, int(nd.bit))
	child := nd.child(right)
	newChild := t.insert(child, k, rec)
	if newChild == child {
		return n
	}

	// Allocation may have moved the arena, so reload.
	nd = t.node(n)
	nc := t.node(newChild)
	if !nc.isLeaf() && nc.bit < nd.bit {
		// The split happened above this node: hang n where the old child
		// was and let the split node take n's place.
		nc.replaceChild(child, n)
		return newChild
	}
	nd.setChild(right, newChild)
	return n
}

// Remove deletes the record stored under k. It reports whether the key was
// present.
func (t *Index[K, T]) Remove(k K) bool {
	if t.root == noNode {
		return false
	}
	var res removal
	t.root = t.remove(t.root, k, &res)
	if !res.found {
		return false
	}
	t.freeNode(res.leaf)

	// Swap-delete the record and repoint the moved record's leaf.
	last := len(t.values) - 1
	if res.rec != last {
		t.values[res.rec] = t.values[last]
		t.keys[res.rec] = t.keys[last]
		moved := t.leaves[last]
		t.leaves[res.rec] = moved
		t.node(moved).rec = int32(res.rec)
	}
	var zero T
	t.values[last] = zero
	t.values = t.values[:last]
	t.keys = t.keys[:last]
	t.leaves = t.leaves[:last]
	return true
}

type removal struct {
	found bool
	rec   int
	leaf  nodeID
}

func (t *Index[K, T]) remove(n nodeID, k K, res *removal) nodeID {
	if n == noNode {
		return noNode
	}
	nd := t.node(n)
	if nd.isLeaf() {
		if t.keys[nd.rec] == k {
			res.found = true
			res.rec = int(nd.rec)
			res.leaf = n
			return noNode
		}
		return n
	}

	right := bitAt(k, int(nd.bit))
	child := nd.child(right)
	newChild := t.remove(child, k, res)
	if newChild == child {
		return n
	}
	nd.setChild(right, newChild)
	return t.collapse(n)
}

// collapse replaces an internal node that lost a child by its remaining
// child, freeing the node. Nodes with both children are returned as is.
func (t *Index[K, T]) collapse(n nodeID) nodeID {
	nd := t.node(n)
	switch {
	case nd.left == noNode && nd.right == noNode:
		t.freeNode(n)
		return noNode
	case nd.left == noNode:
		r := nd.right
		t.freeNode(n)
		return r
	case nd.right == noNode:
		l := nd.left
		t.freeNode(n)
		return l
	}
	return n
}

// Optimize collapses every internal node left with a single child. Removal
// already collapses as it goes, so this is normally a no-op.
func (t *Index[K, T]) Optimize() {
	t.root = t.optimize(t.root)
}

func (t *Index[K, T]) optimize(n nodeID) nodeID {
	if n == noNode {
		return noNode
	}
	nd := t.node(n)
	if nd.isLeaf() {
		return n
	}
	l := t.optimize(nd.left)
	r := t.optimize(nd.right)
	nd = t.node(n)
	nd.left, nd.right = l, r
	return t.collapse(n)
}

// Merge moves every record of other into t and leaves other empty. For keys
// present in both, keepThis selects whether t keeps its own record or takes
// the one from other. Merging an index into itself does nothing.
func (t *Index[K, T]) Merge(other *Index[K, T], keepThis bool) {
	if other == nil || other == t {
		return
	}
	for i, k := range other.keys {
		if dst := t.Find(k); dst == nil {
			t.Set(k, other.values[i])
		} else if !keepThis {
			*dst = other.values[i]
		}
	}
	other.Clear()
}

// PutBulk calls Put for every key and appends the resulting pointers to out.
// Storage is reserved up front, so every appended pointer stays valid until
// the next mutation after PutBulk returns.
func (t *Index[K, T]) PutBulk(keys []K, out []*T) []*T {
	t.values = slices.Grow(t.values, len(keys))
	t.keys = slices.Grow(t.keys, len(keys))
	t.leaves = slices.Grow(t.leaves, len(keys))
	t.nodes = slices.Grow(t.nodes, 2*len(keys))
	out = slices.Grow(out, len(keys))
	for _, k := range keys {
		out = append(out, t.Put(k))
	}
	return out
}

// Clone returns an independent copy of the index. Records are copied by
// assignment.
func (t *Index[K, T]) Clone() *Index[K, T] {
	return &Index[K, T]{
		root:   t.root,
		nodes:  slices.Clone(t.nodes),
		free:   slices.Clone(t.free),
		values: slices.Clone(t.values),
		keys:   slices.Clone(t.keys),
		leaves: slices.Clone(t.leaves),
	}
}

// Walk visits the records in ascending key order.
func (t *Index[K, T]) Walk(fn WalkFn[K, T]) {
	t.walk(t.root, fn)
}

func (t *Index[K, T]) walk(n nodeID, fn WalkFn[K, T]) bool {
	if n == noNode {
		return false
	}
	nd := t.node(n)
	if nd.isLeaf() {
		return fn(t.keys[nd.rec], &t.values[nd.rec])
	}
	if t.walk(nd.left, fn) {
		return true
	}
	return t.walk(nd.right, fn)
}

// Minimum returns the smallest key and its record.
func (t *Index[K, T]) Minimum() (K, *T, bool) {
	return t.edge(false)
}

// Maximum returns the largest key and its record.
func (t *Index[K, T]) Maximum() (K, *T, bool) {
	return t.edge(true)
}

func (t *Index[K, T]) edge(right bool) (K, *T, bool) {
	var zero K
	n := t.root
	if n == noNode {
		return zero, nil, false
	}
	for {
		nd := t.node(n)
		if nd.isLeaf() {
			return t.keys[nd.rec], &t.values[nd.rec], true
		}
		n = nd.child(right)
	}
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (t *Index[K, T]) Depth() int {
	return t.depth(t.root)
}

func (t *Index[K, T]) depth(n nodeID) int {
	if n == noNode {
		return 0
	}
	nd := t.node(n)
	if nd.isLeaf() {
		return 1
	}
	return 1 + max(t.depth(nd.left), t.depth(nd.right))
}
