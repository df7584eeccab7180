// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package critbit

import "iter"

// Iterator walks the key and record pairs of an Index in dense storage
// order. It is invalidated by any Put that adds a key, Remove, Optimize,
// Merge or Clear on the index it was taken from.
type Iterator[K Key, T any] struct {
	t   *Index[K, T]
	pos int
}

// Iterator returns an iterator positioned before the first record.
func (t *Index[K, T]) Iterator() *Iterator[K, T] {
	return &Iterator[K, T]{t: t}
}

// Next returns the next key and record. The last result is false once all
// records have been returned.
func (i *Iterator[K, T]) Next() (K, *T, bool) {
	if i.pos >= len(i.t.values) {
		var zero K
		return zero, nil, false
	}
	pos := i.pos
	i.pos++
	return i.t.keys[pos], &i.t.values[pos], true
}

// Reset rewinds the iterator to the first record.
func (i *Iterator[K, T]) Reset() {
	i.pos = 0
}

// ValueIterator walks the records of an Index in dense storage order. The
// same invalidation rules as for Iterator apply.
type ValueIterator[K Key, T any] struct {
	t   *Index[K, T]
	pos int
}

// ValueIterator returns a value iterator positioned before the first record.
func (t *Index[K, T]) ValueIterator() *ValueIterator[K, T] {
	return &ValueIterator[K, T]{t: t}
}

// Next returns the next record, or false once all records have been returned.
func (i *ValueIterator[K, T]) Next() (*T, bool) {
	if i.pos >= len(i.t.values) {
		return nil, false
	}
	i.pos++
	return &i.t.values[i.pos-1], true
}

// Reset rewinds the iterator to the first record.
func (i *ValueIterator[K, T]) Reset() {
	i.pos = 0
}

// All returns a sequence over every key and record in dense storage order.
// The index must not be mutated while the sequence is being consumed.
func (t *Index[K, T]) All() iter.Seq2[K, *T] {
	return func(yield func(K, *T) bool) {
		for i := range t.values {
			if !yield(t.keys[i], &t.values[i]) {
				return
			}
		}
	}
}

// Values returns a sequence over every record in dense storage order.
func (t *Index[K, T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range t.values {
			if !yield(&t.values[i]) {
				return
			}
		}
	}
}

// Keys returns a sequence over every key in dense storage order.
func (t *Index[K, T]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range t.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// ForEach calls fn for every record in dense storage order.
func (t *Index[K, T]) ForEach(fn func(v *T)) {
	for i := range t.values {
		fn(&t.values[i])
	}
}
