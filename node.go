// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package critbit

// nodeID is a 1-based handle into the node arena. The zero value means
// "no node", which keeps the zero Index usable as an empty index.
type nodeID int32

const noNode nodeID = 0

// leafBit marks a node as a leaf. Internal nodes carry the MSB-first
// index of the bit at which their subtrees diverge.
const leafBit = -1

type node struct {
	bit   int8
	left  nodeID
	right nodeID
	rec   int32 // dense record index, leaves only
}

func (n *node) isLeaf() bool {
	return n.bit == leafBit
}

func (n *node) child(right bool) nodeID {
	if right {
		return n.right
	}
	return n.left
}

func (n *node) setChild(right bool, id nodeID) {
	if right {
		n.right = id
	} else {
		n.left = id
	}
}

// replaceChild swaps the link to old for repl, found by identity.
func (n *node) replaceChild(old, repl nodeID) {
	switch old {
	case n.left:
		n.left = repl
	case n.right:
		n.right = repl
	}
}

func (t *Index[K, T]) node(id nodeID) *node {
	return &t.nodes[id-1]
}

func (t *Index[K, T]) allocNode(n node) nodeID {
	if l := len(t.free); l > 0 {
		id := t.free[l-1]
		t.free = t.free[:l-1]
		*t.node(id) = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return nodeID(len(t.nodes))
}

func (t *Index[K, T]) newLeaf(rec int) nodeID {
	id := t.allocNode(node{bit: leafBit, rec: int32(rec)})
	t.leaves[rec] = id
	return id
}

func (t *Index[K, T]) newInternal(bit int, left, right nodeID) nodeID {
	return t.allocNode(node{bit: int8(bit), left: left, right: right, rec: -1})
}

func (t *Index[K, T]) freeNode(id nodeID) {
	*t.node(id) = node{}
	t.free = append(t.free, id)
}
