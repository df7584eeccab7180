// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package critbit

import (
	"fmt"
	"strings"
)

// TreeString renders the trie shape for debugging. Each internal node shows
// its divergence bit and the number of leaves below it, each leaf its key
// in hex and its dense record index.
func (t *Index[K, T]) TreeString() string {
	if t.root == noNode {
		return "<empty>\n"
	}
	var b strings.Builder
	t.printTree(&b, t.root, 0, "")
	return b.String()
}

func (t *Index[K, T]) printTree(b *strings.Builder, n nodeID, depth int, label string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(label)
	nd := t.node(n)
	if nd.isLeaf() {
		fmt.Fprintf(b, "leaf key=0x%0*x rec=%d\n", keyBits[K]()/4, uint64(t.keys[nd.rec]), nd.rec)
		return
	}
	fmt.Fprintf(b, "node bit=%d size=%d\n", nd.bit, t.subtreeSize(n))
	t.printTree(b, nd.left, depth+1, "0: ")
	t.printTree(b, nd.right, depth+1, "1: ")
}

func (t *Index[K, T]) subtreeSize(n nodeID) int {
	if n == noNode {
		return 0
	}
	nd := t.node(n)
	if nd.isLeaf() {
		return 1
	}
	return t.subtreeSize(nd.left) + t.subtreeSize(nd.right)
}
