// Copyright (c) 2024, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package mobility

import (
	. "github.com/openthread/ot-bcast/types"
)

// Node is a mobile point agent. It keeps a fixed-size history of its recent positions, most recent first,
// stored in a circular buffer.
type Node struct {
	hist []Position
	head int // index in hist of the current position
}

// NewNode creates a node at pos, with all histLength history entries set to pos. histLength < 1 is raised to 1.
func NewNode(pos Position, histLength int) *Node {
	if histLength < 1 {
		histLength = 1
	}
	n := &Node{
		hist: make([]Position, histLength),
	}
	for i := range n.hist {
		n.hist[i] = pos
	}
	return n
}

// Pos returns the current position.
func (n *Node) Pos() Position {
	return n.hist[n.head]
}

// Update moves the node to pos. The oldest history entry is dropped.
func (n *Node) Update(pos Position) {
	n.head--
	if n.head < 0 {
		n.head = len(n.hist) - 1
	}
	n.hist[n.head] = pos
}

func (n *Node) HistLength() int {
	return len(n.hist)
}

// HistoryAt returns the position of i updates ago; HistoryAt(0) is the current position.
func (n *Node) HistoryAt(i int) Position {
	return n.hist[(n.head+i)%len(n.hist)]
}

// History returns a copy of the position history, most recent first.
func (n *Node) History() []Position {
	res := make([]Position, len(n.hist))
	for i := range res {
		res[i] = n.HistoryAt(i)
	}
	return res
}
