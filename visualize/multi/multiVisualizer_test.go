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

package visualize_multi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/openthread/ot-bcast/types"
	"github.com/openthread/ot-bcast/visualize"
)

type countingVisualizer struct {
	inits, stops, nodes, moves, ticks int
	stopOrder                          *[]int
	id                                 int
}

func (cv *countingVisualizer) Init()                      { cv.inits++ }
func (cv *countingVisualizer) AddNode(NodeId, Position)    { cv.nodes++ }
func (cv *countingVisualizer) SetNodePos(NodeId, Position) { cv.moves++ }
func (cv *countingVisualizer) OnTick(*visualize.TickInfo)  { cv.ticks++ }
func (cv *countingVisualizer) Stop() {
	cv.stops++
	*cv.stopOrder = append(*cv.stopOrder, cv.id)
}

func TestMultiVisualizer(t *testing.T) {
	var order []int
	v1 := &countingVisualizer{id: 1, stopOrder: &order}
	v2 := &countingVisualizer{id: 2, stopOrder: &order}

	mv := NewMultiVisualizer(v1)
	mv.AddVisualizer(v2, visualize.NewNopVisualizer())
	mv.Init()
	mv.AddNode(0, Position{})
	mv.SetNodePos(0, Position{X: 1})
	mv.OnTick(&visualize.TickInfo{})
	mv.Stop()

	for _, v := range []*countingVisualizer{v1, v2} {
		assert.Equal(t, 1, v.inits)
		assert.Equal(t, 1, v.nodes)
		assert.Equal(t, 1, v.moves)
		assert.Equal(t, 1, v.ticks)
		assert.Equal(t, 1, v.stops)
	}
	assert.Equal(t, []int{2, 1}, order)
}
