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

package visualize_text

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	. "github.com/openthread/ot-bcast/types"
	"github.com/openthread/ot-bcast/visualize"
)

type textVisualizer struct {
	out      io.Writer
	simplify int
}

// NewTextVisualizer creates a Visualizer that prints the per-tick matrices to out. The simplify level selects
// how much is printed, see visualize.SimplifyNone and friends.
func NewTextVisualizer(out io.Writer, simplify int) visualize.Visualizer {
	return &textVisualizer{
		out:      out,
		simplify: simplify,
	}
}

func (tv *textVisualizer) Init() {
}

func (tv *textVisualizer) Stop() {
}

func (tv *textVisualizer) AddNode(NodeId, Position) {
}

func (tv *textVisualizer) SetNodePos(NodeId, Position) {
}

func (tv *textVisualizer) OnTick(info *visualize.TickInfo) {
	if tv.simplify >= visualize.SimplifyAll {
		return
	}
	o := info.Outcome
	tv.printf("tick %d (t=%.3fs): sent=%d received=%d\n", info.Tick, info.TimeSec, o.Sent, o.Received)
	if o.NumNodes == 0 {
		return
	}

	tv.printMatrix("M", o.Messages)
	if tv.simplify <= visualize.SimplifyNone {
		tv.printMatrix("D", o.Attenuation)
	}
	tv.printMatrix("Ar", o.Aggregate)
	if tv.simplify <= visualize.SimplifyNone {
		for i, a := range o.Signal {
			tv.printMatrix(fmt.Sprintf("A[%d]", i), a)
		}
	}
	for _, c := range o.Captures {
		tv.printf("  rx %d <- tx %d ch %d (%.1f%%)\n", c.Receiver, c.Sender, c.Channel, 100*c.Share)
	}
}

func (tv *textVisualizer) printMatrix(name string, m mat.Matrix) {
	prefix := fmt.Sprintf("%*s", len(name)+5, "")
	tv.printf("  %s = %v\n", name, mat.Formatted(m, mat.Prefix(prefix), mat.Squeeze()))
}

func (tv *textVisualizer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(tv.out, format, args...)
}
