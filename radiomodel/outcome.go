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

package radiomodel

import (
	"gonum.org/v1/gonum/mat"

	. "github.com/openthread/ot-bcast/types"
)

// SignalTensor is the N x N x K per-pair signal A, stored as one N x K matrix per receiver:
// A[i][j][k] = D[i][j] * M[j][k] is the strength at which receiver i hears sender j on channel k.
type SignalTensor []*mat.Dense

// At returns A[receiver][sender][channel].
func (st SignalTensor) At(receiver, sender NodeId, channel ChannelId) float64 {
	return st[receiver].At(sender, channel)
}

// Capture is a successful reception.
type Capture struct {
	Receiver NodeId    `yaml:"rx" json:"rx"`
	Sender   NodeId    `yaml:"tx" json:"tx"`
	Channel  ChannelId `yaml:"ch" json:"ch"`
	Share    float64   `yaml:"share" json:"share"` // sender's share of the receiver's channel energy
}

// Outcome is the result of one tick. The matrices are nil when there are no nodes.
type Outcome struct {
	NumNodes    int
	NumChannels int

	Sent     int // number of messages sent, the sum of all entries of Messages
	Received int // number of (receiver, sender, channel) triples satisfying the capture rule

	Messages    *mat.Dense   // M, N x K
	Attenuation *mat.Dense   // D, N x N
	Signal      SignalTensor // A, N x N x K
	Aggregate   *mat.Dense   // Ar = D * M, N x K

	Captures        []Capture
	ChannelSent     []int
	ChannelReceived []int
}

func newOutcome(n, k int) *Outcome {
	return &Outcome{
		NumNodes:        n,
		NumChannels:     k,
		Captures:        []Capture{},
		ChannelSent:     make([]int, k),
		ChannelReceived: make([]int, k),
	}
}

// Ratio returns the throughput of this tick alone; ok is false when nothing was sent.
func (o *Outcome) Ratio() (ratio float64, ok bool) {
	if o.Sent == 0 {
		return 0, false
	}
	return float64(o.Received) / float64(o.Sent), true
}
