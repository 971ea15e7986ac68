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
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/openthread/ot-bcast/logger"
	"github.com/openthread/ot-bcast/prng"
	. "github.com/openthread/ot-bcast/types"
)

// CaptureModel is a radio model where signal strength falls off with the inverse squared distance, and a receiver
// hears a sender on a channel only if that sender delivers more than CaptureRatio of all energy the receiver sees
// on the channel during the tick. Exact ties are lost.
type CaptureModel struct {
	params CaptureModelParams
	src    prng.Source
}

// NewCaptureModel creates a capture model that draws emissions from src.
func NewCaptureModel(params *CaptureModelParams, src prng.Source) (*CaptureModel, error) {
	if params.NumChannels <= 0 {
		return nil, errors.Errorf("invalid number of channels: %d", params.NumChannels)
	}
	if params.CaptureRatio < 0 || params.CaptureRatio >= 1 || math.IsNaN(params.CaptureRatio) {
		return nil, errors.Errorf("invalid capture ratio: %v", params.CaptureRatio)
	}
	if params.MinDistance <= 0 || math.IsNaN(params.MinDistance) {
		return nil, errors.Errorf("invalid minimum distance: %v", params.MinDistance)
	}
	if src == nil {
		return nil, errors.Errorf("random source is required")
	}
	return &CaptureModel{
		params: *params,
		src:    src,
	}, nil
}

func (cm *CaptureModel) GetName() string {
	return "Capture"
}

func (cm *CaptureModel) GetParameters() *CaptureModelParams {
	return &cm.params
}

func (cm *CaptureModel) Tick(pos []Position, dt float64) (*Outcome, error) {
	if dt < 0 || math.IsNaN(dt) {
		return nil, errors.Errorf("invalid timestep: %v", dt)
	}
	for i, p := range pos {
		if !p.IsValid() {
			return nil, errors.Errorf("invalid position of node %d: %v", i, p)
		}
	}
	if len(pos) == 0 {
		return newOutcome(0, cm.params.NumChannels), nil
	}

	d := BuildAttenuation(pos, cm.params.MinDistance)
	m := SampleMessages(len(pos), cm.params.NumChannels, dt, cm.src)
	outcome := cm.Evaluate(d, m)
	logger.Tracef("capture model tick: sent=%d received=%d", outcome.Sent, outcome.Received)
	return outcome, nil
}

// Evaluate applies the capture rule to attenuation matrix d (N x N) and message matrix m (N x K).
func (cm *CaptureModel) Evaluate(d *mat.Dense, m *mat.Dense) *Outcome {
	n, n2 := d.Dims()
	mn, k := m.Dims()
	logger.AssertTrue(n == n2 && n == mn, "matrix dimensions mismatch")

	outcome := newOutcome(n, k)
	outcome.Attenuation = d
	outcome.Messages = m

	for i := 0; i < n; i++ {
		for c := 0; c < k; c++ {
			outcome.ChannelSent[c] += int(m.At(i, c))
		}
	}

	ar := &mat.Dense{}
	ar.Mul(d, m)
	outcome.Aggregate = ar

	signal := make(SignalTensor, n)
	for i := 0; i < n; i++ {
		row := d.RawRowView(i)
		ai := mat.NewDense(n, k, nil)
		ai.Apply(func(j, c int, v float64) float64 {
			return row[j] * v
		}, m)
		signal[i] = ai
	}
	outcome.Signal = signal

	for i := 0; i < n; i++ {
		for c := 0; c < k; c++ {
			total := ar.At(i, c)
			if total == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				share := signal[i].At(j, c) / total
				if share > cm.params.CaptureRatio {
					outcome.Captures = append(outcome.Captures, Capture{Receiver: i, Sender: j, Channel: c, Share: share})
					outcome.ChannelReceived[c]++
				}
			}
		}
	}

	for c := 0; c < k; c++ {
		outcome.Sent += outcome.ChannelSent[c]
		outcome.Received += outcome.ChannelReceived[c]
	}
	return outcome
}
