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

package simulation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openthread/ot-bcast/prng"
)

func TestParseSweepParam(t *testing.T) {
	p, err := ParseSweepParam("Nodes")
	assert.Nil(t, err)
	assert.Equal(t, SweepNodes, p)
	p, err = ParseSweepParam("fps")
	assert.Nil(t, err)
	assert.Equal(t, SweepFps, p)
	_, err = ParseSweepParam("speed")
	assert.NotNil(t, err)
}

func TestDefaultSweepConfig(t *testing.T) {
	cfg := DefaultSweepConfig(SweepNodes)
	assert.Equal(t, 32, cfg.NumChannels)
	assert.Equal(t, 30.0, cfg.Fps)
	assert.Equal(t, 20.0, cfg.TotalTime)

	cfg = DefaultSweepConfig(SweepFps)
	assert.Equal(t, 60, cfg.NumNodes)
	assert.Equal(t, 10, cfg.NumChannels)
	assert.Equal(t, 20.0, cfg.TotalTime)
}

func TestRunSweepNodes(t *testing.T) {
	prng.Init(5)
	base := smallConfig(0, 4, 3)
	results, err := RunSweep(context.Background(), base, SweepNodes, []float64{8, 2, 4, 2})
	assert.Nil(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, []float64{2, 4, 8}, []float64{results[0].Value, results[1].Value, results[2].Value})
	assert.Equal(t, 1.0, results[0].Throughput)

	table := FormatSweepTable(base, SweepNodes, results)
	assert.True(t, strings.Contains(table, "| N | throughput |"))
	assert.True(t, strings.Contains(table, "| 2 | 100.0% |"))
	assert.Equal(t, 5, strings.Count(table, "\n|"))
}

func TestRunSweepFps(t *testing.T) {
	base := smallConfig(4, 2, 1)
	results, err := RunSweep(context.Background(), base, SweepFps, []float64{10, 20})
	assert.Nil(t, err)
	assert.Len(t, results, 2)
	assert.InDelta(t, 0.1, results[0].Dt, 1e-12)
	assert.InDelta(t, 0.05, results[1].Dt, 1e-12)

	table := FormatSweepTable(base, SweepFps, results)
	assert.True(t, strings.Contains(table, "| FPS | dt | throughput |"))
	assert.True(t, strings.Contains(table, "| 10 | 0.100 |"))
}

func TestRunSweepErrors(t *testing.T) {
	base := smallConfig(4, 2, 1)
	_, err := RunSweep(context.Background(), base, SweepNodes, []float64{2.5})
	assert.NotNil(t, err)
	_, err = RunSweep(context.Background(), base, SweepChannels, []float64{0})
	assert.NotNil(t, err)
	_, err = RunSweep(context.Background(), base, SweepParam("speed"), []float64{1})
	assert.NotNil(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := RunSweep(ctx, base, SweepFps, []float64{10})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
