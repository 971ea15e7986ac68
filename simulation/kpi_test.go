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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/openthread/ot-bcast/radiomodel"
)

func testOutcome(sent, received []int) *radiomodel.Outcome {
	o := &radiomodel.Outcome{
		NumNodes:        3,
		NumChannels:     len(sent),
		ChannelSent:     sent,
		ChannelReceived: received,
	}
	for c := range sent {
		o.Sent += sent[c]
		o.Received += received[c]
	}
	return o
}

func TestKpiManager(t *testing.T) {
	km := NewKpiManager(3, 2, 0.1)
	assert.True(t, km.IsRunning())
	assert.NotEmpty(t, km.RunId())
	assert.Equal(t, 0.0, km.Throughput())

	km.OnTick(testOutcome([]int{0, 0}, []int{0, 0}))
	assert.Equal(t, 0.0, km.Throughput())

	km.OnTick(testOutcome([]int{2, 1}, []int{1, 2}))
	km.OnTick(testOutcome([]int{1, 0}, []int{0, 0}))
	assert.Equal(t, 3, km.Ticks())
	assert.Equal(t, uint64(4), km.Sent())
	assert.Equal(t, uint64(3), km.Received())
	assert.InDelta(t, 0.75, km.Throughput(), 1e-12)

	kpi := km.Data()
	assert.Equal(t, "running", kpi.Status)
	assert.Equal(t, 1, kpi.ZeroSendTicks)
	assert.InDelta(t, 0.3, kpi.Time.PeriodSec, 1e-12)
	assert.Equal(t, KpiChannel{Sent: 3, Received: 1, Throughput: 1.0 / 3}, kpi.Channels[0])
	assert.Equal(t, KpiChannel{Sent: 1, Received: 2, Throughput: 2}, kpi.Channels[1])

	km.Stop()
	assert.False(t, km.IsRunning())
	assert.Equal(t, "ok", km.Data().Status)
	assert.Panics(t, func() {
		km.OnTick(testOutcome([]int{1, 0}, []int{0, 0}))
	})
}

func TestKpiManagerSaveYaml(t *testing.T) {
	km := NewKpiManager(3, 1, 0.5)
	km.OnTick(testOutcome([]int{2}, []int{2}))
	km.Stop()

	fn := filepath.Join(t.TempDir(), "kpi.yaml")
	assert.Nil(t, km.SaveFile(fn))
	data, err := os.ReadFile(fn)
	assert.Nil(t, err)

	var kpi Kpi
	assert.Nil(t, yaml.Unmarshal(data, &kpi))
	assert.Equal(t, km.RunId(), kpi.RunId)
	assert.Equal(t, 3, kpi.NumNodes)
	assert.Equal(t, 1, kpi.NumChannels)
	assert.Equal(t, 1.0, kpi.Throughput)

	assert.NotNil(t, km.SaveFile(filepath.Join(t.TempDir(), "no-such-dir", "kpi.json")))
}
