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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/ot-bcast/logger"
	"github.com/openthread/ot-bcast/radiomodel"
)

// KpiManager is the bookkeeper of the broadcast throughput of a run. Throughput is the ratio of all received to
// all sent messages; ticks in which nothing was sent contribute to neither.
type KpiManager struct {
	runId           string
	numNodes        int
	dt              float64
	ticks           int
	zeroSendTicks   int
	sent            uint64
	received        uint64
	channelSent     []uint64
	channelReceived []uint64
	isRunning       bool
}

// NewKpiManager creates a new KPI manager for a run with the given number of nodes and channels and timestep.
func NewKpiManager(numNodes, numChannels int, dt float64) *KpiManager {
	return &KpiManager{
		runId:           uuid.New().String(),
		numNodes:        numNodes,
		dt:              dt,
		channelSent:     make([]uint64, numChannels),
		channelReceived: make([]uint64, numChannels),
		isRunning:       true,
	}
}

// OnTick accounts the outcome of one tick.
func (km *KpiManager) OnTick(outcome *radiomodel.Outcome) {
	logger.AssertTrue(km.isRunning, "KPI manager is stopped")
	logger.AssertEqual(len(km.channelSent), outcome.NumChannels)

	km.ticks++
	if outcome.Sent == 0 {
		km.zeroSendTicks++
	}
	km.sent += uint64(outcome.Sent)
	km.received += uint64(outcome.Received)
	for c := range km.channelSent {
		km.channelSent[c] += uint64(outcome.ChannelSent[c])
		km.channelReceived[c] += uint64(outcome.ChannelReceived[c])
	}
}

func (km *KpiManager) Stop() {
	km.isRunning = false
}

func (km *KpiManager) IsRunning() bool {
	return km.isRunning
}

func (km *KpiManager) RunId() string {
	return km.runId
}

func (km *KpiManager) Ticks() int {
	return km.ticks
}

func (km *KpiManager) Sent() uint64 {
	return km.sent
}

func (km *KpiManager) Received() uint64 {
	return km.received
}

// Throughput returns received/sent over the run so far, or 0 if nothing was sent yet.
func (km *KpiManager) Throughput() float64 {
	return ratio(km.received, km.sent)
}

// Data calculates the current KPIs.
func (km *KpiManager) Data() *Kpi {
	status := "ok"
	if km.isRunning {
		status = "running"
	}
	kpi := &Kpi{
		RunId:       km.runId,
		FileTime:    time.Now().Format(time.RFC3339),
		Status:      status,
		NumNodes:    km.numNodes,
		NumChannels: len(km.channelSent),
		Time: KpiTime{
			Ticks:     km.ticks,
			DtSec:     km.dt,
			PeriodSec: float64(km.ticks) * km.dt,
		},
		Sent:          km.sent,
		Received:      km.received,
		ZeroSendTicks: km.zeroSendTicks,
		Throughput:    km.Throughput(),
		Channels:      make(map[int]KpiChannel, len(km.channelSent)),
	}
	for c := range km.channelSent {
		kpi.Channels[c] = KpiChannel{
			Sent:       km.channelSent[c],
			Received:   km.channelReceived[c],
			Throughput: ratio(km.channelReceived[c], km.channelSent[c]),
		}
	}
	return kpi
}

// SaveFile writes the KPIs to a file, as YAML for a .yaml/.yml file name and as JSON otherwise.
func (km *KpiManager) SaveFile(fn string) error {
	var data []byte
	var err error

	kpi := km.Data()
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(kpi)
	default:
		data, err = json.MarshalIndent(kpi, "", "    ")
	}
	if err != nil {
		return errors.Wrapf(err, "marshal KPI data")
	}
	if err = os.WriteFile(fn, data, 0644); err != nil {
		return errors.Wrapf(err, "write KPI file %s", fn)
	}
	logger.Debugf("KPI file %s written", fn)
	return nil
}

func ratio(received, sent uint64) float64 {
	if sent == 0 {
		return 0
	}
	return float64(received) / float64(sent)
}
