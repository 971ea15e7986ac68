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

import . "github.com/openthread/ot-bcast/types"

type KpiTime struct {
	Ticks     int     `json:"ticks" yaml:"ticks"`
	DtSec     float64 `json:"dt" yaml:"dt"`
	PeriodSec float64 `json:"duration" yaml:"duration"`
}

type KpiChannel struct {
	Sent       uint64  `json:"sent" yaml:"sent"`
	Received   uint64  `json:"received" yaml:"received"`
	Throughput float64 `json:"throughput" yaml:"throughput"`
}

type Kpi struct {
	RunId         string                   `json:"run_id" yaml:"run_id"`
	FileTime      string                   `json:"created" yaml:"created"`
	Status        string                   `json:"status" yaml:"status"`
	NumNodes      int                      `json:"nodes" yaml:"nodes"`
	NumChannels   int                      `json:"num_channels" yaml:"num_channels"`
	Time          KpiTime                  `json:"time" yaml:"time"`
	Sent          uint64                   `json:"sent" yaml:"sent"`
	Received      uint64                   `json:"received" yaml:"received"`
	ZeroSendTicks int                      `json:"zero_send_ticks" yaml:"zero_send_ticks"`
	Throughput    float64                  `json:"throughput" yaml:"throughput"`
	Channels      map[ChannelId]KpiChannel `json:"channels" yaml:"channels"`
}
