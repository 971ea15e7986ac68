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

// Package visualize defines the collaborator interface through which the simulation reports node movement and
// tick outcomes, for display or logging.
package visualize

import (
	"github.com/openthread/ot-bcast/radiomodel"
	. "github.com/openthread/ot-bcast/types"
)

type Visualizer interface {
	Init()
	Stop()

	AddNode(nodeid NodeId, pos Position)
	SetNodePos(nodeid NodeId, pos Position)
	OnTick(info *TickInfo)
}

// TickInfo describes a finished tick. Outcome is owned by the simulation and must not be modified.
type TickInfo struct {
	Tick          int
	TimeSec       float64
	Outcome       *radiomodel.Outcome
	TotalSent     uint64
	TotalReceived uint64
}

// Simplify levels select how much per-tick diagnostic output a visualizer produces. They never affect the
// simulation itself.
const (
	SimplifyNone    = 0 // all matrices: M, D, Ar and A per receiver
	SimplifySome    = 1 // M, Ar and the successful receptions
	SimplifyAll     = 2 // no per-tick diagnostics
	DefaultSimplify = SimplifyAll
)
