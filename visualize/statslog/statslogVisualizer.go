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

package visualize_statslog

import (
	"fmt"
	"os"

	"github.com/openthread/ot-bcast/logger"
	. "github.com/openthread/ot-bcast/types"
	"github.com/openthread/ot-bcast/visualize"
)

type statslogVisualizer struct {
	logFile       *os.File
	logFileName   string
	isFileEnabled bool
	numNodes      int
}

// NewStatslogVisualizer creates a new Visualizer that writes one CSV line of broadcast stats per tick to a file.
func NewStatslogVisualizer(fileName string) visualize.Visualizer {
	return &statslogVisualizer{
		logFileName:   fileName,
		isFileEnabled: true,
	}
}

func (sv *statslogVisualizer) Init() {
	sv.createLogFile()
}

func (sv *statslogVisualizer) Stop() {
	sv.close()
	logger.Debugf("statslogVisualizer stopped and CSV log file closed.")
}

func (sv *statslogVisualizer) AddNode(NodeId, Position) {
	sv.numNodes++
}

func (sv *statslogVisualizer) SetNodePos(NodeId, Position) {
}

func (sv *statslogVisualizer) OnTick(info *visualize.TickInfo) {
	sv.writeLogEntry(info)
}

func (sv *statslogVisualizer) createLogFile() {
	logger.AssertNil(sv.logFile)

	var err error
	sv.logFile, err = os.OpenFile(sv.logFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0664)
	if err != nil {
		logger.Errorf("creating new stats log file %s failed: %+v", sv.logFileName, err)
		sv.isFileEnabled = false
		return
	}
	sv.writeLogFileHeader()
	logger.Debugf("Stats log file '%s' created.", sv.logFileName)
}

func (sv *statslogVisualizer) writeLogFileHeader() {
	// RFC 4180 CSV file: no leading or trailing spaces in header field names
	header := "tick,timeSec,nNodes,sent,received,tickRatio,totalSent,totalReceived,throughput"
	_ = sv.writeToLogFile(header)
}

func (sv *statslogVisualizer) writeLogEntry(info *visualize.TickInfo) {
	tickRatio, _ := info.Outcome.Ratio()
	throughput := 0.0
	if info.TotalSent > 0 {
		throughput = float64(info.TotalReceived) / float64(info.TotalSent)
	}
	entry := fmt.Sprintf("%d,%.6f,%d,%d,%d,%.6f,%d,%d,%.6f", info.Tick, info.TimeSec, sv.numNodes,
		info.Outcome.Sent, info.Outcome.Received, tickRatio, info.TotalSent, info.TotalReceived, throughput)
	_ = sv.writeToLogFile(entry)
}

func (sv *statslogVisualizer) writeToLogFile(line string) error {
	if !sv.isFileEnabled {
		return nil
	}
	_, err := sv.logFile.WriteString(line + "\n")
	if err != nil {
		sv.close()
		sv.isFileEnabled = false
		logger.Errorf("couldn't write to stats log file (%s), closing it", sv.logFileName)
	}
	return err
}

func (sv *statslogVisualizer) close() {
	if sv.logFile != nil {
		_ = sv.logFile.Close()
		sv.logFile = nil
		sv.isFileEnabled = false
	}
}
