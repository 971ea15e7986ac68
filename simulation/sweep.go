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
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/openthread/ot-bcast/logger"
)

type SweepParam string

const (
	SweepNodes    SweepParam = "nodes"
	SweepFps      SweepParam = "fps"
	SweepChannels SweepParam = "channels"
)

// SweepResult is the throughput of one run of a parameter sweep.
type SweepResult struct {
	Value      float64
	Dt         float64
	Sent       uint64
	Received   uint64
	Throughput float64
}

func ParseSweepParam(s string) (SweepParam, error) {
	switch p := SweepParam(strings.ToLower(s)); p {
	case SweepNodes, SweepFps, SweepChannels:
		return p, nil
	default:
		return "", errors.Errorf("unknown sweep parameter: %q", s)
	}
}

// DefaultSweepConfig returns the base configuration used when sweeping param.
func DefaultSweepConfig(param SweepParam) *Config {
	cfg := DefaultConfig()
	switch param {
	case SweepNodes:
		cfg.NumChannels = 32
		cfg.Fps = 30
	case SweepFps:
		cfg.NumNodes = 60
		cfg.NumChannels = 10
	case SweepChannels:
		cfg.NumNodes = 60
	}
	cfg.TotalTime = 20
	return cfg
}

// RunSweep runs one full simulation per value of param, in ascending order of the values, and returns the
// cumulative throughput of each run.
func RunSweep(ctx context.Context, base *Config, param SweepParam, values []float64) ([]SweepResult, error) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	results := make([]SweepResult, 0, len(sorted))
	for _, v := range sorted {
		cfg := *base
		cfg.KpiFile = ""
		cfg.StatsLogFile = ""
		cfg.RealTime = false
		if err := applySweepValue(&cfg, param, v); err != nil {
			return results, err
		}

		sim, err := NewSimulation(&cfg, nil)
		if err != nil {
			return results, errors.Wrapf(err, "sweep %s=%v", param, v)
		}
		err = sim.Run(ctx)
		_ = sim.Stop()
		if err != nil {
			return results, err
		}

		res := SweepResult{
			Value:      v,
			Dt:         cfg.Dt(),
			Sent:       sim.Kpi().Sent(),
			Received:   sim.Kpi().Received(),
			Throughput: sim.Throughput(),
		}
		logger.Infof("sweep %s=%v: throughput %.4f", param, v, res.Throughput)
		results = append(results, res)
	}
	return results, nil
}

func applySweepValue(cfg *Config, param SweepParam, v float64) error {
	switch param {
	case SweepNodes, SweepChannels:
		if v != math.Trunc(v) {
			return errors.Errorf("sweep %s: value %v is not an integer", param, v)
		}
		if param == SweepNodes {
			cfg.NumNodes = int(v)
		} else {
			cfg.NumChannels = int(v)
		}
	case SweepFps:
		cfg.Fps = v
	default:
		return errors.Errorf("unknown sweep parameter: %q", param)
	}
	return nil
}

// FormatSweepTable renders sweep results as a markdown table, throughput in percent.
func FormatSweepTable(base *Config, param SweepParam, results []SweepResult) string {
	sb := &strings.Builder{}
	switch param {
	case SweepNodes:
		_, _ = fmt.Fprintf(sb, "Broadcast throughput ratio for variable N nodes communicating over %d channels at %v fps:\n\n",
			base.NumChannels, base.Fps)
		sb.WriteString("| N | throughput |\n| - | ---------- |\n")
		for _, r := range results {
			_, _ = fmt.Fprintf(sb, "| %d | %.1f%% |\n", int(r.Value), 100*r.Throughput)
		}
	case SweepChannels:
		_, _ = fmt.Fprintf(sb, "Broadcast throughput ratio for %d nodes communicating over variable K channels at %v fps:\n\n",
			base.NumNodes, base.Fps)
		sb.WriteString("| K | throughput |\n| - | ---------- |\n")
		for _, r := range results {
			_, _ = fmt.Fprintf(sb, "| %d | %.1f%% |\n", int(r.Value), 100*r.Throughput)
		}
	default:
		_, _ = fmt.Fprintf(sb, "Broadcast throughput ratio for %d nodes communicating over %d channels over %v seconds,\n"+
			"for different values of FPS.\n\n", base.NumNodes, base.NumChannels, base.TotalTime)
		sb.WriteString("| FPS | dt | throughput |\n| --- | -- | ---------- |\n")
		for _, r := range results {
			_, _ = fmt.Fprintf(sb, "| %v | %.3f | %.1f%% |\n", r.Value, r.Dt, 100*r.Throughput)
		}
	}
	return sb.String()
}
