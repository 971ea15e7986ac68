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
	"math"

	"github.com/pkg/errors"

	"github.com/openthread/ot-bcast/prng"
	"github.com/openthread/ot-bcast/visualize"
)

const (
	DefaultNumNodes    = 20
	DefaultNumChannels = 10
	DefaultFps         = 30
	DefaultTotalTime   = 20 // seconds
	DefaultHistLength  = 40
)

// Config is the configuration of a single simulation run. It can be loaded from a YAML or TOML file.
type Config struct {
	NumNodes     int     `yaml:"nodes" toml:"nodes"`
	NumChannels  int     `yaml:"channels" toml:"channels"`
	Fps          float64 `yaml:"fps" toml:"fps"`   // ticks per simulated second, dt = 1/Fps
	TotalTime    float64 `yaml:"time" toml:"time"` // simulated duration in seconds
	Simplify     int     `yaml:"simplify" toml:"simplify"`
	Seed         int64   `yaml:"seed" toml:"seed"`     // 0 selects a time-based seed
	Random       string  `yaml:"random" toml:"random"` // "math" or "stream"
	HistLength   int     `yaml:"hist" toml:"hist"`
	RealTime     bool    `yaml:"realtime" toml:"realtime"` // pace ticks at wall-clock speed
	KpiFile      string  `yaml:"kpi-file" toml:"kpi-file"`
	StatsLogFile string  `yaml:"stats-log" toml:"stats-log"`
}

func DefaultConfig() *Config {
	return &Config{
		NumNodes:    DefaultNumNodes,
		NumChannels: DefaultNumChannels,
		Fps:         DefaultFps,
		TotalTime:   DefaultTotalTime,
		Simplify:    visualize.DefaultSimplify,
		Seed:        0,
		Random:      prng.KindMath,
		HistLength:  DefaultHistLength,
		RealTime:    false,
	}
}

// Dt returns the tick duration in seconds.
func (cfg *Config) Dt() float64 {
	return 1.0 / cfg.Fps
}

// NumTicks returns the number of ticks needed to simulate TotalTime.
func (cfg *Config) NumTicks() int {
	return int(math.Round(cfg.TotalTime * cfg.Fps))
}

// Validate checks the configuration before a simulation is started.
func (cfg *Config) Validate() error {
	if cfg.NumNodes <= 0 {
		return errors.Errorf("invalid number of nodes: %d", cfg.NumNodes)
	}
	if cfg.NumChannels <= 0 {
		return errors.Errorf("invalid number of channels: %d", cfg.NumChannels)
	}
	if !(cfg.Fps > 0) || math.IsInf(cfg.Fps, 0) {
		return errors.Errorf("invalid fps: %v (the timestep must be positive)", cfg.Fps)
	}
	if !(cfg.TotalTime >= 0) || math.IsInf(cfg.TotalTime, 0) {
		return errors.Errorf("invalid total time: %v", cfg.TotalTime)
	}
	if cfg.Simplify < visualize.SimplifyNone || cfg.Simplify > visualize.SimplifyAll {
		return errors.Errorf("invalid simplify level: %d", cfg.Simplify)
	}
	if cfg.Random != prng.KindMath && cfg.Random != prng.KindStream {
		return errors.Errorf("invalid random source: %q", cfg.Random)
	}
	if cfg.HistLength < 1 {
		return errors.Errorf("invalid history length: %d", cfg.HistLength)
	}
	return nil
}
