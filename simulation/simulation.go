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
	"time"

	"github.com/pkg/errors"

	"github.com/openthread/ot-bcast/logger"
	"github.com/openthread/ot-bcast/mobility"
	"github.com/openthread/ot-bcast/prng"
	"github.com/openthread/ot-bcast/radiomodel"
	. "github.com/openthread/ot-bcast/types"
	"github.com/openthread/ot-bcast/visualize"
)

// Simulation drives the swarm and the radio model tick by tick and feeds the outcomes to the KPI manager and
// the visualizer.
type Simulation struct {
	cfg     *Config
	swarm   *mobility.Swarm
	model   radiomodel.RadioModel
	kpi     *KpiManager
	vis     visualize.Visualizer
	tick    int
	last    *radiomodel.Outcome
	stopped bool
}

// NewSimulation creates a simulation from a validated copy of cfg. The random streams are derived from the
// current prng root seed; see prng.Init.
func NewSimulation(cfg *Config, vis visualize.Visualizer) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if vis == nil {
		vis = visualize.NewNopVisualizer()
	}
	cfgCopy := *cfg

	mobSrc, radioSrc, ok := prng.NewSources(cfg.Random)
	logger.AssertTrue(ok)

	swarmCfg := mobility.DefaultSwarmConfig(mobSrc, cfg.NumNodes)
	swarmCfg.HistLength = cfg.HistLength
	swarm, err := mobility.NewSwarm(swarmCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "create swarm")
	}

	params := radiomodel.DefaultCaptureModelParams()
	params.NumChannels = cfg.NumChannels
	model, err := radiomodel.NewCaptureModel(params, radioSrc)
	if err != nil {
		return nil, errors.Wrapf(err, "create radio model")
	}

	s := &Simulation{
		cfg:   &cfgCopy,
		swarm: swarm,
		model: model,
		kpi:   NewKpiManager(cfg.NumNodes, cfg.NumChannels, cfg.Dt()),
		vis:   vis,
	}

	vis.Init()
	for id, pos := range swarm.Positions() {
		vis.AddNode(id, pos)
	}
	logger.Infof("simulation created: %d nodes, %d channels, dt=%.4fs, %d ticks, radio model %s",
		cfg.NumNodes, cfg.NumChannels, cfg.Dt(), cfg.NumTicks(), model.GetName())
	return s, nil
}

// Step advances the simulation by one tick: the swarm moves first and the messages are then evaluated at the
// new positions.
func (s *Simulation) Step() (*radiomodel.Outcome, error) {
	if s.stopped {
		return nil, errors.New("simulation is stopped")
	}
	dt := s.cfg.Dt()
	if err := s.swarm.Update(dt); err != nil {
		return nil, err
	}
	pos := s.swarm.Positions()
	outcome, err := s.model.Tick(pos, dt)
	if err != nil {
		return nil, err
	}
	s.tick++
	s.last = outcome
	s.kpi.OnTick(outcome)

	for id, p := range pos {
		s.vis.SetNodePos(id, p)
	}
	s.vis.OnTick(&visualize.TickInfo{
		Tick:          s.tick,
		TimeSec:       s.CurTime(),
		Outcome:       outcome,
		TotalSent:     s.kpi.Sent(),
		TotalReceived: s.kpi.Received(),
	})
	return outcome, nil
}

// StepN executes n ticks, or fewer if ctx is cancelled. When RealTime is configured the ticks are paced at
// wall-clock speed.
func (s *Simulation) StepN(ctx context.Context, n int) error {
	var ticker *time.Ticker
	if s.cfg.RealTime && n > 0 {
		ticker = time.NewTicker(time.Duration(s.cfg.Dt() * float64(time.Second)))
		defer ticker.Stop()
	}

	for i := 0; i < n; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunFor simulates the given number of seconds from the current time.
func (s *Simulation) RunFor(ctx context.Context, seconds float64) error {
	if !(seconds >= 0) {
		return errors.Errorf("invalid duration: %v", seconds)
	}
	return s.StepN(ctx, int(seconds*s.cfg.Fps+0.5))
}

// Run executes the remaining ticks of the configured total time.
func (s *Simulation) Run(ctx context.Context) error {
	remaining := s.cfg.NumTicks() - s.tick
	if remaining <= 0 {
		return nil
	}
	err := s.StepN(ctx, remaining)
	logger.Infof("simulation ran %d ticks (%.3fs), throughput %.4f", s.tick, s.CurTime(), s.Throughput())
	return err
}

// Stop ends the simulation, writes the KPI file if one is configured and stops the visualizer.
func (s *Simulation) Stop() error {
	if s.stopped {
		return nil
	}
	s.stopped = true
	s.kpi.Stop()
	var err error
	if s.cfg.KpiFile != "" {
		err = s.kpi.SaveFile(s.cfg.KpiFile)
	}
	s.vis.Stop()
	return err
}

func (s *Simulation) IsStopped() bool {
	return s.stopped
}

// IsDone returns true once the configured total time was simulated.
func (s *Simulation) IsDone() bool {
	return s.tick >= s.cfg.NumTicks()
}

func (s *Simulation) Config() *Config {
	return s.cfg
}

func (s *Simulation) Kpi() *KpiManager {
	return s.kpi
}

func (s *Simulation) CurTick() int {
	return s.tick
}

// CurTime returns the simulated time in seconds.
func (s *Simulation) CurTime() float64 {
	return float64(s.tick) * s.cfg.Dt()
}

func (s *Simulation) Throughput() float64 {
	return s.kpi.Throughput()
}

func (s *Simulation) Positions() []Position {
	return s.swarm.Positions()
}

func (s *Simulation) Swarm() *mobility.Swarm {
	return s.swarm
}

// LastOutcome returns the outcome of the last tick, or nil before the first tick.
func (s *Simulation) LastOutcome() *radiomodel.Outcome {
	return s.last
}
