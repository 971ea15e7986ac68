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

// Package mobility implements the motion of the swarm nodes in the 2D plane.
package mobility

import (
	"math"

	"github.com/pkg/errors"

	"github.com/openthread/ot-bcast/prng"
	. "github.com/openthread/ot-bcast/types"
)

// SwarmConfig holds the placement and motion strategies of a swarm.
type SwarmConfig struct {
	NumNodes   int
	HistLength int

	// Radius and Angle place new nodes in polar coordinates.
	Radius Sampler
	Angle  Sampler

	// RadialVelocity and AngularVelocity define the motion, as functions of the radius.
	RadialVelocity  VelocityFunc
	AngularVelocity VelocityFunc

	// Noise, if not nil, is added to the radial velocity at each update.
	Noise Sampler

	// MinRadius is the smallest radius at which AngularVelocity is evaluated, to stay clear of r = 0.
	MinRadius float64
}

// DefaultSwarmConfig returns the default swarm strategies, drawing randomness from src.
func DefaultSwarmConfig(src prng.Source, numNodes int) *SwarmConfig {
	return &SwarmConfig{
		NumNodes:        numNodes,
		HistLength:      DefaultHistLength,
		Radius:          NormalSampler(src, defaultRadiusMean, defaultRadiusSigma),
		Angle:           UniformSampler(src, 0, 2*math.Pi),
		RadialVelocity:  DefaultRadialVelocity,
		AngularVelocity: DefaultAngularVelocity,
		Noise:           NormalSampler(src, 0, defaultNoiseSigma),
		MinRadius:       DefaultMinRadius,
	}
}

// Swarm is an ordered, fixed-size collection of nodes: node i is always the same node.
type Swarm struct {
	cfg   SwarmConfig
	nodes []*Node
}

// NewSwarm creates the swarm and places its nodes.
func NewSwarm(cfg *SwarmConfig) (*Swarm, error) {
	if cfg.NumNodes < 0 {
		return nil, errors.Errorf("invalid number of nodes: %d", cfg.NumNodes)
	}
	if cfg.Radius == nil || cfg.Angle == nil {
		return nil, errors.Errorf("radius and angle samplers are required")
	}
	if cfg.RadialVelocity == nil || cfg.AngularVelocity == nil {
		return nil, errors.Errorf("radial and angular velocity functions are required")
	}
	if cfg.MinRadius <= 0 {
		return nil, errors.Errorf("invalid minimum radius: %v", cfg.MinRadius)
	}

	s := &Swarm{
		cfg:   *cfg,
		nodes: make([]*Node, cfg.NumNodes),
	}
	for i := range s.nodes {
		x, y := PolarToXY(cfg.Radius(), cfg.Angle())
		s.nodes[i] = NewNode(Position{X: x, Y: y}, cfg.HistLength)
	}
	return s, nil
}

func (s *Swarm) Len() int {
	return len(s.nodes)
}

func (s *Swarm) Node(id NodeId) *Node {
	return s.nodes[id]
}

// Positions returns a snapshot of the current node positions, indexed by node id.
func (s *Swarm) Positions() []Position {
	pos := make([]Position, len(s.nodes))
	for i, n := range s.nodes {
		pos[i] = n.Pos()
	}
	return pos
}

// Update advances all nodes by one explicit Euler step of dt seconds.
func (s *Swarm) Update(dt float64) error {
	if dt < 0 || math.IsNaN(dt) {
		return errors.Errorf("invalid timestep: %v", dt)
	}
	for _, n := range s.nodes {
		n.Update(s.step(n.Pos(), dt))
	}
	return nil
}

func (s *Swarm) step(pos Position, dt float64) Position {
	r, theta := XYToPolar(pos.X, pos.Y)

	dr := s.cfg.RadialVelocity(r)
	if s.cfg.Noise != nil {
		dr += s.cfg.Noise()
	}
	dtheta := s.cfg.AngularVelocity(math.Max(r, s.cfg.MinRadius))

	x, y := PolarToXY(r+dr*dt, theta+dtheta*dt)
	return Position{X: x, Y: y}
}
