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

// Package prng provides the random sources of the simulator. All sources are derived from a single root seed,
// so that a run can be reproduced exactly.
package prng

import (
	"math"
	"math/rand"
	"time"

	"github.com/iti/rngstream"
)

// Source is the randomness needed by the mobility and radio models. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a uniform random number in [0, 1).
	Float64() float64
	// NormFloat64 returns a standard normal random number.
	NormFloat64() float64
}

const (
	KindMath   = "math"
	KindStream = "stream"
)

var (
	rootRand                *rand.Rand
	mobilitySeedGenerator   *rand.Rand
	radioModelSeedGenerator *rand.Rand
)

func init() {
	Init(0)
}

// Init initializes the prng package, either with a fixed PRNG seed (rootSeed != 0) or a time-based seed
// (rootSeed == 0). It returns the root seed in use.
func Init(rootSeed int64) int64 {
	if rootSeed == 0 {
		rootSeed = time.Now().UnixNano()
	}
	rootRand = rand.New(rand.NewSource(rootSeed))
	mobilitySeedGenerator = rand.New(rand.NewSource(rootSeed + rootRand.Int63n(1e10)))
	radioModelSeedGenerator = rand.New(rand.NewSource(rootSeed + rootRand.Int63n(1e10)))
	return rootSeed
}

// NewMobilityRandom creates a new random source for a mobility model (node placement, noise).
func NewMobilityRandom() *rand.Rand {
	return rand.New(rand.NewSource(mobilitySeedGenerator.Int63()))
}

// NewRadioModelRandom creates a new random source for a radio model (message emission).
func NewRadioModelRandom() *rand.Rand {
	return rand.New(rand.NewSource(radioModelSeedGenerator.Int63()))
}

// StreamSource adapts an L'Ecuyer MRG32k3a stream to Source. Streams are created in sequence from the
// rngstream package seed, so the n-th created stream always produces the same numbers.
type StreamSource struct {
	stream   *rngstream.RngStream
	spare    float64
	hasSpare bool
}

// NewStreamSource creates the next named stream.
func NewStreamSource(name string) *StreamSource {
	return &StreamSource{
		stream: rngstream.New(name),
	}
}

func (ss *StreamSource) Float64() float64 {
	return ss.stream.RandU01()
}

// NormFloat64 uses the Box-Muller transform, caching the second deviate of each pair.
func (ss *StreamSource) NormFloat64() float64 {
	if ss.hasSpare {
		ss.hasSpare = false
		return ss.spare
	}
	u1 := ss.stream.RandU01()
	for u1 <= 0 {
		u1 = ss.stream.RandU01()
	}
	u2 := ss.stream.RandU01()
	mag := math.Sqrt(-2.0 * math.Log(u1))
	ss.spare = mag * math.Sin(2*math.Pi*u2)
	ss.hasSpare = true
	return mag * math.Cos(2*math.Pi*u2)
}

// NewSources returns the (mobility, radio model) pair of sources of the given kind.
func NewSources(kind string) (Source, Source, bool) {
	switch kind {
	case KindMath, "":
		return NewMobilityRandom(), NewRadioModelRandom(), true
	case KindStream:
		return NewStreamSource("mobility"), NewStreamSource("radiomodel"), true
	default:
		return nil, nil, false
	}
}
