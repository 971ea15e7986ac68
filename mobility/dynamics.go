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

package mobility

import (
	"math"

	"github.com/openthread/ot-bcast/prng"
)

// default mobility parameters
const (
	DefaultHistLength     = 40
	DefaultMinRadius      = 1e-3 // angular velocity is evaluated at no less than this radius
	defaultRadiusMean     = 200.0
	defaultRadiusSigma    = 30.0
	defaultEquilibrium    = 100.0
	defaultAngularGain    = 20000.0
	defaultNoiseSigma     = 0.1
	defaultLanePeriodRads = math.Pi / 3
)

// Sampler draws a single random value, e.g. the initial radius or angle of a node.
type Sampler func() float64

// VelocityFunc gives a velocity (radial in units/s or angular in rad/s) as a function of the radius.
type VelocityFunc func(r float64) float64

// NormalSampler returns a sampler of Normal(mean, sigma).
func NormalSampler(src prng.Source, mean, sigma float64) Sampler {
	return func() float64 {
		return mean + sigma*src.NormFloat64()
	}
}

// UniformSampler returns a sampler of Uniform[min, max).
func UniformSampler(src prng.Source, min, max float64) Sampler {
	return func() float64 {
		return min + (max-min)*src.Float64()
	}
}

// DefaultRadialVelocity pulls nodes towards r = 100, with a periodic term that creates several
// stable "lanes" around it.
func DefaultRadialVelocity(r float64) float64 {
	return (defaultEquilibrium-r)/defaultEquilibrium + math.Cos(r*defaultLanePeriodRads)
}

// DefaultAngularVelocity rotates nodes faster near the center (inverse-square in r).
func DefaultAngularVelocity(r float64) float64 {
	return defaultAngularGain / (r * r)
}
