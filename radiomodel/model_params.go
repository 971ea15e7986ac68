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

package radiomodel

// default capture model parameters
const (
	DefaultNumChannels  = 10
	DefaultCaptureRatio = 0.5  // a sender must contribute strictly more than this share of the channel energy
	DefaultMinDistance  = 1e-3 // distances below this are treated as this, in distance units
)

// CaptureModelParams stores the parameters of the capture model.
type CaptureModelParams struct {
	NumChannels  int     // number of channels K
	CaptureRatio float64 // minimal signal share (exclusive) for a sender to capture the receiver's channel
	MinDistance  float64 // saturation distance for coincident or very close nodes
}

// DefaultCaptureModelParams gets a new set of parameters with default values.
func DefaultCaptureModelParams() *CaptureModelParams {
	return &CaptureModelParams{
		NumChannels:  DefaultNumChannels,
		CaptureRatio: DefaultCaptureRatio,
		MinDistance:  DefaultMinDistance,
	}
}

// MaxAttenuation is the largest value an attenuation matrix entry can take under these parameters.
func (p *CaptureModelParams) MaxAttenuation() float64 {
	return 1.0 / (p.MinDistance * p.MinDistance)
}
