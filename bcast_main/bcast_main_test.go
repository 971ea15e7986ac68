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

package bcast_main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openthread/ot-bcast/prng"
	"github.com/openthread/ot-bcast/progctx"
)

func TestParseArgs(t *testing.T) {
	args, _, err := parseArgs("test", []string{}, io.Discard)
	assert.Nil(t, err)
	assert.Equal(t, 20, args.NumNodes)
	assert.Equal(t, 10, args.NumChannels)
	assert.Equal(t, 30.0, args.Fps)
	assert.Equal(t, prng.KindMath, args.Random)
	assert.False(t, args.Interactive)

	args, _, err = parseArgs("test", []string{"-n", "60", "-k", "32", "-fps", "15", "-rng", "stream", "-realtime"}, io.Discard)
	assert.Nil(t, err)
	assert.Equal(t, 60, args.NumNodes)
	assert.Equal(t, 32, args.NumChannels)
	assert.Equal(t, 15.0, args.Fps)
	assert.Equal(t, prng.KindStream, args.Random)
	assert.True(t, args.RealTime)

	_, _, err = parseArgs("test", []string{"-nodes", "3"}, io.Discard)
	assert.NotNil(t, err)
	_, _, err = parseArgs("test", []string{"extra"}, io.Discard)
	assert.NotNil(t, err)
}

func TestBuildConfig(t *testing.T) {
	args, fs, err := parseArgs("test", []string{"-n", "7", "-time", "3"}, io.Discard)
	assert.Nil(t, err)
	cfg, err := buildConfig(args, fs)
	assert.Nil(t, err)
	assert.Equal(t, 7, cfg.NumNodes)
	assert.Equal(t, 3.0, cfg.TotalTime)
	assert.Equal(t, 10, cfg.NumChannels)

	args, fs, err = parseArgs("test", []string{"-n", "0"}, io.Discard)
	assert.Nil(t, err)
	_, err = buildConfig(args, fs)
	assert.NotNil(t, err)
}

func TestBuildConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "sim.yaml")
	assert.Nil(t, os.WriteFile(fn, []byte("nodes: 60\nchannels: 32\nfps: 15\n"), 0644))

	args, fs, err := parseArgs("test", []string{"-config", fn, "-k", "4"}, io.Discard)
	assert.Nil(t, err)
	cfg, err := buildConfig(args, fs)
	assert.Nil(t, err)
	assert.Equal(t, 60, cfg.NumNodes)   // from file
	assert.Equal(t, 4, cfg.NumChannels) // flag overrides file
	assert.Equal(t, 15.0, cfg.Fps)      // from file, flag default ignored

	args, fs, err = parseArgs("test", []string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, io.Discard)
	assert.Nil(t, err)
	_, err = buildConfig(args, fs)
	assert.NotNil(t, err)
}

func TestMainRun(t *testing.T) {
	kpiFile := filepath.Join(t.TempDir(), "kpi.json")
	statsFile := filepath.Join(t.TempDir(), "stats.csv")
	out := &bytes.Buffer{}
	ctx := progctx.New(context.Background())
	err := Main(ctx, []string{"-n", "2", "-time", "2", "-seed", "9", "-log", "error",
		"-kpi", kpiFile, "-stats-log", statsFile}, out, nil)
	assert.Nil(t, err)
	assert.Equal(t, "throughput: 100.0%\n", out.String())

	_, err = os.Stat(kpiFile)
	assert.Nil(t, err)
	stats, err := os.ReadFile(statsFile)
	assert.Nil(t, err)
	assert.Equal(t, 1+60, strings.Count(string(stats), "\n"))
}

func TestMainSimplify(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := progctx.New(context.Background())
	err := Main(ctx, []string{"-n", "3", "-k", "2", "-time", "0.1", "-simplify", "1", "-log", "error"}, out, nil)
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "tick 1 "))
	assert.True(t, strings.Contains(out.String(), "tick 3 "))
	assert.True(t, strings.HasSuffix(out.String(), "%\n"))
}

func TestMainInvalid(t *testing.T) {
	out := &bytes.Buffer{}
	assert.NotNil(t, Main(progctx.New(context.Background()), []string{"-fps", "0"}, out, nil))
	assert.NotNil(t, Main(progctx.New(context.Background()), []string{"-log", "verbose"}, out, nil))
	assert.Equal(t, "", out.String())
}
