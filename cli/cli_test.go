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

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openthread/ot-bcast/logger"
	"github.com/openthread/ot-bcast/progctx"
	"github.com/openthread/ot-bcast/simulation"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	assert.NotNil(t, parseBytes([]byte("wrongcmd"), &cmd))

	cmd = Command{}
	assert.True(t, parseBytes([]byte("step"), &cmd) == nil && cmd.Step != nil && cmd.Step.Count == nil)
	cmd = Command{}
	assert.True(t, parseBytes([]byte("step 10"), &cmd) == nil && cmd.Step != nil && *cmd.Step.Count == 10)

	cmd = Command{}
	assert.True(t, parseBytes([]byte("go 1"), &cmd) == nil && cmd.Go != nil && cmd.Go.Time == "1")
	cmd = Command{}
	assert.True(t, parseBytes([]byte("go 2.5"), &cmd) == nil && cmd.Go != nil && cmd.Go.Time == "2.5")
	cmd = Command{}
	assert.True(t, parseBytes([]byte("go 500ms"), &cmd) == nil && cmd.Go != nil && cmd.Go.Time == "500ms")
	cmd = Command{}
	assert.True(t, parseBytes([]byte("go end"), &cmd) == nil && cmd.Go != nil && cmd.Go.End != nil)
	assert.NotNil(t, parseBytes([]byte("go"), &Command{}))

	cmd = Command{}
	assert.True(t, parseBytes([]byte("stats"), &cmd) == nil && cmd.Stats != nil)
	cmd = Command{}
	assert.True(t, parseBytes([]byte("nodes"), &cmd) == nil && cmd.Nodes != nil)
	cmd = Command{}
	assert.True(t, parseBytes([]byte("tick"), &cmd) == nil && cmd.Tick != nil && cmd.Tick.Full == nil)
	cmd = Command{}
	assert.True(t, parseBytes([]byte("tick full"), &cmd) == nil && cmd.Tick != nil && cmd.Tick.Full != nil)
	cmd = Command{}
	assert.True(t, parseBytes([]byte("save \"kpi.json\""), &cmd) == nil && cmd.Save != nil)
	assert.NotNil(t, parseBytes([]byte("save"), &Command{}))

	cmd = Command{}
	assert.True(t, parseBytes([]byte("log"), &cmd) == nil && cmd.LogLevel != nil && cmd.LogLevel.Level == "")
	cmd = Command{}
	assert.True(t, parseBytes([]byte("log debug"), &cmd) == nil && cmd.LogLevel.Level == "debug")
	assert.NotNil(t, parseBytes([]byte("log verbose"), &Command{}))

	cmd = Command{}
	assert.True(t, parseBytes([]byte("help"), &cmd) == nil && cmd.Help != nil && cmd.Help.HelpTopic == "")
	cmd = Command{}
	assert.True(t, parseBytes([]byte("help step"), &cmd) == nil && cmd.Help.HelpTopic == "step")
	cmd = Command{}
	assert.True(t, parseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)
}

func newTestRunner(t *testing.T) (*CmdRunner, *progctx.ProgCtx) {
	cfg := simulation.DefaultConfig()
	cfg.NumNodes = 4
	cfg.NumChannels = 2
	cfg.TotalTime = 2
	sim, err := simulation.NewSimulation(cfg, nil)
	assert.Nil(t, err)
	ctx := progctx.New(context.Background())
	return NewCmdRunner(ctx, sim), ctx
}

func runCommand(t *testing.T, rt *CmdRunner, cmdline string) string {
	out := &bytes.Buffer{}
	assert.Nil(t, rt.HandleCommand(cmdline, out))
	return out.String()
}

func TestCmdRunnerStepAndGo(t *testing.T) {
	rt, _ := newTestRunner(t)
	assert.Equal(t, Prompt, rt.GetPrompt())

	assert.Equal(t, "Done\n", runCommand(t, rt, "step"))
	assert.Equal(t, 1, rt.sim.CurTick())
	assert.Equal(t, "Done\n", runCommand(t, rt, "step 9"))
	assert.Equal(t, 10, rt.sim.CurTick())
	assert.Equal(t, "Done\n", runCommand(t, rt, "go 1"))
	assert.Equal(t, 40, rt.sim.CurTick())
	assert.Equal(t, "Done\n", runCommand(t, rt, "go 100ms"))
	assert.Equal(t, 43, rt.sim.CurTick())
	assert.Equal(t, "Done\n", runCommand(t, rt, "go end"))
	assert.Equal(t, 60, rt.sim.CurTick())

	out := runCommand(t, rt, "stats")
	assert.True(t, strings.Contains(out, "tick 60 of 60"))
	assert.True(t, strings.Contains(out, "throughput: "))
	assert.True(t, strings.HasSuffix(out, "Done\n"))
}

func TestCmdRunnerErrors(t *testing.T) {
	rt, _ := newTestRunner(t)
	assert.True(t, strings.HasPrefix(runCommand(t, rt, "wrongcmd"), "Error: "))
	assert.True(t, strings.HasPrefix(runCommand(t, rt, "tick"), "Error: no tick executed yet"))
	assert.True(t, strings.HasPrefix(runCommand(t, rt, "go 1x"), "Error: "))
	assert.True(t, strings.HasPrefix(runCommand(t, rt, "save \"\""), "Error: "))
	assert.Equal(t, 0, rt.sim.CurTick())
}

func TestCmdRunnerNodesAndTick(t *testing.T) {
	rt, _ := newTestRunner(t)
	out := runCommand(t, rt, "nodes")
	assert.Equal(t, 4+1, strings.Count(out, "\n"))
	assert.True(t, strings.HasPrefix(out, "- {id: 0, x: "))

	runCommand(t, rt, "step")
	out = runCommand(t, rt, "tick")
	assert.True(t, strings.HasPrefix(out, "tick 1 "))
	assert.True(t, strings.Contains(out, "M = "))
	assert.False(t, strings.Contains(out, "D = "))

	out = runCommand(t, rt, "tick full")
	assert.True(t, strings.Contains(out, "D = "))
	assert.True(t, strings.Contains(out, "A[3] = "))
}

func TestCmdRunnerSave(t *testing.T) {
	rt, _ := newTestRunner(t)
	runCommand(t, rt, "step 5")
	fn := filepath.Join(t.TempDir(), "kpi.yaml")
	assert.Equal(t, "Done\n", runCommand(t, rt, "save \""+fn+"\""))
	data, err := os.ReadFile(fn)
	assert.Nil(t, err)
	assert.True(t, strings.Contains(string(data), "run_id: "+rt.sim.Kpi().RunId()))
}

func TestCmdRunnerLogLevel(t *testing.T) {
	defer logger.SetLevel(logger.GetLevel())
	rt, _ := newTestRunner(t)
	assert.Equal(t, "Done\n", runCommand(t, rt, "log warn"))
	assert.Equal(t, logger.WarnLevel, logger.GetLevel())
	assert.Equal(t, "warn\nDone\n", runCommand(t, rt, "log"))
}

func TestCmdRunnerHelp(t *testing.T) {
	rt, _ := newTestRunner(t)
	out := runCommand(t, rt, "help")
	for _, c := range []string{"exit", "go", "help", "log", "nodes", "save", "stats", "step", "tick"} {
		assert.True(t, strings.Contains(out, c), c)
	}
	out = runCommand(t, rt, "help step")
	assert.True(t, strings.HasPrefix(out, "step\n"))
	assert.True(t, strings.Contains(out, "Simulate one tick"))
	assert.True(t, strings.Contains(runCommand(t, rt, "help foo"), "(Non-existent command.)"))
}

func TestCmdRunnerExit(t *testing.T) {
	rt, ctx := newTestRunner(t)
	out := &bytes.Buffer{}
	assert.NotNil(t, rt.HandleCommand("exit", out))
	assert.Equal(t, "Done\n", out.String())
	assert.NotNil(t, ctx.Err())

	// commands are ignored after exit
	out.Reset()
	assert.NotNil(t, rt.HandleCommand("step", out))
	assert.Equal(t, "", out.String())
	assert.Equal(t, 0, rt.sim.CurTick())
}
