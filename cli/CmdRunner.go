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
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/ot-bcast/logger"
	"github.com/openthread/ot-bcast/mobility"
	"github.com/openthread/ot-bcast/progctx"
	"github.com/openthread/ot-bcast/simulation"
	. "github.com/openthread/ot-bcast/types"
	"github.com/openthread/ot-bcast/visualize"
	visualizeText "github.com/openthread/ot-bcast/visualize/text"
)

const (
	Prompt = "> "
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(&itemsYaml)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

// CmdRunner executes console commands on a simulation.
type CmdRunner struct {
	sim  *simulation.Simulation
	ctx  *progctx.ProgCtx
	help Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, sim *simulation.Simulation) *CmdRunner {
	return &CmdRunner{
		ctx:  ctx,
		sim:  sim,
		help: newHelp(),
	}
}

// HandleCommand parses and executes one command line. It returns an error once the program context is done.
func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}
		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Context: rt.ctx,
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Exit != nil {
		rt.executeExit(cc, cmd.Exit)
	} else if cmd.Go != nil {
		rt.executeGo(cc, cmd.Go)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Nodes != nil {
		rt.executeLsNodes(cc, cmd.Nodes)
	} else if cmd.Save != nil {
		rt.executeSave(cc, cmd.Save)
	} else if cmd.Stats != nil {
		rt.executeStats(cc, cmd.Stats)
	} else if cmd.Step != nil {
		rt.executeStep(cc, cmd.Step)
	} else if cmd.Tick != nil {
		rt.executeTick(cc, cmd.Tick)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext, cmd *ExitCmd) {
	rt.ctx.Cancel("exit")
}

func (rt *CmdRunner) executeStep(cc *CommandContext, cmd *StepCmd) {
	n := 1
	if cmd.Count != nil {
		n = *cmd.Count
	}
	if n < 0 {
		cc.errorf("invalid step count: %d", n)
		return
	}
	cc.error(rt.sim.StepN(rt.ctx, n))
}

func (rt *CmdRunner) executeGo(cc *CommandContext, cmd *GoCmd) {
	if cmd.End != nil {
		cc.error(rt.sim.Run(rt.ctx))
		return
	}

	timeDurToGo, err := time.ParseDuration(cmd.Time)
	if err != nil {
		timeDurToGo, err = time.ParseDuration(cmd.Time + "s") // try parsing as seconds
		if err != nil {
			cc.errorf("could not parse time duration: %s", cmd.Time)
			return
		}
	}
	cc.error(rt.sim.RunFor(rt.ctx, timeDurToGo.Seconds()))
}

func (rt *CmdRunner) executeStats(cc *CommandContext, cmd *StatsCmd) {
	kpi := rt.sim.Kpi()
	cc.outputf("time     %.3fs (tick %d of %d)\n", rt.sim.CurTime(), rt.sim.CurTick(), rt.sim.Config().NumTicks())
	cc.outputf("sent     %d\n", kpi.Sent())
	cc.outputf("received %d\n", kpi.Received())
	cc.outputf("throughput: %.1f%%\n", 100*kpi.Throughput())
}

type nodeInfo struct {
	Id    NodeId  `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	R     float64 `yaml:"r"`
	Theta float64 `yaml:"theta"`
}

func (rt *CmdRunner) executeLsNodes(cc *CommandContext, cmd *NodesCmd) {
	positions := rt.sim.Positions()
	nodes := make([]nodeInfo, 0, len(positions))
	for id, pos := range positions {
		r, theta := mobility.XYToPolar(pos.X, pos.Y)
		nodes = append(nodes, nodeInfo{
			Id:    id,
			X:     round3(pos.X),
			Y:     round3(pos.Y),
			R:     round3(r),
			Theta: round3(theta),
		})
	}
	cc.outputItemsAsYaml(nodes)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func (rt *CmdRunner) executeTick(cc *CommandContext, cmd *TickCmd) {
	outcome := rt.sim.LastOutcome()
	if outcome == nil {
		cc.errorf("no tick executed yet")
		return
	}
	simplify := visualize.SimplifySome
	if cmd.Full != nil {
		simplify = visualize.SimplifyNone
	}
	vis := visualizeText.NewTextVisualizer(cc.output, simplify)
	vis.OnTick(&visualize.TickInfo{
		Tick:          rt.sim.CurTick(),
		TimeSec:       rt.sim.CurTime(),
		Outcome:       outcome,
		TotalSent:     rt.sim.Kpi().Sent(),
		TotalReceived: rt.sim.Kpi().Received(),
	})
}

func (rt *CmdRunner) executeSave(cc *CommandContext, cmd *SaveCmd) {
	fn := cmd.FileName
	if unquoted, err := strconv.Unquote(fn); err == nil {
		fn = unquoted
	}
	if len(strings.TrimSpace(fn)) == 0 {
		cc.errorf("empty file name")
		return
	}
	cc.error(rt.sim.Kpi().SaveFile(fn))
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(logger.GetLevel()))
		return
	}
	level, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	logger.SetLevel(level)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}
