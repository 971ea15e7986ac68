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

// Package bcast_main implements the command line entry of the broadcast simulator.
package bcast_main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/openthread/ot-bcast/cli"
	"github.com/openthread/ot-bcast/logger"
	"github.com/openthread/ot-bcast/prng"
	"github.com/openthread/ot-bcast/progctx"
	"github.com/openthread/ot-bcast/simulation"
	"github.com/openthread/ot-bcast/visualize"
	visualizeMulti "github.com/openthread/ot-bcast/visualize/multi"
	visualizeStatslog "github.com/openthread/ot-bcast/visualize/statslog"
	visualizeText "github.com/openthread/ot-bcast/visualize/text"
)

type MainArgs struct {
	NumNodes     int
	NumChannels  int
	Fps          float64
	TotalTime    float64
	Simplify     int
	Seed         int64
	Random       string
	HistLength   int
	ConfigFile   string
	LogLevel     string
	KpiFile      string
	StatsLogFile string
	RealTime     bool
	Interactive  bool
}

// maps flag names to the config fields they override after a config file was loaded.
var configFlags = map[string]func(cfg *simulation.Config, args *MainArgs){
	"n":         func(cfg *simulation.Config, args *MainArgs) { cfg.NumNodes = args.NumNodes },
	"k":         func(cfg *simulation.Config, args *MainArgs) { cfg.NumChannels = args.NumChannels },
	"fps":       func(cfg *simulation.Config, args *MainArgs) { cfg.Fps = args.Fps },
	"time":      func(cfg *simulation.Config, args *MainArgs) { cfg.TotalTime = args.TotalTime },
	"simplify":  func(cfg *simulation.Config, args *MainArgs) { cfg.Simplify = args.Simplify },
	"seed":      func(cfg *simulation.Config, args *MainArgs) { cfg.Seed = args.Seed },
	"rng":       func(cfg *simulation.Config, args *MainArgs) { cfg.Random = args.Random },
	"hist":      func(cfg *simulation.Config, args *MainArgs) { cfg.HistLength = args.HistLength },
	"kpi":       func(cfg *simulation.Config, args *MainArgs) { cfg.KpiFile = args.KpiFile },
	"stats-log": func(cfg *simulation.Config, args *MainArgs) { cfg.StatsLogFile = args.StatsLogFile },
	"realtime":  func(cfg *simulation.Config, args *MainArgs) { cfg.RealTime = args.RealTime },
}

func parseArgs(name string, argv []string, output io.Writer) (*MainArgs, *flag.FlagSet, error) {
	def := simulation.DefaultConfig()
	args := &MainArgs{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&args.NumNodes, "n", def.NumNodes, "number of nodes")
	fs.IntVar(&args.NumChannels, "k", def.NumChannels, "number of broadcast channels")
	fs.Float64Var(&args.Fps, "fps", def.Fps, "ticks per simulated second (dt = 1/fps)")
	fs.Float64Var(&args.TotalTime, "time", def.TotalTime, "simulated time in seconds")
	fs.IntVar(&args.Simplify, "simplify", def.Simplify, "diagnostic output per tick: 0 all matrices, 1 summary, 2 none")
	fs.Int64Var(&args.Seed, "seed", def.Seed, "random seed, 0 for a time-based seed")
	fs.StringVar(&args.Random, "rng", def.Random, "random source: math, stream")
	fs.IntVar(&args.HistLength, "hist", def.HistLength, "length of the position history per node")
	fs.StringVar(&args.ConfigFile, "config", "", "YAML or TOML config file; flags given explicitly override it")
	fs.StringVar(&args.LogLevel, "log", "warn", "set logging level: trace, debug, info, warn, error, off")
	fs.StringVar(&args.KpiFile, "kpi", def.KpiFile, "write KPIs to this file at exit (.json or .yaml)")
	fs.StringVar(&args.StatsLogFile, "stats-log", def.StatsLogFile, "write one CSV line of stats per tick to this file")
	fs.BoolVar(&args.RealTime, "realtime", def.RealTime, "pace the ticks at wall-clock speed")
	fs.BoolVar(&args.Interactive, "interactive", false, "run the interactive console")

	if err := fs.Parse(argv); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	return args, fs, nil
}

// buildConfig combines the defaults, the optional config file and the explicitly given flags, in that order.
func buildConfig(args *MainArgs, fs *flag.FlagSet) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if args.ConfigFile != "" {
		if err := simulation.LoadConfigFile(args.ConfigFile, cfg); err != nil {
			return nil, err
		}
		fs.Visit(func(f *flag.Flag) {
			if set, ok := configFlags[f.Name]; ok {
				set(cfg, args)
			}
		})
	} else {
		fs.VisitAll(func(f *flag.Flag) {
			if set, ok := configFlags[f.Name]; ok {
				set(cfg, args)
			}
		})
	}
	return cfg, cfg.Validate()
}

func createVisualizer(cfg *simulation.Config, out io.Writer) visualize.Visualizer {
	vis := visualizeMulti.NewMultiVisualizer()
	if cfg.Simplify < visualize.SimplifyAll {
		vis.AddVisualizer(visualizeText.NewTextVisualizer(out, cfg.Simplify))
	}
	if cfg.StatsLogFile != "" {
		vis.AddVisualizer(visualizeStatslog.NewStatslogVisualizer(cfg.StatsLogFile))
	}
	return vis
}

// Main runs the simulator with the command line arguments argv. The throughput is printed to stdout.
func Main(ctx *progctx.ProgCtx, argv []string, stdout io.Writer, cliOptions *cli.CliOptions) error {
	args, fs, err := parseArgs("bcastsim", argv, os.Stderr)
	if err != nil {
		return err
	}
	level, err := logger.ParseLevelString(args.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	cfg, err := buildConfig(args, fs)
	if err != nil {
		return errors.Wrapf(err, "invalid configuration")
	}
	seed := prng.Init(cfg.Seed)
	logger.Infof("random seed: %d (%s)", seed, cfg.Random)

	sim, err := simulation.NewSimulation(cfg, createVisualizer(cfg, stdout))
	if err != nil {
		return err
	}

	handleSignals(ctx)
	if args.Interactive {
		if cliOptions == nil {
			cliOptions = cli.DefaultCliOptions()
		}
		ctx.Defer(func() {
			_ = cliOptions.Stdin.Close()
		})
		err = cli.Run(ctx, sim, cliOptions)
	} else {
		err = sim.Run(ctx)
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			err = nil // interrupted by a signal, the partial result is reported
		}
	}
	ctx.Cancel(nil)

	if stopErr := sim.Stop(); err == nil {
		err = stopErr
	}
	_, _ = fmt.Fprintf(stdout, "throughput: %.1f%%\n", 100*sim.Throughput())

	logger.Debugf("waiting for bcastsim to stop gracefully ...")
	ctx.Wait()
	return err
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)

	ctx.WaitAdd("handleSignals", 1)
	go func() {
		defer logger.Debugf("handleSignals exit.")
		defer ctx.WaitDone("handleSignals")
		defer signal.Stop(c)

		for {
			select {
			case sig := <-c:
				logger.Infof("signal received: %v", sig)
				ctx.Cancel(nil)
			case <-ctx.Done():
				return
			}
		}
	}()
}
