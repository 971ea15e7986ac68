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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/openthread/ot-bcast/logger"
	"github.com/openthread/ot-bcast/prng"
	"github.com/openthread/ot-bcast/simulation"
)

var args struct {
	Param    string
	Values   string
	Time     float64
	Seed     int64
	Random   string
	LogLevel string
}

var defaultValues = map[simulation.SweepParam]string{
	simulation.SweepNodes:    "2,4,8,16,32,64,128",
	simulation.SweepFps:      "2,3,6,12,30,60,120",
	simulation.SweepChannels: "1,2,4,8,16,32",
}

func parseArgs() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [-param nodes|fps|channels] [-values 2,4,8]\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "  Measures the broadcast throughput while varying one parameter and prints a markdown table.\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&args.Param, "param", string(simulation.SweepNodes), "parameter to vary: nodes, fps, channels")
	flag.StringVar(&args.Values, "values", "", "comma separated parameter values (default depends on -param)")
	flag.Float64Var(&args.Time, "time", simulation.DefaultTotalTime, "simulated time per run in seconds")
	flag.Int64Var(&args.Seed, "seed", 0, "random seed, 0 for a time-based seed")
	flag.StringVar(&args.Random, "rng", prng.KindMath, "random source: math, stream")
	flag.StringVar(&args.LogLevel, "log", "warn", "set logging level: trace, debug, info, warn, error, off")
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}
}

func parseValues(s string) ([]float64, error) {
	var values []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q", f)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.New("no values given")
	}
	return values, nil
}

func run() error {
	level, err := logger.ParseLevelString(args.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	param, err := simulation.ParseSweepParam(args.Param)
	if err != nil {
		return err
	}
	if args.Values == "" {
		args.Values = defaultValues[param]
	}
	values, err := parseValues(args.Values)
	if err != nil {
		return err
	}

	base := simulation.DefaultSweepConfig(param)
	base.TotalTime = args.Time
	base.Random = args.Random
	logger.Infof("random seed: %d", prng.Init(args.Seed))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, err := simulation.RunSweep(ctx, base, param, values)
	fmt.Print(simulation.FormatSweepTable(base, param, results))
	return err
}

func main() {
	parseArgs()
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
