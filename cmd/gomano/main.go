// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/lassandro/gomano/pkg/config"
	"github.com/lassandro/gomano/pkg/debugger"
	"github.com/lassandro/gomano/pkg/machine"
)

type cliOptions struct {
	configFile  string
	logLevel    string
	trace       bool
	breakpoints []string
	maxSteps    uint64
}

var options cliOptions
var settings *config.Config

var rootCmd = &cobra.Command{
	Use:   "gomano [flags] image",
	Short: "gomano - Mano basic computer simulator",
	Long: `Loads a file written by gomano-asm, in any of its formats, and runs
it from its lowest address until HLT. Standard input is the keyboard and
standard output the display.`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: before,
	RunE:              run,
	SilenceUsage:      true,
}

func addFlags(flags *pflag.FlagSet) {
	flags.StringVar(
		&options.configFile, "config", "",
		"Configuration file (default "+config.DefaultFile+" if present)",
	)
	flags.StringVar(
		&options.logLevel, "log-level", "",
		"Log messages including and over the specified level: "+
			"debug, info, warn, error, fatal, panic",
	)
	flags.BoolVarP(
		&options.trace, "trace", "t", false,
		"Log every executed instruction to stderr",
	)
	flags.StringSliceVarP(
		&options.breakpoints, "break", "b", nil,
		"Hex address to stop at and dump the machine state (repeatable)",
	)
	flags.Uint64Var(
		&options.maxSteps, "max-steps", 0,
		"Stop after this many instructions, 0 for no limit",
	)
}

func init() {
	addFlags(rootCmd.Flags())
}

func before(cmd *cobra.Command, args []string) error {
	var err error

	if settings, err = config.Load(options.configFile); err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		settings.LogLevel = options.logLevel
	}

	if flags.Changed("trace") {
		settings.Machine.Trace = options.trace
	}

	if flags.Changed("break") {
		settings.Machine.Breakpoints = options.breakpoints
	}

	if flags.Changed("max-steps") {
		settings.Machine.MaxSteps = options.maxSteps
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	level, _ := logrus.ParseLevel(settings.LogLevel)
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	return nil
}

func dumpState(mc *machine.Machine, msg string) {
	state := &mc.State

	logrus.WithFields(logrus.Fields{
		"pc":  fmt.Sprintf("%03x", state.PC),
		"ac":  fmt.Sprintf("%04x", state.AC),
		"e":   state.E,
		"ien": state.IEN,
		"fgi": state.FGI,
		"fgo": state.FGO,
	}).Info(msg)
}

func run(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])

	if err != nil {
		return err
	}

	img, err := machine.Load(file)
	file.Close()

	if err != nil {
		return errors.Wrapf(err, "loading %s", args[0])
	}

	logrus.WithFields(logrus.Fields{
		"words": img.Count,
		"start": fmt.Sprintf("%03x", img.Start),
	}).Debug("image loaded")

	var mc machine.Machine
	var dh machine.DeviceHandler
	dh.Keyboard = bufio.NewReader(os.Stdin)
	dh.Display = bufio.NewWriter(os.Stdout)
	mc.Devices = &dh

	mc.LoadImage(img)

	breakpoints, err := settings.BreakpointAddrs()

	if err != nil {
		return err
	}

	if settings.Machine.Trace || len(breakpoints) > 0 {
		dbg := debugger.NewTracer(logrus.StandardLogger())
		dbg.Trace = settings.Machine.Trace
		dbg.Break(breakpoints...)
		mc.Debugger = dbg
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := enterRawTerm(); err != nil {
			logrus.WithError(err).Warn("keyboard input is line buffered")
		} else {
			defer func() {
				if err := exitRawTerm(); err != nil {
					logrus.WithError(err).Error("restoring terminal")
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var total uint64

	for {
		var steps uint64

		limit := settings.Machine.MaxSteps

		if limit > 0 && total >= limit {
			err = machine.ErrStepLimit
		} else {
			if limit > 0 {
				limit -= total
			}

			steps, err = mc.Run(ctx, limit)
			total += steps
		}

		if err == machine.ErrBreakpoint {
			dumpState(&mc, "breakpoint")
			continue
		}

		if err != nil {
			dumpState(&mc, "stopped")
			return errors.Wrapf(err, "after %d instructions", total)
		}

		break
	}

	logrus.WithField("instructions", total).Debug("halted")

	if settings.Machine.Trace {
		dumpState(&mc, "halted")
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
