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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/lassandro/gomano/pkg/assembler"
	"github.com/lassandro/gomano/pkg/config"
)

const banner = "Mano Assembler\n" +
	"Based on textbook by Mano, M. M., Computer System Architecture, " +
	"3rd ed.\n"

// Returned when assembly failed; the diagnostics were already printed.
var errAborted = errors.New("assembly aborted")

type cliOptions struct {
	configFile string
	logLevel   string
	format     string
	symbols    bool
}

var options cliOptions
var settings *config.Config

var rootCmd = &cobra.Command{
	Use:   "gomano-asm [flags] infile [outfile]",
	Short: "gomano-asm - two-pass assembler for the Mano basic computer",
	Long: `Assembles a Mano machine source file into a memory patch script,
Verilog memory initialization lines or a memory image.

Without an outfile the output is written next to infile with the
extension .mano, .mem for verilog or .coe for a memory image.`,
	Args:              cobra.RangeArgs(1, 2),
	PersistentPreRunE: before,
	RunE:              run,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(
		&options.format, "format", "f", "",
		"Output format: normal, verilog or coe",
	)
	flags.BoolVar(
		&options.symbols, "symbols", true,
		"Print the symbol table after a successful assembly",
	)
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&options.configFile, "config", "",
		"Configuration file (default "+config.DefaultFile+" if present)",
	)
	rootCmd.PersistentFlags().StringVar(
		&options.logLevel, "log-level", "",
		"Log messages including and over the specified level: "+
			"debug, info, warn, error, fatal, panic",
	)

	addFlags(rootCmd.Flags())

	rootCmd.AddCommand(disCmd)
}

// Loads the configuration and applies command line overrides.
func before(cmd *cobra.Command, args []string) error {
	var err error

	if settings, err = config.Load(options.configFile); err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		settings.LogLevel = options.logLevel
	}

	if flags.Changed("format") {
		settings.Assembler.Format = options.format
	}

	if flags.Changed("symbols") {
		settings.Assembler.Symbols = options.symbols
	}

	level, err := logrus.ParseLevel(settings.LogLevel)

	if err != nil {
		return err
	}

	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	return nil
}

func outputName(infile string, format assembler.Format) string {
	ext := ".mano"

	switch format {
	case assembler.FORMAT_VERILOG:
		ext = ".mem"
	case assembler.FORMAT_COE:
		ext = ".coe"
	}

	return strings.TrimSuffix(infile, filepath.Ext(infile)) + ext
}

// Prints a diagnostic, highlighting its severity on a terminal.
func reporter(w io.Writer, color bool) func(*assembler.Diagnostic) {
	return func(d *assembler.Diagnostic) {
		if !color {
			fmt.Fprintln(w, d)
			return
		}

		code := "33"

		if d.Severity >= assembler.SEVERITY_ERROR {
			code = "31"
		}

		fmt.Fprintf(w, "\033[1;%sm%s\033[0m\n", code, d)
	}
}

func writeOutput(path string, output []string) error {
	file, err := os.Create(path)

	if err != nil {
		return err
	}

	for _, line := range output {
		// The memory image arrives as one newline terminated entry
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}

		if _, err := io.WriteString(file, line); err != nil {
			file.Close()
			return err
		}
	}

	return file.Close()
}

func run(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	fmt.Fprint(stdout, banner, "\n")

	format, err := settings.Format()

	if err != nil {
		return err
	}

	infile := args[0]
	outfile := outputName(infile, format)

	if len(args) > 1 {
		outfile = args[1]
	}

	report := reporter(
		stderr, stderr == os.Stderr && term.IsTerminal(int(os.Stderr.Fd())),
	)

	source, err := os.Open(infile)

	if err != nil {
		logrus.WithError(err).Debug("opening source")
		report(assembler.NewDiagnostic(
			assembler.CODE_OPEN_INPUT, assembler.Position{Source: infile},
		))
		return errAborted
	}

	lines, err := assembler.ReadLines(source)
	source.Close()

	if err != nil {
		logrus.WithError(err).Debug("reading source")
		report(assembler.NewDiagnostic(
			assembler.CODE_OPEN_INPUT, assembler.Position{Source: infile},
		))
		return errAborted
	}

	asm := assembler.New(format, infile)
	asm.Log = logrus.StandardLogger()
	asm.Report = report

	result, err := asm.AssembleLines(lines)

	// The fatal diagnostic was already reported
	if err != nil {
		return errAborted
	}

	if result.OK() && settings.Assembler.Symbols {
		fmt.Fprintln(stdout, "Symbol Table\n------------")

		if err := result.Symbols.Dump(stdout); err != nil {
			return err
		}

		fmt.Fprintln(stdout)
	}

	fmt.Fprintln(stdout, result.Summary())

	if err := writeOutput(outfile, result.Output); err != nil {
		logrus.WithError(err).Debug("writing output")
		report(assembler.NewDiagnostic(
			assembler.CODE_OPEN_OUTPUT, assembler.Position{Source: outfile},
		))
		return errAborted
	}

	if !result.OK() {
		return errAborted
	}

	logrus.WithFields(logrus.Fields{
		"output": outfile,
		"format": format,
	}).Info("Output written")

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err != errAborted {
			logrus.Error(err)
		}

		os.Exit(1)
	}
}
