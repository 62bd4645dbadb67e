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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	Err    error
	Stdout string
	Stderr string
}

func execute(t *testing.T, args ...string) cliResult {
	var stdout, stderr bytes.Buffer

	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--log-level", "error"))

	err := rootCmd.Execute()

	return cliResult{Err: err, Stdout: stdout.String(), Stderr: stderr.String()}
}

func writeSource(t *testing.T, source string) (string, string) {
	dir := t.TempDir()
	infile := filepath.Join(dir, "prog.asm")

	require.NoError(t, os.WriteFile(infile, []byte(source), 0666))

	return infile, filepath.Join(dir, "prog.out")
}

func TestAssembleFile(t *testing.T) {
	infile, outfile := writeSource(t, "ORG 10\nLDA X\nHLT\nX, DEC 5\nEND\n")

	result := execute(t, "--format", "normal", infile, outfile)
	require.NoError(t, result.Err)

	assert.True(t, strings.HasPrefix(result.Stdout, banner+"\n"))
	assert.Empty(t, result.Stderr)

	table := strings.Index(result.Stdout, "Symbol Table\n------------\nX\t0x12\n")
	status := strings.Index(
		result.Stdout, "Assembly successful - 0 error(s), 0 warning(s)",
	)

	require.NotEqual(t, -1, table)
	require.NotEqual(t, -1, status)
	assert.Less(t, table, status, "symbol table is printed before the status")

	output, err := os.ReadFile(outfile)
	require.NoError(t, err)
	assert.Equal(
		t,
		"m\t0010\t2012\t/ LDA 0012 \n"+
			"m\t0011\t7001\t/ HLT  \n"+
			"m\t0012\t0005\t/ DEC 5 \n",
		string(output),
	)
}

func TestAssembleFatal(t *testing.T) {
	infile, outfile := writeSource(t, "ORG FFF\nHLT\nHLT\n")

	result := execute(t, "--format", "normal", infile, outfile)

	assert.Equal(t, errAborted, result.Err)
	assert.Contains(t, result.Stderr, "(3) : fatal error A0005")
	assert.NotContains(t, result.Stdout, "Assembly successful")
	assert.NoFileExists(t, outfile)
}

func TestAssembleErrors(t *testing.T) {
	infile, outfile := writeSource(t, "ORG 0\nBUN FOO\n")

	result := execute(t, "--format", "normal", infile, outfile)

	assert.Equal(t, errAborted, result.Err)
	assert.Contains(t, result.Stderr, "(2) : error A2001")
	assert.Contains(
		t, result.Stdout, "Assembly aborted - 1 error(s), 0 warning(s)",
	)
	assert.NotContains(t, result.Stdout, "Symbol Table")

	output, err := os.ReadFile(outfile)
	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestOutputName(t *testing.T) {
	infile, _ := writeSource(t, "ORG 0\nHLT\n")

	result := execute(t, "--format", "coe", infile)
	require.NoError(t, result.Err)

	output, err := os.ReadFile(strings.TrimSuffix(infile, ".asm") + ".coe")
	require.NoError(t, err)
	assert.Equal(
		t,
		"memory_initialization_radix=16;\n"+
			"memory_initialization_vector=\n"+
			"7001;\n",
		string(output),
	)
}

func TestDisassembleWords(t *testing.T) {
	result := execute(t, "dis", "7A01", "2004", "f800")
	require.NoError(t, result.Err)

	assert.Equal(
		t,
		"000\t7a01\tCLA CMA HLT\n"+
			"001\t2004\tLDA 004\n"+
			"002\tf800\tINP\n",
		result.Stdout,
	)
}
