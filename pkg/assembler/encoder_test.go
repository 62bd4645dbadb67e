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

package assembler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/gomano/pkg/assembler"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		Input   string
		Operand string
		Output  uint16
	}{
		{"LDA X", "0004", 0x2004},
		{"STA X I", "0FFF", 0xBFFF},
		{"CLA", "", 0x7800},
		{"SKO", "", 0xF100},
		{"HEX 8000", "8000", 0x8000},
		{"DEC -2", "-2", 0xFFFE},
		{"DEC 32767", "32767", 0x7FFF},
	}

	for _, test := range tests {
		line, err := assembler.ParseLine(test.Input)
		require.NoError(t, err, test.Input)

		have, err := assembler.Encode(&line, test.Operand)
		require.NoError(t, err, test.Input)
		assert.Equal(t, test.Output, have, test.Input)
	}
}

func TestEncodeErrors(t *testing.T) {
	line, err := assembler.ParseLine("LDA X")
	require.NoError(t, err)

	_, err = assembler.Encode(&line, "X")
	assert.Equal(t, assembler.CODE_UNDECLARED_SYMBOL, err.(*assembler.Diagnostic).Code)

	_, err = assembler.Encode(&line, "1000")
	assert.Equal(t, assembler.CODE_ADDRESS_RANGE, err.(*assembler.Diagnostic).Code)

	_, err = assembler.Encode(&assembler.Line{}, "")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	line, err := assembler.ParseLine("BUN LOOP I")
	require.NoError(t, err)

	assert.Equal(
		t, "m\t0123\tc010\t/ BUN 0010 I",
		assembler.Render(assembler.FORMAT_NORMAL, 0x123, 0xC010, &line, "0010"),
	)
	assert.Equal(
		t, "@0123\tc010\t// BUN 0010 I",
		assembler.Render(assembler.FORMAT_VERILOG, 0x123, 0xC010, &line, "0010"),
	)
	assert.Equal(
		t, "",
		assembler.Render(assembler.FORMAT_COE, 0x123, 0xC010, &line, "0010"),
	)

	line, err = assembler.ParseLine("CLA")
	require.NoError(t, err)

	assert.Equal(
		t, "m\t0000\t7800\t/ CLA  ",
		assembler.Render(assembler.FORMAT_NORMAL, 0, 0x7800, &line, ""),
	)
}

func TestMemoryImage(t *testing.T) {
	var img assembler.MemoryImage

	assert.Equal(
		t,
		"memory_initialization_radix=16;\n"+
			"memory_initialization_vector=\n"+
			"0000;\n",
		img.String(),
	)

	for addr := uint16(0); addr < 9; addr++ {
		img.Set(addr, 0x7001)
	}

	assert.Equal(t, uint16(8), img.Last())
	assert.Equal(
		t,
		"memory_initialization_radix=16;\n"+
			"memory_initialization_vector=\n"+
			strings.Repeat("7001,", 8)+"\n"+
			"7001;\n",
		img.String(),
	)

	img.Reset()
	img.Set(0x00A, 0x1234)
	img.Set(0x002, 0xABCD)

	assert.Equal(t, uint16(0x00A), img.Last())
	assert.Equal(
		t,
		"memory_initialization_radix=16;\n"+
			"memory_initialization_vector=\n"+
			"0000,0000,abcd,0000,0000,0000,0000,0000,\n"+
			"0000,0000,1234;\n",
		img.String(),
	)
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]assembler.Format{
		"":        assembler.FORMAT_NORMAL,
		"n":       assembler.FORMAT_NORMAL,
		"Verilog": assembler.FORMAT_VERILOG,
		"v":       assembler.FORMAT_VERILOG,
		"coe":     assembler.FORMAT_COE,
		"c":       assembler.FORMAT_COE,
	} {
		have, err := assembler.ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, have, name)
	}

	_, err := assembler.ParseFormat("binary")
	assert.Error(t, err)
}
