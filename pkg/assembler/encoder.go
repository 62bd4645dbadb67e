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

package assembler

import (
	"fmt"

	"github.com/lassandro/gomano/pkg/encoding"
)

// Encode builds the machine word for a parsed line. operand is the
// line's operand with any label already replaced by its address.
//
//	|I|opcode |address                | Memory reference
//	|0|1 1 1  |register micro-ops     | Register reference
//	|1|1 1 1  |I/O micro-ops          | Input-output
//	[ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func Encode(line *Line, operand string) (uint16, error) {
	inst := line.Instruction

	if inst == nil {
		return 0, newDiagnostic(CODE_EXPECTED_INSTR)
	}

	var scratch uint16

	switch inst.Kind {
	case KIND_MEMORY:
		addr, err := encoding.DecodeHex(operand)

		if err != nil {
			return 0, newDiagnostic(CODE_UNDECLARED_SYMBOL)
		}

		if addr > ADDRESS_MASK || (len(operand) > 0 && operand[0] == '-') {
			return 0, newDiagnostic(CODE_ADDRESS_RANGE)
		}

		scratch = inst.Opcode << 12

		if line.Indirect {
			scratch |= INDIRECT_BIT
		}

		scratch |= addr

	case KIND_REGISTER, KIND_IO:
		scratch = inst.Opcode<<12 | inst.Mask

	case KIND_PSEUDO:
		var err error

		switch inst.Directive {
		case DIRECTIVE_HEX, DIRECTIVE_ORG:
			if scratch, err = encoding.DecodeHex(operand); err != nil {
				return 0, newDiagnostic(CODE_UNDECLARED_SYMBOL)
			}
		case DIRECTIVE_DEC:
			if scratch, err = encoding.DecodeDec(operand); err != nil {
				return 0, newDiagnostic(CODE_DEC_OPERAND)
			}
		}
	}

	return scratch, nil
}

func lineComment(line *Line, operand string) string {
	var indirect string

	if line.Indirect {
		indirect = "I"
	}

	return line.Mnemonic + " " + operand + " " + indirect
}

// Render formats one encoded word. FORMAT_COE has no per-line text and
// renders as "".
func Render(format Format, addr uint16, word uint16, line *Line, operand string) string {
	switch format {
	case FORMAT_NORMAL:
		// m = modify memory
		return fmt.Sprintf(
			"m\t%04x\t%04x\t/ %s", addr, word, lineComment(line, operand),
		)
	case FORMAT_VERILOG:
		return fmt.Sprintf(
			"@%04x\t%04x\t// %s", addr, word, lineComment(line, operand),
		)
	}

	return ""
}
