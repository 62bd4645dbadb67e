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
	"strings"
	"unicode"

	"github.com/lassandro/gomano/pkg/encoding"
)

func isIdentifier(s string) bool {
	if len(s) == 0 || len(s) > MAX_LABEL_LENGTH {
		return false
	}

	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}

	for i := 1; i < len(s); i++ {
		c := s[i]

		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}

	return true
}

// Splits off the next whitespace-delimited field.
func nextField(s string) (field string, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	if i := strings.IndexFunc(s, unicode.IsSpace); i != -1 {
		return s[:i], s[i:]
	}

	return s, ""
}

func parseLabel(s string) (string, error) {
	label, rest := nextField(s)

	// A bare comma carries no label
	if label == "" {
		return "", nil
	}

	if !isIdentifier(label) {
		return "", newDiagnostic(CODE_INVALID_LABEL)
	}

	if extra, _ := nextField(rest); extra != "" {
		return "", newDiagnostic(CODE_EXTRA_BEFORE_COMMA)
	}

	return label, nil
}

func parseOrigin(operand string) error {
	if !encoding.IsHex(operand) || operand[0] == '-' {
		return newDiagnostic(CODE_ORG_OPERAND)
	}

	if value, err := encoding.DecodeHex(operand); err != nil ||
		len(strings.TrimLeft(operand, "0")) > 3 || value > ADDRESS_MASK {
		return newDiagnostic(CODE_ADDRESS_RANGE)
	}

	return nil
}

// ParseLine splits one upper-case source line into its label, mnemonic,
// operand and indirect columns:
//
//	[LABEL,] MNEMONIC [OPERAND [I]] [/ comment]
//
// The returned error is always a *Diagnostic without a position.
func ParseLine(text string) (line Line, err error) {
	if i := strings.IndexByte(text, '/'); i != -1 {
		text = text[:i]
	}

	rest := strings.TrimLeftFunc(text, unicode.IsSpace)

	if rest == "" {
		return Line{}, nil
	}

	// Label
	if i := strings.IndexByte(rest, ','); i != -1 {
		if line.Label, err = parseLabel(rest[:i]); err != nil {
			return Line{}, err
		}

		rest = rest[i+1:]
	}

	// Instruction
	mnemonic, rest := nextField(rest)

	if mnemonic == "" {
		return Line{}, newDiagnostic(CODE_EXPECTED_INSTR)
	}

	if len(mnemonic) > MAX_MNEMONIC_LENGTH {
		return Line{}, newDiagnostic(CODE_INVALID_INSTRUCTION)
	}

	inst, exists := LookupInstruction(mnemonic)

	if !exists {
		return Line{}, newDiagnostic(CODE_INVALID_INSTRUCTION)
	}

	line.Mnemonic = mnemonic
	line.Instruction = inst

	if line.Label != "" && (line.Is(DIRECTIVE_ORG) || line.Is(DIRECTIVE_END)) {
		return Line{}, newDiagnostic(CODE_LABEL_NOT_VALID)
	}

	// Operand
	operand, rest := nextField(rest)

	if operand == "" {
		if inst.RequiresOperand() {
			return Line{}, newDiagnostic(CODE_OPERAND_EXPECTED)
		}

		return line, nil
	}

	if len(operand) > MAX_OPERAND_LENGTH {
		return Line{}, newDiagnostic(CODE_OPERAND_TOO_LONG)
	}

	if !inst.RequiresOperand() {
		return Line{}, newDiagnostic(CODE_OPERAND_NOT_VALID)
	}

	line.Operand = operand

	if line.Is(DIRECTIVE_ORG) {
		if err := parseOrigin(operand); err != nil {
			return Line{}, err
		}
	}

	if line.Is(DIRECTIVE_DEC) && !encoding.IsDec(operand) {
		return Line{}, newDiagnostic(CODE_DEC_OPERAND)
	}

	// Indirect bit
	indirect, rest := nextField(rest)

	if indirect == "" {
		return line, nil
	}

	if indirect != "I" {
		return Line{}, newDiagnostic(CODE_INVALID_INDIRECT)
	}

	if !inst.IndirectValid() {
		return Line{}, newDiagnostic(CODE_INDIRECT_NOT_VALID)
	}

	line.Indirect = true

	if extra, _ := nextField(rest); extra != "" {
		return Line{}, newDiagnostic(CODE_TEXT_AFTER_INDIRECT)
	}

	return line, nil
}
