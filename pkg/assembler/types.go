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
	"strings"
)

type InstructionKind uint
type DirectiveType uint
type Severity uint
type ErrorClass uint
type Format uint

// An Instruction is one entry of the instruction catalog. Memory-reference
// instructions carry an Opcode, register-reference and I/O instructions
// carry their fixed Opcode plus the Mask OR'd into the low 12 bits, and
// pseudo instructions carry only a Directive.
type Instruction struct {
	Name      string
	Kind      InstructionKind
	Opcode    uint16
	Mask      uint16
	Directive DirectiveType
}

// Reports whether the operand column must be filled in for this
// instruction. Micro-ops and END forbid an operand.
func (inst *Instruction) RequiresOperand() bool {
	switch inst.Kind {
	case KIND_MEMORY:
		return true
	case KIND_PSEUDO:
		return inst.Directive != DIRECTIVE_END
	}

	return false
}

// Reports whether the operand is an address that may name a label.
func (inst *Instruction) ResolvesOperand() bool {
	return inst.Kind == KIND_MEMORY ||
		(inst.Kind == KIND_PSEUDO && inst.Directive == DIRECTIVE_HEX)
}

func (inst *Instruction) IndirectValid() bool {
	return inst.Kind == KIND_MEMORY
}

// A Line is one source line split into its columns. A Line with a nil
// Instruction is blank or comment-only.
type Line struct {
	Label       string
	Mnemonic    string
	Operand     string
	Indirect    bool
	Instruction *Instruction
}

func (line *Line) IsBlank() bool {
	return line.Instruction == nil
}

func (line *Line) Is(directive DirectiveType) bool {
	return line.Instruction != nil &&
		line.Instruction.Kind == KIND_PSEUDO &&
		line.Instruction.Directive == directive
}

type Position struct {
	Source string
	Line   int
}

// A Diagnostic is every warning, error and fatal error the assembler can
// raise. Line is one-based; zero means the line is unknown.
type Diagnostic struct {
	Position Position
	Class    ErrorClass
	Severity Severity
	Code     string
	Message  string
}

func (d *Diagnostic) GetPosition() Position {
	return d.Position
}

func (d *Diagnostic) IsFatal() bool {
	return d.Severity == SEVERITY_FATAL
}

func (d *Diagnostic) Error() string {
	var builder strings.Builder

	if d.Position.Line != 0 {
		fmt.Fprintf(&builder, "%s(%d) : ", d.Position.Source, d.Position.Line)
	}

	fmt.Fprintf(&builder, "%s %s: %s", d.Severity, d.Code, d.Message)

	return builder.String()
}

func (severity Severity) String() string {
	switch severity {
	case SEVERITY_WARNING:
		return "warning"
	case SEVERITY_ERROR:
		return "error"
	case SEVERITY_FATAL:
		return "fatal error"
	}

	return "<invalid>"
}

func (class ErrorClass) String() string {
	switch class {
	case CLASS_SYNTAX:
		return "SyntaxError"
	case CLASS_SEMANTIC:
		return "SemanticError"
	case CLASS_RANGE:
		return "RangeError"
	case CLASS_RESOURCE:
		return "ResourceError"
	}

	return "<invalid>"
}

func (format Format) String() string {
	switch format {
	case FORMAT_NORMAL:
		return "normal"
	case FORMAT_VERILOG:
		return "verilog"
	case FORMAT_COE:
		return "coe"
	}

	return "<invalid>"
}

// Parses a format name as accepted on the command line. Single letters
// match the original -n, -v and -c switches.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "n", "normal":
		return FORMAT_NORMAL, nil
	case "v", "verilog":
		return FORMAT_VERILOG, nil
	case "c", "coe", "memory-image", "image":
		return FORMAT_COE, nil
	}

	return FORMAT_NORMAL, fmt.Errorf("unknown output format %q", name)
}

type diagnosticInfo struct {
	Class    ErrorClass
	Severity Severity
	Message  string
}

var diagnosticTable = map[string]diagnosticInfo{
	CODE_OPEN_INPUT: {
		CLASS_RESOURCE, SEVERITY_FATAL, "Could not open input file",
	},
	CODE_OPEN_OUTPUT: {
		CLASS_RESOURCE, SEVERITY_FATAL,
		"Could not open output file for writing",
	},
	CODE_LINE_TOO_LONG: {
		CLASS_RESOURCE, SEVERITY_FATAL,
		"Line longer than 80 characters encountered",
	},
	CODE_ADDRESS_OVERFLOW: {
		CLASS_RANGE, SEVERITY_FATAL, "Attempt to assemble past address FFF",
	},
	CODE_INVALID_LABEL: {
		CLASS_SYNTAX, SEVERITY_ERROR, "Label is an invalid identifier",
	},
	CODE_EXTRA_BEFORE_COMMA: {
		CLASS_SYNTAX, SEVERITY_ERROR,
		"Unexpected extra argument before comma",
	},
	CODE_INVALID_INSTRUCTION: {
		CLASS_SYNTAX, SEVERITY_ERROR, "Invalid instruction encountered",
	},
	CODE_INVALID_INDIRECT: {
		CLASS_SYNTAX, SEVERITY_ERROR, "Unexpected text in Indirect Column",
	},
	CODE_EXPECTED_INSTR: {
		CLASS_SYNTAX, SEVERITY_ERROR, "Instruction Expected",
	},
	CODE_TEXT_AFTER_INDIRECT: {
		CLASS_SYNTAX, SEVERITY_ERROR, "Invalid text after indirect bit",
	},
	CODE_INDIRECT_NOT_VALID: {
		CLASS_SEMANTIC, SEVERITY_ERROR,
		"Indirect bit invalid for this instruction",
	},
	CODE_OPERAND_NOT_VALID: {
		CLASS_SEMANTIC, SEVERITY_ERROR, "Operand invalid for this instruction",
	},
	CODE_ORG_OPERAND: {
		CLASS_SYNTAX, SEVERITY_ERROR,
		"Operand must be a positive numeric for ORG",
	},
	CODE_DEC_OPERAND: {
		CLASS_SYNTAX, SEVERITY_ERROR, "Operand must be a numeric for DEC",
	},
	CODE_OPERAND_EXPECTED: {
		CLASS_SEMANTIC, SEVERITY_ERROR, "Operand expected",
	},
	CODE_ADDRESS_RANGE: {
		CLASS_RANGE, SEVERITY_ERROR, "Addresses must be between 000 and FFF",
	},
	CODE_LABEL_NOT_VALID: {
		CLASS_SEMANTIC, SEVERITY_ERROR, "Label invalid for this instruction",
	},
	CODE_OPERAND_TOO_LONG: {
		CLASS_SYNTAX, SEVERITY_ERROR, "Operand longer than 10 characters",
	},
	CODE_DUPLICATE_SYMBOL: {
		CLASS_SEMANTIC, SEVERITY_ERROR, "Duplicate symbol encountered",
	},
	CODE_UNDECLARED_SYMBOL: {
		CLASS_SEMANTIC, SEVERITY_ERROR, "Undeclared symbol encountered",
	},
	CODE_ORG_NOT_FOUND: {
		CLASS_RANGE, SEVERITY_WARNING,
		"ORG not encountered.  Assuming 000 as origin.",
	},
}

// Builds the diagnostic registered under code. The position is filled in
// by whoever knows it.
func NewDiagnostic(code string, pos Position) *Diagnostic {
	info, exists := diagnosticTable[code]

	if !exists {
		panic("unregistered diagnostic code " + code)
	}

	return &Diagnostic{
		Position: pos,
		Class:    info.Class,
		Severity: info.Severity,
		Code:     code,
		Message:  info.Message,
	}
}

func newDiagnostic(code string) *Diagnostic {
	return NewDiagnostic(code, Position{})
}
