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

const (
	KIND_MEMORY InstructionKind = iota
	KIND_REGISTER
	KIND_IO
	KIND_PSEUDO
)

const (
	DIRECTIVE_INVALID DirectiveType = iota
	DIRECTIVE_ORG
	DIRECTIVE_END
	DIRECTIVE_HEX
	DIRECTIVE_DEC
)

const (
	SEVERITY_WARNING Severity = iota
	SEVERITY_ERROR
	SEVERITY_FATAL
)

const (
	CLASS_SYNTAX ErrorClass = iota
	CLASS_SEMANTIC
	CLASS_RANGE
	CLASS_RESOURCE
)

const (
	FORMAT_NORMAL Format = iota
	FORMAT_VERILOG
	FORMAT_COE
)

const (
	OPCODE_REGISTER uint16 = 0x7
	OPCODE_IO       uint16 = 0xF
)

const (
	MAX_LINE_LENGTH     = 80
	MAX_LABEL_LENGTH    = 3
	MAX_MNEMONIC_LENGTH = 3
	MAX_OPERAND_LENGTH  = 10
)

const (
	MEMORY_SIZE  uint16 = 0x1000
	ADDRESS_MASK uint16 = 0x0FFF
	INDIRECT_BIT uint16 = 0x8000
)

const (
	CODE_OPEN_INPUT       = "A0001"
	CODE_OPEN_OUTPUT      = "A0002"
	CODE_LINE_TOO_LONG    = "A0004"
	CODE_ADDRESS_OVERFLOW = "A0005"

	CODE_INVALID_LABEL       = "A1001"
	CODE_EXTRA_BEFORE_COMMA  = "A1002"
	CODE_INVALID_INSTRUCTION = "A1003"
	CODE_INVALID_INDIRECT    = "A1004"
	CODE_EXPECTED_INSTR      = "A1005"
	CODE_TEXT_AFTER_INDIRECT = "A1006"
	CODE_INDIRECT_NOT_VALID  = "A1007"
	CODE_OPERAND_NOT_VALID   = "A1008"
	CODE_ORG_OPERAND         = "A1009"
	CODE_DEC_OPERAND         = "A1010"
	CODE_OPERAND_EXPECTED    = "A1012"
	CODE_ADDRESS_RANGE       = "A1013"
	CODE_LABEL_NOT_VALID     = "A1014"
	CODE_OPERAND_TOO_LONG    = "A1015"

	CODE_DUPLICATE_SYMBOL  = "A2000"
	CODE_UNDECLARED_SYMBOL = "A2001"

	CODE_ORG_NOT_FOUND = "A3000"
)

const (
	coeHeader = "memory_initialization_radix=16;\n" +
		"memory_initialization_vector=\n"
)
