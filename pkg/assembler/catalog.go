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

// The scan order matters to the disassembler: memory-reference
// instructions come first, and micro-ops are listed from the highest mask
// bit down so combined words read in bit order.
var catalog = [...]Instruction{
	// Memory-reference instructions. Opcodes 8-E are the same instructions
	// with the indirect bit set.
	{Name: "AND", Kind: KIND_MEMORY, Opcode: 0x0},
	{Name: "ADD", Kind: KIND_MEMORY, Opcode: 0x1},
	{Name: "LDA", Kind: KIND_MEMORY, Opcode: 0x2},
	{Name: "STA", Kind: KIND_MEMORY, Opcode: 0x3},
	{Name: "BUN", Kind: KIND_MEMORY, Opcode: 0x4},
	{Name: "BSA", Kind: KIND_MEMORY, Opcode: 0x5},
	{Name: "ISZ", Kind: KIND_MEMORY, Opcode: 0x6},

	// Register-reference instructions
	{Name: "CLA", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x800},
	{Name: "CLE", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x400},
	{Name: "CMA", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x200},
	{Name: "CME", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x100},
	{Name: "CIR", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x080},
	{Name: "CIL", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x040},
	{Name: "INC", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x020},
	{Name: "SPA", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x010},
	{Name: "SNA", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x008},
	{Name: "SZA", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x004},
	{Name: "SZE", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x002},
	{Name: "HLT", Kind: KIND_REGISTER, Opcode: OPCODE_REGISTER, Mask: 0x001},

	// Input-output instructions
	{Name: "INP", Kind: KIND_IO, Opcode: OPCODE_IO, Mask: 0x800},
	{Name: "OUT", Kind: KIND_IO, Opcode: OPCODE_IO, Mask: 0x400},
	{Name: "SKI", Kind: KIND_IO, Opcode: OPCODE_IO, Mask: 0x200},
	{Name: "SKO", Kind: KIND_IO, Opcode: OPCODE_IO, Mask: 0x100},
	{Name: "ION", Kind: KIND_IO, Opcode: OPCODE_IO, Mask: 0x080},
	{Name: "IOF", Kind: KIND_IO, Opcode: OPCODE_IO, Mask: 0x040},

	// Pseudo instructions
	{Name: "ORG", Kind: KIND_PSEUDO, Directive: DIRECTIVE_ORG},
	{Name: "END", Kind: KIND_PSEUDO, Directive: DIRECTIVE_END},
	{Name: "HEX", Kind: KIND_PSEUDO, Directive: DIRECTIVE_HEX},
	{Name: "DEC", Kind: KIND_PSEUDO, Directive: DIRECTIVE_DEC},
}

var catalogIndex = make(map[string]*Instruction, len(catalog))

func init() {
	for i := range catalog {
		if _, exists := catalogIndex[catalog[i].Name]; exists {
			panic("duplicate catalog entry " + catalog[i].Name)
		}

		catalogIndex[catalog[i].Name] = &catalog[i]
	}
}

// Finds the catalog entry for an upper-case mnemonic.
func LookupInstruction(name string) (*Instruction, bool) {
	inst, exists := catalogIndex[name]
	return inst, exists
}

// Returns a copy of the catalog in scan order.
func Instructions() []Instruction {
	result := make([]Instruction, len(catalog))
	copy(result, catalog[:])
	return result
}
