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
	"io"
	"strings"
)

// Disassemble renders a machine word as mnemonic text. Memory-reference
// words read "LDA 004" or "LDA 004 I"; micro-op words list every
// instruction whose mask bit is set, e.g. "CLA CMA HLT". Words matching
// nothing render as "RESERVED (7000)".
func Disassemble(word uint16) string {
	indirect := word&INDIRECT_BIT != 0
	opcode := word >> 12
	address := word & ADDRESS_MASK

	var names []string

	for i := range catalog {
		inst := &catalog[i]

		switch inst.Kind {
		case KIND_MEMORY:
			// The high opcode bit is the indirect bit
			if inst.Opcode != opcode&0x7 {
				continue
			}

			text := fmt.Sprintf("%s %03x", inst.Name, address)

			if indirect {
				text += " I"
			}

			return text

		case KIND_REGISTER, KIND_IO:
			if inst.Opcode == opcode && address&inst.Mask != 0 {
				names = append(names, inst.Name)
			}
		}
	}

	if len(names) == 0 {
		return fmt.Sprintf("RESERVED (%04x)", word)
	}

	return strings.Join(names, " ")
}

// DisassembleAll writes "<addr>\t<word>\t<text>" for every nonzero word
// in mem. base is the address of mem[0].
func DisassembleAll(mem []uint16, base uint16, w io.Writer) error {
	for i, word := range mem {
		if word == 0 {
			continue
		}

		if _, err := fmt.Fprintf(
			w, "%03x\t%04x\t%s\n", (base+uint16(i))&ADDRESS_MASK, word,
			Disassemble(word),
		); err != nil {
			return err
		}
	}

	return nil
}
