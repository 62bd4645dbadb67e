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

package machine

const (
	MEMORY_SIZE  uint16 = 0x1000
	ADDRESS_MASK uint16 = 0x0FFF
	SIGN_BIT     uint16 = 0x8000
	INDIRECT_BIT uint16 = 0x8000
)

const (
	OP_AND uint16 = 0x0
	OP_ADD uint16 = 0x1
	OP_LDA uint16 = 0x2
	OP_STA uint16 = 0x3
	OP_BUN uint16 = 0x4
	OP_BSA uint16 = 0x5
	OP_ISZ uint16 = 0x6

	// Register reference when I = 0, input-output when I = 1
	OP_MICRO uint16 = 0x7
)

// Register-reference micro-ops
const (
	REG_CLA uint16 = 0x800
	REG_CLE uint16 = 0x400
	REG_CMA uint16 = 0x200
	REG_CME uint16 = 0x100
	REG_CIR uint16 = 0x080
	REG_CIL uint16 = 0x040
	REG_INC uint16 = 0x020
	REG_SPA uint16 = 0x010
	REG_SNA uint16 = 0x008
	REG_SZA uint16 = 0x004
	REG_SZE uint16 = 0x002
	REG_HLT uint16 = 0x001
)

// Input-output micro-ops
const (
	IO_INP uint16 = 0x800
	IO_OUT uint16 = 0x400
	IO_SKI uint16 = 0x200
	IO_SKO uint16 = 0x100
	IO_ION uint16 = 0x080
	IO_IOF uint16 = 0x040
)

// The interrupt cycle stores the return address here and resumes at
// INTERRUPT_VECTOR + 1.
const INTERRUPT_VECTOR uint16 = 0x000
