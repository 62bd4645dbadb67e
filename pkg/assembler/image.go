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

// MemoryImage collects encoded words for the packed memory-image output.
type MemoryImage struct {
	Words   [MEMORY_SIZE]uint16
	last    uint16
	written bool
}

func (img *MemoryImage) Reset() {
	*img = MemoryImage{}
}

func (img *MemoryImage) Set(addr uint16, word uint16) {
	addr &= ADDRESS_MASK

	img.Words[addr] = word

	if !img.written || addr > img.last {
		img.last = addr
	}

	img.written = true
}

// Returns the highest address written, or 0 if nothing was.
func (img *MemoryImage) Last() uint16 {
	return img.last
}

// Serializes the image as a coefficient table: a header, then eight
// comma-separated words per row up to the highest written address, which
// is terminated with ';'.
func (img *MemoryImage) String() string {
	var builder strings.Builder

	builder.WriteString(coeHeader)

	for addr := uint16(0); addr <= img.last; addr++ {
		fmt.Fprintf(&builder, "%04x", img.Words[addr])

		if addr == img.last {
			builder.WriteString(";\n")
			break
		}

		builder.WriteByte(',')

		if addr%8 == 7 {
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}
