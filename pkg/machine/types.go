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

import (
	"bufio"
)

type DeviceHandler struct {
	Keyboard *bufio.Reader
	Display  *bufio.Writer
}

// MachineState holds every register of the basic computer. Address
// registers are 12 bits wide, INPR and OUTR 8 bits.
type MachineState struct {
	AC   uint16
	DR   uint16
	AR   uint16
	IR   uint16
	PC   uint16
	TR   uint16
	INPR uint8
	OUTR uint8

	E   bool
	I   bool
	S   bool
	R   bool
	IEN bool
	FGI bool
	FGO bool

	Memory [MEMORY_SIZE]uint16
}

type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	Devices  *DeviceHandler
	State    MachineState
	Debugger MachineDebugger

	breakRequested bool
}

// Image is a loaded memory image. Start is the lowest address that was
// loaded, which is where execution begins.
type Image struct {
	Words [MEMORY_SIZE]uint16
	Start uint16
	Count int
}
