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
	"context"
	"errors"
	"io"
)

var (
	ErrStepLimit  = errors.New("step limit reached")
	ErrBreakpoint = errors.New("breakpoint reached")
)

func (mc *MachineState) Reset() {
	*mc = MachineState{}

	// The display starts out ready for a character
	mc.FGO = true
}

// Loads an image and points the program counter at its start.
func (mc *Machine) LoadImage(img *Image) {
	mc.State.Reset()
	mc.State.Memory = img.Words
	mc.State.PC = img.Start
}

// Load reads an assembler output file in any of its formats.
func (mc *Machine) Load(reader io.Reader) error {
	img, err := Load(reader)

	if err != nil {
		return err
	}

	mc.LoadImage(img)

	return nil
}

// Break stops Run before the next instruction executes. Debuggers call
// it from their Step hook.
func (mc *Machine) Break() {
	mc.breakRequested = true
}

func (mc *Machine) read(addr uint16) uint16 {
	addr &= ADDRESS_MASK

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.Memory[addr]
}

func (mc *Machine) write(addr uint16, value uint16) {
	addr &= ADDRESS_MASK

	mc.State.Memory[addr] = value

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

// Latches a pending key into INPR once the previous one was consumed.
func (mc *Machine) pollKeyboard() {
	if mc.State.FGI || mc.Devices == nil || mc.Devices.Keyboard == nil {
		return
	}

	key, err := mc.Devices.Keyboard.ReadByte()

	if err == io.EOF {
		return
	} else if err != nil {
		panic(err)
	}

	mc.State.INPR = key
	mc.State.FGI = true
}

func (mc *Machine) output(value uint8) {
	mc.State.OUTR = value
	mc.State.FGO = false

	if mc.Devices != nil && mc.Devices.Display != nil {
		if err := mc.Devices.Display.WriteByte(value); err != nil {
			panic(err)
		}

		if err := mc.Devices.Display.Flush(); err != nil {
			panic(err)
		}
	}

	mc.State.FGO = true
}

func (mc *Machine) skip() {
	mc.State.PC = (mc.State.PC + 1) & ADDRESS_MASK
}

func (mc *Machine) interrupt() {
	mc.State.AR = INTERRUPT_VECTOR
	mc.State.TR = mc.State.PC
	mc.write(mc.State.AR, mc.State.TR)
	mc.State.PC = INTERRUPT_VECTOR + 1
	mc.State.IEN = false
	mc.State.R = false
}

func (mc *Machine) executeRegister(ops uint16) {
	state := &mc.State

	if ops&REG_CLA != 0 {
		state.AC = 0
	}

	if ops&REG_CLE != 0 {
		state.E = false
	}

	if ops&REG_CMA != 0 {
		state.AC = ^state.AC
	}

	if ops&REG_CME != 0 {
		state.E = !state.E
	}

	if ops&REG_CIR != 0 {
		carry := state.AC&0x1 != 0
		state.AC >>= 1

		if state.E {
			state.AC |= SIGN_BIT
		}

		state.E = carry
	}

	if ops&REG_CIL != 0 {
		carry := state.AC&SIGN_BIT != 0
		state.AC <<= 1

		if state.E {
			state.AC |= 0x1
		}

		state.E = carry
	}

	if ops&REG_INC != 0 {
		state.AC++
	}

	if ops&REG_SPA != 0 && state.AC&SIGN_BIT == 0 {
		mc.skip()
	}

	if ops&REG_SNA != 0 && state.AC&SIGN_BIT != 0 {
		mc.skip()
	}

	if ops&REG_SZA != 0 && state.AC == 0 {
		mc.skip()
	}

	if ops&REG_SZE != 0 && !state.E {
		mc.skip()
	}

	if ops&REG_HLT != 0 {
		state.S = false
	}
}

func (mc *Machine) executeIO(ops uint16) {
	state := &mc.State

	if ops&IO_INP != 0 {
		state.AC = (state.AC & 0xFF00) | uint16(state.INPR)
		state.FGI = false
	}

	if ops&IO_OUT != 0 {
		mc.output(uint8(state.AC & 0xFF))
	}

	if ops&IO_SKI != 0 && state.FGI {
		mc.skip()
	}

	if ops&IO_SKO != 0 && state.FGO {
		mc.skip()
	}

	if ops&IO_ION != 0 {
		state.IEN = true
	}

	if ops&IO_IOF != 0 {
		state.IEN = false
	}
}

func (mc *Machine) executeMemory(opcode uint16) {
	state := &mc.State

	switch opcode {
	case OP_AND:
		state.DR = mc.read(state.AR)
		state.AC &= state.DR

	case OP_ADD:
		state.DR = mc.read(state.AR)
		sum := uint32(state.AC) + uint32(state.DR)
		state.AC = uint16(sum)
		state.E = sum > 0xFFFF

	case OP_LDA:
		state.DR = mc.read(state.AR)
		state.AC = state.DR

	case OP_STA:
		mc.write(state.AR, state.AC)

	case OP_BUN:
		state.PC = state.AR

	case OP_BSA:
		mc.write(state.AR, state.PC)
		state.PC = (state.AR + 1) & ADDRESS_MASK

	case OP_ISZ:
		state.DR = mc.read(state.AR) + 1
		mc.write(state.AR, state.DR)

		if state.DR == 0 {
			mc.skip()
		}
	}
}

// Step runs one instruction cycle, or the interrupt cycle when an
// interrupt is pending.
func (mc *Machine) Step() {
	state := &mc.State

	mc.pollKeyboard()

	if state.R {
		mc.interrupt()
		return
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)

		if mc.breakRequested {
			return
		}
	}

	// Fetch
	state.AR = state.PC
	state.IR = mc.read(state.AR)
	state.PC = (state.PC + 1) & ADDRESS_MASK

	// Decode
	opcode := (state.IR >> 12) & 0x7
	state.I = state.IR&INDIRECT_BIT != 0
	state.AR = state.IR & ADDRESS_MASK

	// Execute
	if opcode == OP_MICRO {
		if state.I {
			mc.executeIO(state.AR)
		} else {
			mc.executeRegister(state.AR)
		}
	} else {
		if state.I {
			state.AR = mc.read(state.AR) & ADDRESS_MASK
		}

		mc.executeMemory(opcode)
	}

	if state.IEN && (state.FGI || state.FGO) {
		state.R = true
	}
}

// Run starts the machine and steps it until HLT. A maxSteps of zero means
// no limit. It returns the number of instructions executed.
func (mc *Machine) Run(ctx context.Context, maxSteps uint64) (uint64, error) {
	var steps uint64

	mc.State.S = true

	for mc.State.S {
		if maxSteps > 0 && steps >= maxSteps {
			return steps, ErrStepLimit
		}

		if err := ctx.Err(); err != nil {
			return steps, err
		}

		mc.Step()

		if mc.breakRequested {
			mc.breakRequested = false
			return steps, ErrBreakpoint
		}

		steps++
	}

	return steps, nil
}
