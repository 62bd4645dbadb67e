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

package debugger

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/gomano/pkg/assembler"
	"github.com/lassandro/gomano/pkg/encoding"
	"github.com/lassandro/gomano/pkg/machine"
)

func address(addr uint16) string {
	return fmt.Sprintf("%03x", addr&machine.ADDRESS_MASK)
}

func NewTracer(log logrus.FieldLogger) *Tracer {
	return &Tracer{Log: log}
}

// Adds a breakpoint for every address.
func (dbg *Tracer) Break(addrs ...uint16) {
	for _, addr := range addrs {
		dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{
			Addr: addr & machine.ADDRESS_MASK,
		})
	}
}

func (dbg *Tracer) Watch(addr uint16, kind WatchpointType) {
	dbg.Watchpoints = append(dbg.Watchpoints, Watchpoint{
		Addr: addr & machine.ADDRESS_MASK,
		Type: kind,
	})
}

// Number of breakpoints hit so far.
func (dbg *Tracer) Hits() int {
	return dbg.hits
}

func (dbg *Tracer) logger() logrus.FieldLogger {
	if dbg.Log == nil {
		return logrus.StandardLogger()
	}

	return dbg.Log
}

func (dbg *Tracer) fields(mc *machine.Machine) logrus.Fields {
	state := &mc.State
	word := state.Memory[state.PC&machine.ADDRESS_MASK]

	fields := logrus.Fields{
		"pc":   address(state.PC),
		"word": encoding.EncodeHex(word),
		"ac":   encoding.EncodeHex(state.AC),
		"e":    state.E,
	}

	if label, exists := dbg.Symbols[state.PC]; exists {
		fields["label"] = label
	}

	return fields
}

func (dbg *Tracer) Step(mc *machine.Machine) {
	pc := mc.State.PC

	if dbg.resuming && dbg.resumeAddr == pc {
		dbg.resuming = false
	} else {
		dbg.resuming = false

		for _, breakpoint := range dbg.Breakpoints {
			if pc == breakpoint.Addr {
				dbg.hits++
				dbg.resumeAddr = pc
				dbg.resuming = true

				dbg.logger().WithFields(dbg.fields(mc)).Info("breakpoint")
				mc.Break()
				return
			}
		}
	}

	if dbg.Trace {
		word := mc.State.Memory[pc&machine.ADDRESS_MASK]
		dbg.logger().WithFields(dbg.fields(mc)).Info(
			assembler.Disassemble(word),
		)
	}
}

func (dbg *Tracer) watched(addr uint16, skip WatchpointType) bool {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == skip {
			continue
		}

		if addr == watchpoint.Addr {
			return true
		}
	}

	return false
}

func (dbg *Tracer) Read(addr uint16, mc *machine.Machine) {
	if dbg.watched(addr, WriteWatch) {
		dbg.logger().WithFields(logrus.Fields{
			"addr":  address(addr),
			"value": encoding.EncodeHex(mc.State.Memory[addr]),
		}).Info("read")
	}
}

func (dbg *Tracer) Write(addr uint16, mc *machine.Machine) {
	if dbg.watched(addr, ReadWatch) {
		dbg.logger().WithFields(logrus.Fields{
			"addr":  address(addr),
			"value": encoding.EncodeHex(mc.State.Memory[addr]),
		}).Info("write")
	}
}
