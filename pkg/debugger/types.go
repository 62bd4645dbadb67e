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
	"github.com/sirupsen/logrus"
)

type WatchpointType uint

const (
	ReadWatch WatchpointType = iota
	WriteWatch
	AccessWatch
)

type Watchpoint struct {
	Addr uint16
	Type WatchpointType
}

type Breakpoint struct {
	Addr uint16
}

// Tracer is a machine debugger that logs execution and stops the machine
// at breakpoints. Resuming after a break executes the instruction at the
// breakpoint before it can trigger again.
type Tracer struct {
	Log   logrus.FieldLogger
	Trace bool

	Breakpoints []Breakpoint
	Watchpoints []Watchpoint

	Symbols map[uint16]string

	resumeAddr uint16
	resuming   bool
	hits       int
}
