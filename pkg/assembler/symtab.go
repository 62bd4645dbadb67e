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
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var ErrDuplicateSymbol = errors.New("duplicate symbol")

// SymbolTable maps labels to 12-bit addresses. Labels are compared
// without regard to case.
type SymbolTable struct {
	symbols map[string]uint16
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]uint16)}
}

func (st *SymbolTable) Reset() {
	st.symbols = make(map[string]uint16)
}

// Adds a label. A label that is already present is left untouched and
// ErrDuplicateSymbol is returned.
func (st *SymbolTable) Insert(label string, addr uint16) error {
	if st.symbols == nil {
		st.symbols = make(map[string]uint16)
	}

	label = strings.ToUpper(label)

	if _, exists := st.symbols[label]; exists {
		return fmt.Errorf("%w '%s'", ErrDuplicateSymbol, label)
	}

	st.symbols[label] = addr

	return nil
}

func (st *SymbolTable) Lookup(label string) (uint16, bool) {
	addr, exists := st.symbols[strings.ToUpper(label)]
	return addr, exists
}

func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Returns every label in sorted order.
func (st *SymbolTable) Labels() []string {
	labels := make([]string, 0, len(st.symbols))

	for label := range st.symbols {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	return labels
}

// Returns a copy of the table.
func (st *SymbolTable) Map() map[string]uint16 {
	result := make(map[string]uint16, len(st.symbols))

	for label, addr := range st.symbols {
		result[label] = addr
	}

	return result
}

// Writes one "LABEL\t0x<addr>" line per symbol, sorted by label.
func (st *SymbolTable) Dump(w io.Writer) error {
	for _, label := range st.Labels() {
		if _, err := fmt.Fprintf(
			w, "%s\t0x%x\n", label, st.symbols[label],
		); err != nil {
			return err
		}
	}

	return nil
}
