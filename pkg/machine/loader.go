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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	LOADER_UNKNOWN = iota
	LOADER_PATCH
	LOADER_VERILOG
	LOADER_COE
)

const (
	coeRadixKey  = "memory_initialization_radix"
	coeVectorKey = "memory_initialization_vector"
)

// LoadError describes a malformed line in an image file.
type LoadError struct {
	Line    int
	Message string
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("line %d: %s", err.Line, err.Message)
}

func (err *LoadError) GetPosition() int {
	return err.Line
}

func stripComment(text string) string {
	if i := strings.IndexByte(text, '/'); i >= 0 {
		text = text[:i]
	}

	return strings.TrimSpace(text)
}

func parseWord(field string, limit uint64) (uint16, error) {
	value, err := strconv.ParseUint(field, 16, 16)

	if err != nil {
		return 0, errors.Errorf("invalid hex value '%s'", field)
	}

	if value > limit {
		return 0, errors.Errorf("value '%s' out of range", field)
	}

	return uint16(value), nil
}

type loader struct {
	img     Image
	format  int
	next    uint16
	seen    bool
	written [MEMORY_SIZE]bool
	errs    *multierror.Error
}

func (ld *loader) fail(line int, format string, args ...interface{}) {
	ld.errs = multierror.Append(ld.errs, &LoadError{
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (ld *loader) store(addr uint16, word uint16) {
	ld.img.Words[addr] = word

	if !ld.written[addr] {
		ld.written[addr] = true
		ld.img.Count++
	}

	if !ld.seen || addr < ld.img.Start {
		ld.img.Start = addr
		ld.seen = true
	}
}

// Handles "m <addr> <word>" and "@<addr> <word>" lines.
func (ld *loader) addressed(num int, text string) {
	fields := strings.Fields(text)

	if len(fields) != 2 {
		ld.fail(num, "expected address and word, got '%s'", text)
		return
	}

	addr, err := parseWord(fields[0], uint64(ADDRESS_MASK))

	if err != nil {
		ld.fail(num, "address: %v", err)
		return
	}

	word, err := parseWord(fields[1], 0xFFFF)

	if err != nil {
		ld.fail(num, "word: %v", err)
		return
	}

	ld.store(addr, word)
}

// Handles the comma separated word list of a memory image.
func (ld *loader) vector(num int, text string) {
	for _, field := range strings.Split(text, ",") {
		field = strings.TrimSpace(strings.TrimSuffix(
			strings.TrimSpace(field), ";",
		))

		if field == "" {
			continue
		}

		if ld.next > ADDRESS_MASK {
			ld.fail(num, "image exceeds %#x words", MEMORY_SIZE)
			return
		}

		word, err := parseWord(field, 0xFFFF)

		if err != nil {
			ld.fail(num, "word: %v", err)
		} else if word != 0 {
			ld.store(ld.next, word)
		}

		ld.next++
	}
}

func (ld *loader) header(num int, text string) {
	key, value, found := strings.Cut(text, "=")

	if !found {
		ld.fail(num, "malformed header '%s'", text)
		return
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(strings.TrimSuffix(value, ";"))

	switch key {
	case coeRadixKey:
		if value != "16" {
			ld.fail(num, "unsupported radix '%s'", value)
		}
	case coeVectorKey:
		ld.vector(num, value)
	default:
		ld.fail(num, "unknown header '%s'", key)
	}
}

func (ld *loader) line(num int, text string) {
	switch ld.format {
	case LOADER_UNKNOWN:
		switch {
		case strings.HasPrefix(text, coeRadixKey):
			ld.format = LOADER_COE
		case text[0] == 'm':
			ld.format = LOADER_PATCH
		case text[0] == '@':
			ld.format = LOADER_VERILOG
		default:
			ld.fail(num, "unrecognized image format")
			return
		}

		ld.line(num, text)

	case LOADER_PATCH:
		if text[0] != 'm' {
			ld.fail(num, "expected 'm' command, got '%s'", text)
			return
		}

		ld.addressed(num, text[1:])

	case LOADER_VERILOG:
		if text[0] != '@' {
			ld.fail(num, "expected '@' address, got '%s'", text)
			return
		}

		ld.addressed(num, text[1:])

	case LOADER_COE:
		if strings.Contains(text, "=") {
			ld.header(num, text)
		} else {
			ld.vector(num, text)
		}
	}
}

// Load reads a program in any of the assembler's output formats. Execution
// starts at the lowest address that holds a word.
func Load(reader io.Reader) (*Image, error) {
	var ld loader

	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)

	for num := 1; scanner.Scan(); num++ {
		text := stripComment(scanner.Text())

		if text == "" {
			continue
		}

		ld.line(num, text)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading image")
	}

	if err := ld.errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	if ld.format == LOADER_UNKNOWN {
		return nil, errors.New("image is empty")
	}

	return &ld.img, nil
}
