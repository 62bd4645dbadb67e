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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lassandro/gomano/pkg/encoding"
)

// Result is the outcome of a whole assembly session. Output is only set
// when both passes finished without errors.
type Result struct {
	Output      []string
	Symbols     *SymbolTable
	Diagnostics []*Diagnostic
	Errors      int
	Warnings    int
}

func (result *Result) OK() bool {
	return result.Errors == 0
}

// Err aggregates every error-severity diagnostic, or returns nil.
func (result *Result) Err() error {
	var errs *multierror.Error

	for _, d := range result.Diagnostics {
		if d.Severity >= SEVERITY_ERROR {
			errs = multierror.Append(errs, d)
		}
	}

	return errs.ErrorOrNil()
}

func (result *Result) Summary() string {
	state := "successful"

	if result.Errors > 0 {
		state = "aborted"
	}

	return fmt.Sprintf(
		"Assembly %s - %d error(s), %d warning(s)",
		state, result.Errors, result.Warnings,
	)
}

// Assembler is one assembly session: a symbol table, a location counter
// and the ORG/END flags. It is not safe for concurrent use.
//
// Usage mirrors the two passes: send every line through ParseSymbolic,
// call ResetLocationCounter, then send every line through Assemble.
// AssembleLines does all of this.
type Assembler struct {
	Format Format
	Source string
	Log    logrus.FieldLogger

	// Called with every diagnostic as it is raised, fatal ones included.
	Report func(*Diagnostic)

	symbols     SymbolTable
	image       MemoryImage
	counter     uint16
	orgSeen     bool
	endSeen     bool
	line        int
	errors      int
	warnings    int
	diagnostics []*Diagnostic
}

func New(format Format, source string) *Assembler {
	asm := &Assembler{
		Format: format,
		Source: source,
		Log:    logrus.StandardLogger(),
	}

	asm.Reset()

	return asm
}

// Reset prepares the assembler for a new, independent source unit.
func (asm *Assembler) Reset() {
	asm.symbols.Reset()
	asm.image.Reset()
	asm.errors = 0
	asm.warnings = 0
	asm.diagnostics = nil
	asm.ResetLocationCounter()
}

// ResetLocationCounter rewinds the location counter and flags between
// passes. The symbol table is kept.
func (asm *Assembler) ResetLocationCounter() {
	asm.counter = 0
	asm.orgSeen = false
	asm.endSeen = false
}

func (asm *Assembler) Symbols() *SymbolTable {
	return &asm.symbols
}

func (asm *Assembler) Image() *MemoryImage {
	return &asm.image
}

func (asm *Assembler) LocationCounter() uint16 {
	return asm.counter
}

func (asm *Assembler) OrgEncountered() bool {
	return asm.orgSeen
}

func (asm *Assembler) EndEncountered() bool {
	return asm.endSeen
}

// Sets the one-based line number attached to diagnostics.
func (asm *Assembler) SetLineNumber(line int) {
	asm.line = line
}

func (asm *Assembler) Counts() (int, int) {
	return asm.errors, asm.warnings
}

func (asm *Assembler) Diagnostics() []*Diagnostic {
	return asm.diagnostics
}

func (asm *Assembler) logger() logrus.FieldLogger {
	if asm.Log == nil {
		return logrus.StandardLogger()
	}

	return asm.Log
}

func (asm *Assembler) position() Position {
	return Position{Source: asm.Source, Line: asm.line}
}

// Records a diagnostic and returns it if it is fatal.
func (asm *Assembler) report(err error) error {
	d, ok := err.(*Diagnostic)

	if !ok {
		return err
	}

	if d.Position == (Position{}) {
		d.Position = asm.position()
	}

	switch d.Severity {
	case SEVERITY_WARNING:
		asm.warnings++
	case SEVERITY_ERROR:
		asm.errors++
	}

	asm.diagnostics = append(asm.diagnostics, d)

	if asm.Report != nil {
		asm.Report(d)
	}

	if d.IsFatal() {
		return d
	}

	return nil
}

// Moves the location counter past a parsed line. END counts like any other
// instruction. A returned diagnostic is either the implicit origin warning
// or the fatal overflow.
func (asm *Assembler) updateLocationCounter(line *Line) *Diagnostic {
	var warning *Diagnostic

	switch {
	case line.IsBlank():
		return nil

	case line.Is(DIRECTIVE_ORG):
		origin, _ := encoding.DecodeHex(line.Operand)
		asm.counter = origin
		asm.orgSeen = true

	default:
		asm.counter++

		if !asm.orgSeen {
			asm.orgSeen = true
			warning = newDiagnostic(CODE_ORG_NOT_FOUND)
		}
	}

	if asm.counter > MEMORY_SIZE {
		return newDiagnostic(CODE_ADDRESS_OVERFLOW)
	}

	return warning
}

// ParseSymbolic runs pass 1 over a single upper-case line: it records the
// label at the current location counter and advances the counter.
// Warnings and errors are recorded; only a fatal diagnostic is returned.
func (asm *Assembler) ParseSymbolic(text string) error {
	line, err := ParseLine(text)

	if err != nil {
		return asm.report(err)
	}

	if line.Label != "" {
		if err := asm.symbols.Insert(line.Label, asm.counter); err != nil {
			asm.report(newDiagnostic(CODE_DUPLICATE_SYMBOL))
		}
	}

	if d := asm.updateLocationCounter(&line); d != nil {
		if err := asm.report(d); err != nil {
			return err
		}
	}

	if line.Is(DIRECTIVE_END) {
		asm.endSeen = true
	}

	return nil
}

// Assemble runs pass 2 over a single upper-case line and returns its
// rendered output, or "" when the line produces none. Only a fatal
// diagnostic is returned.
func (asm *Assembler) Assemble(text string) (string, error) {
	line, err := ParseLine(text)

	if err != nil {
		return "", asm.report(err)
	}

	if line.IsBlank() {
		return "", nil
	}

	if line.Is(DIRECTIVE_ORG) || line.Is(DIRECTIVE_END) {
		if d := asm.updateLocationCounter(&line); d != nil && d.IsFatal() {
			return "", asm.report(d)
		}

		asm.endSeen = line.Is(DIRECTIVE_END)

		return "", nil
	}

	var output string
	operand := line.Operand

	// Replace labels with their address
	if line.Instruction.ResolvesOperand() && operand != "" {
		if addr, exists := asm.symbols.Lookup(operand); exists {
			operand = encoding.EncodeHex(addr)
		} else if !encoding.IsHex(operand) {
			err = newDiagnostic(CODE_UNDECLARED_SYMBOL)
		}
	}

	if err == nil {
		var word uint16

		if word, err = Encode(&line, operand); err == nil {
			addr := asm.counter & ADDRESS_MASK

			if asm.Format == FORMAT_COE {
				asm.image.Set(addr, word)
			} else {
				output = Render(asm.Format, addr, word, &line, operand)
			}
		}
	}

	if err != nil {
		asm.report(err)
	}

	// Pass 1 already reported everything but the overflow
	if d := asm.updateLocationCounter(&line); d != nil && d.IsFatal() {
		return "", asm.report(d)
	}

	return output, nil
}

func (asm *Assembler) prepare(text string) (string, error) {
	text = strings.TrimRight(text, "\r")

	if len(text) > MAX_LINE_LENGTH {
		return "", asm.report(NewDiagnostic(CODE_LINE_TOO_LONG, asm.position()))
	}

	return strings.ToUpper(text), nil
}

// Pass1 collects symbols from every line up to END.
func (asm *Assembler) Pass1(lines []string) error {
	asm.ResetLocationCounter()

	for i := 0; i < len(lines) && !asm.endSeen; i++ {
		asm.SetLineNumber(i + 1)

		text, err := asm.prepare(lines[i])

		if err != nil {
			return err
		}

		if err := asm.ParseSymbolic(text); err != nil {
			return err
		}
	}

	return nil
}

// Pass2 encodes every line up to END against the symbol table built by
// Pass1. It may be run repeatedly; each run starts from a clean location
// counter and memory image. For FORMAT_COE the single returned entry is
// the serialized image.
func (asm *Assembler) Pass2(lines []string) ([]string, error) {
	var output []string

	asm.ResetLocationCounter()
	asm.image.Reset()

	for i := 0; i < len(lines) && !asm.endSeen; i++ {
		asm.SetLineNumber(i + 1)

		text, err := asm.prepare(lines[i])

		if err != nil {
			return nil, err
		}

		result, err := asm.Assemble(text)

		if err != nil {
			return nil, err
		}

		if result != "" {
			output = append(output, result)
		}
	}

	if asm.Format == FORMAT_COE {
		output = []string{asm.image.String()}
	}

	return output, nil
}

func (asm *Assembler) result() *Result {
	return &Result{
		Symbols:     &asm.symbols,
		Diagnostics: asm.diagnostics,
		Errors:      asm.errors,
		Warnings:    asm.warnings,
	}
}

// AssembleLines runs a complete session over lines. A fatal diagnostic
// aborts the session and is returned as the error, with no output in the
// result. Errors in a pass stop the session before the next pass and leave
// the output empty.
func (asm *Assembler) AssembleLines(lines []string) (*Result, error) {
	log := asm.logger().WithField("source", asm.Source)

	asm.Reset()

	log.WithField("pass", 1).Info("Assembling Pass 1...")

	if err := asm.Pass1(lines); err != nil {
		return asm.result(), err
	}

	if asm.errors > 0 {
		result := asm.result()
		log.WithFields(logrus.Fields{
			"errors":   result.Errors,
			"warnings": result.Warnings,
		}).Debug("pass 1 failed")
		return result, nil
	}

	log.WithFields(logrus.Fields{
		"pass":    2,
		"symbols": asm.symbols.Len(),
	}).Info("Assembling Pass 2...")

	output, err := asm.Pass2(lines)

	if err != nil {
		return asm.result(), err
	}

	result := asm.result()

	if result.Errors == 0 {
		result.Output = output
	}

	log.WithFields(logrus.Fields{
		"errors":   result.Errors,
		"warnings": result.Warnings,
		"lines":    len(result.Output),
	}).Debug("pass 2 finished")

	return result, nil
}

// ReadLines loads a source unit into memory, one entry per line.
func ReadLines(input io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading source")
	}

	return lines, nil
}

// AssembleSource reads and assembles a whole source unit. name is only
// used to label diagnostics.
func AssembleSource(name string, input io.Reader, format Format) (*Result, error) {
	asm := New(format, name)

	lines, err := ReadLines(input)

	if err != nil {
		d := NewDiagnostic(CODE_OPEN_INPUT, Position{Source: name})
		asm.report(d)
		return asm.result(), multierror.Append(d, err)
	}

	return asm.AssembleLines(lines)
}
