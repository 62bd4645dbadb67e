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

package encoding

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidHex = errors.New("Invalid hex string")
	ErrInvalidDec = errors.New("Invalid decimal string")
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func digits(s string) string {
	if len(s) > 0 && s[0] == '-' {
		return s[1:]
	}

	return s
}

// Reports whether s is a hexadecimal numeral in the formats: 1F, -1F
func IsHex(s string) bool {
	d := digits(s)

	if len(d) == 0 {
		return false
	}

	for i := 0; i < len(d); i++ {
		if !isHexDigit(d[i]) {
			return false
		}
	}

	return true
}

// Reports whether s is a base-10 numeral in the formats: 123, -123
func IsDec(s string) bool {
	d := digits(s)

	if len(d) == 0 {
		return false
	}

	for i := 0; i < len(d); i++ {
		if !isDigit(d[i]) {
			return false
		}
	}

	return true
}

// Decodes a hexadecimal string in the formats: FFF, -1. The result wraps to
// 16 bits, so -1 decodes to 0xFFFF and 12345 decodes to 0x2345.
func DecodeHex(s string) (uint16, error) {
	if !IsHex(s) {
		return 0, ErrInvalidHex
	}

	result, err := strconv.ParseUint(digits(s), 16, 64)

	if err != nil {
		return 0, err
	}

	if s[0] == '-' {
		result = -result
	}

	return uint16(result), nil
}

// Decodes a base-10 string in the formats: 123, -123. The result wraps to
// 16 bits.
func DecodeDec(s string) (uint16, error) {
	if !IsDec(s) {
		return 0, ErrInvalidDec
	}

	result, err := strconv.ParseInt(s, 10, 64)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Encodes a word as exactly four lowercase hexadecimal digits.
func EncodeHex(value uint16) string {
	return fmt.Sprintf("%04x", value)
}
