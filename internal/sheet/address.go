package sheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Address is a canonical cell address: column letters followed by a 1-based
// row number, always uppercase (e.g. "A1", "AA100").
type Address string

// ErrInvalidAddress indicates text that does not name a valid cell position.
var ErrInvalidAddress = errors.New("invalid cell address")

// maxColumn bounds column decoding so that oversized letter runs are rejected
const maxColumn = 1<<31 - 1

// ColumnName returns the base-26 letter form of a 1-based column index:
// 1 → "A", 26 → "Z", 27 → "AA", 703 → "AAA". Returns "" for col < 1.
func ColumnName(col int) string {
	var buf []byte
	for col > 0 {
		rem := (col - 1) % 26
		buf = append(buf, byte('A'+rem))
		col = (col - 1) / 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// FormatAddress returns the address of the cell at (col, row), both 1-based.
func FormatAddress(col, row int) Address {
	return Address(ColumnName(col) + strconv.Itoa(row))
}

// ColumnIndex is the inverse of ColumnName. Letters are case-insensitive.
func ColumnIndex(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty column name", ErrInvalidAddress)
	}
	col := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		default:
			return 0, fmt.Errorf("%w: column %q", ErrInvalidAddress, name)
		}
		if col > (maxColumn-26)/26 {
			return 0, fmt.Errorf("%w: column %q out of range", ErrInvalidAddress, name)
		}
		col = col*26 + int(c-'A'+1)
	}
	return col, nil
}

// ParseAddress splits an address into its 1-based column and row.
//
// The input is case-insensitive. The row must be a positive decimal without
// leading zeros, so "A0" and "A01" are rejected: they match the lexical
// shape of a reference but name no cell.
func ParseAddress(s string) (col, row int, err error) {
	split := 0
	for split < len(s) && isLetter(s[split]) {
		split++
	}
	letters, digits := s[:split], s[split:]
	if letters == "" || digits == "" {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
	}
	if digits[0] == '0' {
		return 0, 0, fmt.Errorf("%w: %q has no row zero or leading zeros", ErrInvalidAddress, s)
	}
	row, err = strconv.Atoi(digits)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: row of %q out of range", ErrInvalidAddress, s)
	}
	col, err = ColumnIndex(letters)
	if err != nil {
		return 0, 0, err
	}
	return col, row, nil
}

// Canonical uppercases address text. It does not validate.
func Canonical(s string) Address {
	return Address(strings.ToUpper(strings.TrimSpace(s)))
}

// Compare orders addresses row-major (row first, then column). Text that
// does not parse sorts after every valid address, by plain string order.
func Compare(a, b Address) int {
	ac, ar, aerr := ParseAddress(string(a))
	bc, br, berr := ParseAddress(string(b))
	switch {
	case aerr != nil && berr != nil:
		return strings.Compare(string(a), string(b))
	case aerr != nil:
		return 1
	case berr != nil:
		return -1
	}
	if ar != br {
		return ar - br
	}
	return ac - bc
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
