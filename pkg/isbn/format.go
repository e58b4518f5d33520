package isbn

import (
	"fmt"
	"strings"
)

// Format identifies one of the two ISBN encodings.
type Format string

const (
	ISBN10 Format = "isbn10"
	ISBN13 Format = "isbn13"
)

// Length returns the number of symbols in a normalized value of this format.
func (f Format) Length() int {
	switch f {
	case ISBN10:
		return 10
	case ISBN13:
		return 13
	default:
		return 0
	}
}

// Valid reports whether f is ISBN10 or ISBN13.
func (f Format) Valid() bool {
	return f == ISBN10 || f == ISBN13
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat accepts "isbn10", "isbn-10", "10" and the ISBN-13 equivalents, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "isbn10", "isbn-10", "10":
		return ISBN10, nil
	case "isbn13", "isbn-13", "13":
		return ISBN13, nil
	}
	return "", fmt.Errorf("unknown ISBN format: %q", s)
}
