package isbn

import "strings"

// DisplayPrefix is prepended to the normalized value by DisplayValue.
const DisplayPrefix = "ISBN: "

// ISBN is an immutable, normalized ISBN-10 or ISBN-13.
// Two values are equal when their normalized strings are equal.
type ISBN struct {
	value  string
	format Format
}

// New strips hyphens and spaces from raw and tags the result with f.
// It trusts the caller: raw is expected to already match the grammar of f.
func New(raw string, f Format) ISBN {
	return ISBN{
		value:  stripSeparators(raw),
		format: f,
	}
}

// Build recognizes the first ISBN in raw and returns it normalized.
func Build(raw string) (ISBN, error) {
	m, err := Recognize(raw)
	if err != nil {
		return ISBN{}, err
	}
	return New(m.Text, m.Format), nil
}

// Value returns the normalized digits, including a trailing X for some ISBN-10s.
func (i ISBN) Value() string {
	return i.value
}

// Format returns the encoding the value was recognized as.
func (i ISBN) Format() Format {
	return i.format
}

// ID returns the identity key of the value, which is its normalized string.
func (i ISBN) ID() string {
	return i.value
}

// IsZero reports whether i is the zero ISBN.
func (i ISBN) IsZero() bool {
	return i.value == ""
}

// Equal reports whether both values carry the same normalized string.
func (i ISBN) Equal(other ISBN) bool {
	return i.value == other.value
}

// DisplayValue returns the value with the "ISBN: " label.
func (i ISBN) DisplayValue() string {
	return DisplayPrefix + i.value
}

func (i ISBN) String() string {
	return i.DisplayValue()
}

// MarshalText implements encoding.TextMarshaler with the normalized value.
func (i ISBN) MarshalText() ([]byte, error) {
	return []byte(i.value), nil
}

// ConvertedTo returns the normalized value re-encoded in the target format,
// with a freshly computed check character. Converting to the value's own
// format returns it unchanged.
func (i ISBN) ConvertedTo(f Format) string {
	if f == i.format {
		return i.value
	}

	var body string
	switch {
	case i.format == ISBN13 && f == ISBN10:
		if len(i.value) < 4 {
			return ""
		}
		body = i.value[3 : len(i.value)-1]
	case i.format == ISBN10 && f == ISBN13:
		if len(i.value) < 1 {
			return ""
		}
		body = "978" + i.value[:len(i.value)-1]
	default:
		return ""
	}
	return body + string(Checksum(body, f))
}

// Forms returns the value spelled in both encodings. ISBN-13s outside the 978
// prefix have no ISBN-10 equivalent, so only their ISBN-13 form is returned.
func (i ISBN) Forms() map[Format]string {
	forms := map[Format]string{i.format: i.value}
	switch i.format {
	case ISBN10:
		forms[ISBN13] = i.ConvertedTo(ISBN13)
	case ISBN13:
		if strings.HasPrefix(i.value, "978") {
			forms[ISBN10] = i.ConvertedTo(ISBN10)
		}
	}
	return forms
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, s)
}
