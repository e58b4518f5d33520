package isbn

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Label is the literal token that introduces an explicitly labeled ISBN.
const Label = "ISBN"

// Match is the first ISBN-shaped occurrence found in a text.
type Match struct {
	// Text is the matched value with its separators, without any label.
	Text   string
	Format Format
	// Start and End are byte offsets of Text within the input.
	Start int
	End   int
	// Labeled is true when the value followed an "ISBN" label.
	Labeled bool
}

// Recognize returns the first ISBN-10 or ISBN-13 in text.
//
// Labeled occurrences ("ISBN", "ISBN-10:", "ISBN-13 ", ...) are searched first;
// bare values are only considered when no labeled one exists. A value must be
// followed by whitespace or the end of the text. A bare value must also not
// directly follow a letter, digit, '_' or '-', so "abc0596520689" has no match.
// Check characters are not verified.
func Recognize(text string) (Match, error) {
	if m, ok := recognizeLabeled(text); ok {
		return m, nil
	}
	if m, ok := recognizeBare(text); ok {
		return m, nil
	}
	return Match{}, ErrNotFound
}

func recognizeLabeled(text string) (Match, bool) {
	from := 0
	for {
		idx := strings.Index(text[from:], Label)
		if idx < 0 {
			return Match{}, false
		}
		at := from + idx
		pos := at + len(Label)

		rest := text[pos:]
		if strings.HasPrefix(rest, "-10") || strings.HasPrefix(rest, "-13") {
			pos += 3
		}
		if pos < len(text) && text[pos] == ':' {
			pos++
		}
		if pos < len(text) && text[pos] == ' ' {
			pos++
		}

		if end, f, ok := matchValue(text, pos); ok {
			return Match{
				Text:    text[pos:end],
				Format:  f,
				Start:   pos,
				End:     end,
				Labeled: true,
			}, true
		}
		from = at + 1
	}
}

func recognizeBare(text string) (Match, bool) {
	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) || !standalone(text, i) {
			continue
		}
		if end, f, ok := matchValue(text, i); ok {
			return Match{
				Text:   text[i:end],
				Format: f,
				Start:  i,
				End:    end,
			}, true
		}
	}
	return Match{}, false
}

// standalone reports whether a value may start at i, i.e. it is not the tail
// of a longer word, number or hyphenated run.
func standalone(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-')
}

type span struct {
	start, end int
}

// matchValue tries to read an ISBN value starting at start. ISBN-13 shapes are
// preferred over ISBN-10 shapes; among each, the shortest valid span wins.
func matchValue(text string, start int) (int, Format, bool) {
	groups := scanGroups(text, start)

	for _, f := range []Format{ISBN13, ISBN10} {
		for k := 1; k <= len(groups); k++ {
			end := groups[k-1].end
			if !terminated(text, end) {
				continue
			}
			if shapeMatches(text, groups[:k], f) {
				return end, f, true
			}
		}
	}
	return 0, "", false
}

// scanGroups splits the run starting at start into at most five groups of
// digits and X, separated by a single hyphen or space.
func scanGroups(text string, start int) []span {
	groups := make([]span, 0, 5)
	pos := start
	for len(groups) < 5 {
		gs := pos
		for pos < len(text) && isSymbol(text[pos]) {
			pos++
		}
		if pos == gs {
			break
		}
		groups = append(groups, span{gs, pos})

		if pos+1 < len(text) && isSeparator(text[pos]) && isSymbol(text[pos+1]) {
			pos++
			continue
		}
		break
	}
	return groups
}

func shapeMatches(text string, groups []span, f Format) bool {
	total := 0
	for gi, g := range groups {
		last := gi == len(groups)-1
		for p := g.start; p < g.end; p++ {
			c := text[p]
			if isDigit(c) {
				continue
			}
			// X is only allowed as the final symbol of an ISBN-10.
			if c != 'X' || f != ISBN10 || !last || p != g.end-1 {
				return false
			}
		}
		total += g.end - g.start
	}
	if total != f.Length() {
		return false
	}

	first := text[groups[0].start:groups[0].end]
	switch f {
	case ISBN13:
		if !strings.HasPrefix(first, "978") && !strings.HasPrefix(first, "979") {
			return false
		}
		switch len(groups) {
		case 1:
			return true
		case 5:
			return len(first) == 3 &&
				groupLen(groups[1]) <= 5 &&
				groupLen(groups[4]) == 1
		}
	case ISBN10:
		switch len(groups) {
		case 1:
			return true
		case 4:
			return len(first) <= 5 && groupLen(groups[3]) == 1
		}
	}
	return false
}

func groupLen(g span) int {
	return g.end - g.start
}

func terminated(text string, end int) bool {
	if end == len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return unicode.IsSpace(r)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSymbol(c byte) bool {
	return isDigit(c) || c == 'X'
}

func isSeparator(c byte) bool {
	return c == '-' || c == ' '
}
