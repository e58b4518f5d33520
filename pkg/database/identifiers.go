package database

import (
	"sort"

	"github.com/iziplay/isbn-api/pkg/isbn"
)

// IdentifiersFor expands each ISBN into its ISBN-10 and ISBN-13 spellings,
// dropping duplicates. The result is ordered by type then value.
func IdentifiersFor(recordID string, isbns []isbn.ISBN) []RecordIdentifier {
	seen := make(map[RecordIdentifier]struct{})
	var identifiers []RecordIdentifier
	for _, v := range isbns {
		if v.IsZero() {
			continue
		}
		for format, value := range v.Forms() {
			id := RecordIdentifier{
				Record: recordID,
				Type:   format.String(),
				Value:  value,
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			identifiers = append(identifiers, id)
		}
	}

	sort.Slice(identifiers, func(i, j int) bool {
		if identifiers[i].Type != identifiers[j].Type {
			return identifiers[i].Type < identifiers[j].Type
		}
		return identifiers[i].Value < identifiers[j].Value
	})
	return identifiers
}

// searchValues returns the identifier values to look up for v.
func searchValues(v isbn.ISBN) []string {
	forms := v.Forms()
	values := make([]string, 0, len(forms))
	for _, format := range []isbn.Format{isbn.ISBN10, isbn.ISBN13} {
		if value, ok := forms[format]; ok {
			values = append(values, value)
		}
	}
	return values
}
