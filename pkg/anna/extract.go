package anna

import "github.com/iziplay/isbn-api/pkg/isbn"

// ExtractISBNs returns the distinct ISBNs of a record, taken from its identifiers,
// its search fields and the first ISBN mentioned in its description.
func ExtractISBNs(record *Record) []isbn.ISBN {
	if record == nil {
		return nil
	}
	data := record.Source.FileUnifiedData

	var candidates []string
	candidates = append(candidates, data.IdentifiersUnified[isbn.ISBN13.String()]...)
	candidates = append(candidates, data.IdentifiersUnified[isbn.ISBN10.String()]...)
	candidates = append(candidates, record.Source.SearchOnlyFields.SearchISBN13...)
	if data.StrippedDescriptionBest != "" {
		candidates = append(candidates, data.StrippedDescriptionBest)
	}

	seen := make(map[string]struct{})
	var isbns []isbn.ISBN
	for _, candidate := range candidates {
		v, err := isbn.Build(candidate)
		if err != nil {
			continue
		}
		if _, ok := seen[v.ID()]; ok {
			continue
		}
		seen[v.ID()] = struct{}{}
		isbns = append(isbns, v)
	}
	return isbns
}
