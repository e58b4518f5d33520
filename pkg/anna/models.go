package anna

// Record represents a book/document record from Anna's Archive
type Record struct {
	Index  string       `json:"_index"`
	ID     string       `json:"_id"`
	Score  float64      `json:"_score"`
	Source RecordSource `json:"_source"`
}

// RecordSource contains the main data of the record
type RecordSource struct {
	ID               string           `json:"id"`
	FileUnifiedData  FileUnifiedData  `json:"file_unified_data"`
	SearchOnlyFields SearchOnlyFields `json:"search_only_fields"`
}

// FileUnifiedData contains unified file metadata
type FileUnifiedData struct {
	ExtensionBest           string              `json:"extension_best"`
	TitleBest               string              `json:"title_best"`
	AuthorBest              string              `json:"author_best"`
	PublisherBest           string              `json:"publisher_best"`
	YearBest                string              `json:"year_best"`
	StrippedDescriptionBest string              `json:"stripped_description_best"`
	LanguageCodes           []string            `json:"language_codes"`
	IdentifiersUnified      map[string][]string `json:"identifiers_unified"`
}

// SearchOnlyFields contains search-specific metadata
type SearchOnlyFields struct {
	SearchISBN13 []string `json:"search_isbn13"`
}
