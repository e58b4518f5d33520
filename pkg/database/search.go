package database

import (
	"context"

	"github.com/iziplay/isbn-api/pkg/isbn"
)

// SearchByISBN finds records carrying v under either of its spellings.
func (s *Store) SearchByISBN(ctx context.Context, v isbn.ISBN, limit, offset int) ([]Record, int64, error) {
	db := s.DB.WithContext(ctx)

	var identifiers []RecordIdentifier
	if err := db.
		Where("type IN ? AND value IN ?", []string{isbn.ISBN10.String(), isbn.ISBN13.String()}, searchValues(v)).
		Find(&identifiers).Error; err != nil {
		return nil, 0, err
	}

	if len(identifiers) == 0 {
		return []Record{}, 0, nil
	}

	// Collect unique record IDs
	idSet := make(map[string]struct{})
	for _, id := range identifiers {
		idSet[id.Record] = struct{}{}
	}
	recordIDs := make([]string, 0, len(idSet))
	for id := range idSet {
		recordIDs = append(recordIDs, id)
	}

	var total int64
	if err := db.Model(&Record{}).Where("id IN ?", recordIDs).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []Record
	if err := db.
		Preload("Identifiers").
		Where("id IN ?", recordIDs).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
