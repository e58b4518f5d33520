package database

import (
	"time"

	"github.com/lib/pq"
)

type Model struct {
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Record struct {
	Model

	ID        string         `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title"`
	Publisher string         `json:"publisher"`
	Author    string         `json:"author"`
	Year      int            `json:"year"`
	Languages pq.StringArray `json:"languages" gorm:"type:text[]"`

	Identifiers []RecordIdentifier `json:"identifiers" gorm:"foreignKey:Record;references:ID"`
}

type RecordIdentifier struct {
	Model

	Record string `json:"-" gorm:"primaryKey"`
	Type   string `json:"type" gorm:"primaryKey;index:idx_record_identifier_type;index:idx_record_identifier_type_value"`
	Value  string `json:"value" gorm:"primaryKey;index:idx_record_identifier_type_value"`
}

type Ingestion struct {
	Date     time.Time `gorm:"primaryKey;type:timestamptz"`
	Source   string    // file path or URL the records were read from
	Records  int
	ISBNs    int
	Complete bool
}
