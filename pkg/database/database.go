package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/iziplay/isbn-api/pkg/isbn"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Config holds the Postgres connection settings.
type Config struct {
	Host     string
	User     string
	Password string
	Database string
	Port     string
}

// ConfigFromEnv reads the POSTGRES_* environment variables.
func ConfigFromEnv() Config {
	return Config{
		Host:     os.Getenv("POSTGRES_HOST"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Database: os.Getenv("POSTGRES_DATABASE"),
		Port:     os.Getenv("POSTGRES_PORT"),
	}
}

// DSN returns the connection string understood by the postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Database, c.Port,
	)
}

// Store gives access to the indexed records and their ISBNs.
type Store struct {
	DB *gorm.DB

	stats statsCache
}

// Open connects to Postgres and migrates the schema.
func Open(cfg Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.New(
			log.Default(),
			logger.Config{
				SlowThreshold:             10 * time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "isbn_",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{DB: db}
	if err := s.AutoMigrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// AutoMigrate runs automatic migration for all models
func (s *Store) AutoMigrate() error {
	if err := s.DB.AutoMigrate(
		&Record{},
		&RecordIdentifier{},
		&Ingestion{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// sanitizeString removes null bytes which PostgreSQL rejects in text fields
func sanitizeString(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// sanitizeRecord returns a copy of record with null bytes removed from its text
// fields. The caller's languages slice is left untouched.
func sanitizeRecord(record Record) Record {
	record.ID = sanitizeString(record.ID)
	record.Title = sanitizeString(record.Title)
	record.Publisher = sanitizeString(record.Publisher)
	record.Author = sanitizeString(record.Author)

	languages := make(pq.StringArray, 0, len(record.Languages))
	for _, lang := range record.Languages {
		languages = append(languages, sanitizeString(lang))
	}
	record.Languages = languages
	record.Identifiers = nil
	return record
}

// UpsertRecord creates or updates a record together with both spellings of each of its ISBNs.
func (s *Store) UpsertRecord(ctx context.Context, record Record, isbns []isbn.ISBN) error {
	record = sanitizeRecord(record)

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "publisher", "author", "year", "languages", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to upsert record: %w", err)
		}

		identifiers := IdentifiersFor(record.ID, isbns)
		if len(identifiers) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record"}, {Name: "type"}, {Name: "value"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).Create(&identifiers).Error; err != nil {
			return fmt.Errorf("failed to upsert identifiers: %w", err)
		}
		return nil
	})
}

// LastIngestion returns the most recent ingestion, or nil when none was recorded.
func (s *Store) LastIngestion(ctx context.Context) (*Ingestion, error) {
	var ingestion Ingestion
	err := s.DB.WithContext(ctx).Order("date DESC").First(&ingestion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ingestion, nil
}

// RecordIngestion stores the outcome of an ingestion run.
func (s *Store) RecordIngestion(ctx context.Context, ingestion Ingestion) error {
	if ingestion.Date.IsZero() {
		ingestion.Date = time.Now()
	}
	ingestion.Source = sanitizeString(ingestion.Source)
	return s.DB.WithContext(ctx).Create(&ingestion).Error
}
