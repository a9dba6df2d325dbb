package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// RecordStore persists parsed records in a CSV file. It is the "external
// store" of the engine contract: it owns record identifiers and timestamps,
// while the parsing and analysis engines stay pure.
type RecordStore struct {
	FilePath string
}

// NewRecordStore creates a store backed by the given CSV file.
func NewRecordStore(filePath string) *RecordStore {
	return &RecordStore{FilePath: filePath}
}

// Load reads all records from the CSV file. A missing file yields an empty
// slice, not an error, so fresh working directories just work.
func (s *RecordStore) Load() ([]models.Record, error) {
	f, err := os.Open(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Record{}, nil
		}
		return nil, fmt.Errorf("error opening records file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warnf("Failed to close records file: %v", cerr)
		}
	}()

	var records []models.Record
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return []models.Record{}, nil
		}
		return nil, &parsererror.InvalidFormatError{FilePath: s.FilePath, Msg: err.Error()}
	}
	return records, nil
}

// Save writes the full record set to the CSV file, creating parent
// directories as needed.
func (s *RecordStore) Save(records []models.Record) error {
	if dir := filepath.Dir(s.FilePath); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating data directory: %w", err)
		}
	}

	f, err := os.Create(s.FilePath)
	if err != nil {
		return fmt.Errorf("error creating records file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warnf("Failed to close records file: %v", cerr)
		}
	}()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("error writing records CSV: %w", err)
	}
	return nil
}

// Append assigns an identifier and creation timestamp to the record and
// appends it to the stored set. Returns the stored record.
func (s *RecordStore) Append(record models.Record) (models.Record, error) {
	records, err := s.Load()
	if err != nil {
		return models.Record{}, err
	}

	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	records = append(records, record)
	if err := s.Save(records); err != nil {
		return models.Record{}, err
	}

	log.WithField("record_id", record.ID).Debug("Record appended to store")
	return record, nil
}
