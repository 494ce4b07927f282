package history

import (
	"database/sql"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"deepcheck/common/models"
)

// Store keeps the lightweight analysis log in a local sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens the history database at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS analysis_entries (
		id             TEXT PRIMARY KEY,
		timestamp      DATETIME NOT NULL,
		media_type     TEXT NOT NULL,
		source         TEXT NOT NULL DEFAULT '',
		confidence     REAL NOT NULL,
		is_manipulated INTEGER NOT NULL,
		classification TEXT NOT NULL,
		risk_level     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analysis_entries_timestamp ON analysis_entries(timestamp);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one analysis summary.
func (s *Store) Append(e models.AnalysisEntry) error {
	_, err := s.db.Exec(`INSERT INTO analysis_entries
		(id, timestamp, media_type, source, confidence, is_manipulated, classification, risk_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.UTC(), string(e.MediaType), e.Source,
		e.Confidence, e.IsManipulated, string(e.Classification), string(e.RiskLevel))
	return err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]models.AnalysisEntry, error) {
	rows, err := s.db.Query(`SELECT id, timestamp, media_type, source, confidence, is_manipulated, classification, risk_level
		FROM analysis_entries ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AnalysisEntry{}
	for rows.Next() {
		var e models.AnalysisEntry
		var mediaType, classification, riskLevel string
		if err := rows.Scan(&e.ID, &e.Timestamp, &mediaType, &e.Source,
			&e.Confidence, &e.IsManipulated, &classification, &riskLevel); err != nil {
			return nil, err
		}
		e.MediaType = models.MediaType(mediaType)
		e.Classification = models.Classification(classification)
		e.RiskLevel = models.RiskLevel(riskLevel)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// WriteCSV streams the full log, oldest first, as CSV with a header row.
func (s *Store) WriteCSV(w io.Writer) error {
	rows, err := s.db.Query(`SELECT id, timestamp, media_type, source, confidence, is_manipulated, classification, risk_level
		FROM analysis_entries ORDER BY timestamp ASC, id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	header := []string{"id", "timestamp", "media_type", "source", "confidence", "is_manipulated", "classification", "risk_level"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for rows.Next() {
		var (
			id, mediaType, source, classification, riskLevel string
			timestamp                                        time.Time
			confidence                                       float64
			manipulated                                      bool
		)
		if err := rows.Scan(&id, &timestamp, &mediaType, &source,
			&confidence, &manipulated, &classification, &riskLevel); err != nil {
			return err
		}
		record := []string{
			id,
			timestamp.UTC().Format(time.RFC3339),
			mediaType,
			source,
			strconv.FormatFloat(confidence, 'f', 2, 64),
			strconv.FormatBool(manipulated),
			classification,
			riskLevel,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
