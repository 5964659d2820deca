package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/virattt/openbb-financialdatasets-backend/internal/model"
	_ "modernc.org/sqlite"
)

// Store records proxied requests for the usage report. The dashboard and
// widget configuration never touch the database; they stay read-only.
type Store struct {
	db     *sql.DB
	dbPath string
}

// New opens (or creates) the SQLite database and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite single-writer
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// DBPath returns the database file path.
func (s *Store) DBPath() string { return s.dbPath }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LogRequest records one proxied request.
func (s *Store) LogRequest(r *model.RequestLog) error {
	if r.Timestamp == 0 {
		r.Timestamp = time.Now().Unix()
	}
	_, err := s.db.Exec(
		"INSERT INTO request_log (timestamp, endpoint, status, duration_ms) VALUES (?, ?, ?, ?)",
		r.Timestamp, r.Endpoint, r.Status, r.DurationMS)
	return err
}

// UsageSummary aggregates the request log per endpoint.
func (s *Store) UsageSummary() ([]model.EndpointUsage, error) {
	rows, err := s.db.Query(`
		SELECT endpoint,
		       COUNT(*),
		       SUM(CASE WHEN status >= 400 THEN 1 ELSE 0 END),
		       AVG(duration_ms),
		       MAX(timestamp)
		FROM request_log
		GROUP BY endpoint
		ORDER BY endpoint`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.EndpointUsage
	for rows.Next() {
		var u model.EndpointUsage
		if err := rows.Scan(&u.Endpoint, &u.Requests, &u.Errors, &u.AvgDurationMS, &u.LastSeen); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// PurgeOlderThan deletes request log rows older than the given number of
// hours and returns how many were removed.
func (s *Store) PurgeOlderThan(hours int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour).Unix()
	res, err := s.db.Exec("DELETE FROM request_log WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
