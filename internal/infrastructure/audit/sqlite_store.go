package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// storedTimestamp sorts lexically in chronological order once in UTC.
const storedTimestamp = "2006-01-02T15:04:05.000Z"

// SQLiteStore persists audit records in a SQLite database. When the
// database cannot be opened it falls back to a jsonl FileStore beside it.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	now      func() time.Time
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	store := &SQLiteStore{path: path, now: time.Now}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err == nil {
		store.db = db
		err = store.init()
	}
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		store.db = nil
		store.fallback = NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS audit (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		conversation_id TEXT,
		utterance TEXT,
		domain TEXT,
		action TEXT,
		service TEXT,
		outcome TEXT NOT NULL,
		reason TEXT,
		duration_ms REAL
	);`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS audit_timestamp ON audit(timestamp);`)
	return err
}

// Degraded reports whether the store fell back to a jsonl file.
func (s *SQLiteStore) Degraded() bool {
	return s.db == nil
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.AuditRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO audit
		(timestamp, conversation_id, utterance, domain, action, service, outcome, reason, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.UTC().Format(storedTimestamp),
		record.ConversationID,
		record.Utterance,
		record.Domain,
		record.Action,
		record.Service,
		string(record.Outcome),
		record.Reason,
		record.DurationMS,
	)
	return err
}

// Records returns audit entries newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.AuditRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, conversation_id, utterance, domain, action, service, outcome, reason, duration_ms FROM audit")
	var args []interface{}
	if search != "" {
		like := "%" + search + "%"
		builder.WriteString(" WHERE utterance LIKE ? OR domain LIKE ? OR service LIKE ? OR reason LIKE ?")
		args = append(args, like, like, like, like)
	}
	builder.WriteString(" ORDER BY timestamp DESC, id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var ts, outcome string
		if err := rows.Scan(&ts, &rec.ConversationID, &rec.Utterance, &rec.Domain, &rec.Action, &rec.Service, &outcome, &rec.Reason, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(storedTimestamp, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Outcome = domain.AuditOutcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all audit entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM audit")
	return err
}

// ExportJSON writes the audit table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// PruneOlderThan deletes entries older than days. Zero or negative days
// keeps everything.
func (s *SQLiteStore) PruneOlderThan(days int) error {
	if days <= 0 {
		return nil
	}
	if s.db == nil {
		return s.fallback.PruneOlderThan(days)
	}
	cutoff := s.now().AddDate(0, 0, -days).UTC().Format(storedTimestamp)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM audit WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("prune audit: %w", err)
	}
	return nil
}

// Path returns the sqlite database path, or the fallback file path.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ ports.AuditRepository = (*SQLiteStore)(nil)
