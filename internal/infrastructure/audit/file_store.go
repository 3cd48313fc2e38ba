package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// FileStore appends audit records to a jsonl file.
type FileStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the jsonl file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Save implements ports.AuditRepository.
func (f *FileStore) Save(record domain.AuditRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendLocked(record)
}

func (f *FileStore) appendLocked(records ...domain.AuditRecord) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Clear removes the audit file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Records returns entries newest first. search matches the utterance,
// domain, service or reason; limit <= 0 returns everything.
func (f *FileStore) Records(limit int, search string) ([]domain.AuditRecord, error) {
	f.mu.Lock()
	all, err := f.readLocked()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var records []domain.AuditRecord
	for i := len(all) - 1; i >= 0; i-- {
		if search != "" && !matches(all[i], search) {
			continue
		}
		records = append(records, all[i])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ExportJSON copies every record, newest first, to a jsonl file at dest.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// PruneOlderThan rewrites the file without records older than days. Zero
// or negative days keeps everything.
func (f *FileStore) PruneOlderThan(days int) error {
	if days <= 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.readLocked()
	if err != nil || len(all) == 0 {
		return err
	}
	cutoff := f.now().AddDate(0, 0, -days)
	kept := all[:0]
	for _, rec := range all {
		if !rec.Timestamp.Before(cutoff) {
			kept = append(kept, rec)
		}
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if len(kept) == 0 {
		return nil
	}
	return f.appendLocked(kept...)
}

func (f *FileStore) readLocked() ([]domain.AuditRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.AuditRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.AuditRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func matches(rec domain.AuditRecord, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{rec.Utterance, rec.Domain, rec.Service, rec.Reason} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func writeJSONL(dest string, records []domain.AuditRecord) error {
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.AuditRepository = (*FileStore)(nil)
