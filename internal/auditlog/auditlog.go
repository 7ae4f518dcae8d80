// Package auditlog is the append-only security log store that callers
// forward integrity reports to. The analysis engine never writes here
// itself; the store is a collaborator wired in by the caller.
package auditlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"integrityd/internal/policy"
)

// Schema for the audit record store. Records are append-only: there is no
// update or delete path.
const schema = `
CREATE TABLE IF NOT EXISTS audit_records (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    created_ns      INTEGER NOT NULL,
    document_id     TEXT NOT NULL,
    actor           TEXT NOT NULL,
    excerpt         TEXT NOT NULL,
    verdict         TEXT NOT NULL,
    report_json     TEXT NOT NULL,
    signature       BLOB
);

CREATE INDEX IF NOT EXISTS idx_audit_document ON audit_records(document_id, created_ns);
CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_records(created_ns);
`

// Record is one appended audit entry: the report plus the contextual
// metadata the caller supplies.
type Record struct {
	ID         int64
	CreatedAt  time.Time
	DocumentID string
	Actor      string
	Excerpt    string
	Verdict    policy.Verdict
	Report     policy.Report
	Signature  []byte
}

// Payload is the canonical byte serialization a Record is signed over.
func (r *Record) Payload() ([]byte, error) {
	reportJSON, err := json.Marshal(r.Report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return json.Marshal(struct {
		DocumentID string          `json:"document_id"`
		Actor      string          `json:"actor"`
		Excerpt    string          `json:"excerpt"`
		Report     json.RawMessage `json:"report"`
	}{r.DocumentID, r.Actor, r.Excerpt, reportJSON})
}

// Store is the SQLite audit record store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at the given path and applies
// the schema.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append inserts one audit record and returns its row ID.
func (s *Store) Append(rec *Record) (int64, error) {
	reportJSON, err := json.Marshal(rec.Report)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.Exec(
		`INSERT INTO audit_records (created_ns, document_id, actor, excerpt, verdict, report_json, signature)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UnixNano(), rec.DocumentID, rec.Actor, rec.Excerpt, string(rec.Verdict), string(reportJSON), rec.Signature,
	)
	if err != nil {
		return 0, fmt.Errorf("insert audit record: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, created_ns, document_id, actor, excerpt, verdict, report_json, signature
		 FROM audit_records ORDER BY created_ns DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ByDocument returns all records for one document, oldest first.
func (s *Store) ByDocument(documentID string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, created_ns, document_id, actor, excerpt, verdict, report_json, signature
		 FROM audit_records WHERE document_id = ? ORDER BY created_ns ASC, id ASC`, documentID)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var (
			rec        Record
			createdNs  int64
			verdict    string
			reportJSON string
		)
		if err := rows.Scan(&rec.ID, &createdNs, &rec.DocumentID, &rec.Actor, &rec.Excerpt, &verdict, &reportJSON, &rec.Signature); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		rec.CreatedAt = time.Unix(0, createdNs).UTC()
		rec.Verdict = policy.Verdict(verdict)
		if err := json.Unmarshal([]byte(reportJSON), &rec.Report); err != nil {
			return nil, fmt.Errorf("decode stored report: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
