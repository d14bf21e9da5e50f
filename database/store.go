package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ErrNoDocument is returned when a document id resolves to no record.
var ErrNoDocument = errors.New("document not found")

// Document is a stored record together with its opaque key, the shape list
// endpoints return to clients.
type Document struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// Decode unmarshals the document body into a typed value.
func (d *Document) Decode(v any) error {
	raw, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", d.ID, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.ID, err)
	}
	return nil
}

// Filter is an equality filter on a top-level document field.
type Filter struct {
	Field string
	Value any
}

// Store is a JSON document store over SQLite. Each collection is a table of
// (id, data, created_at) rows; documents are atomic per row and there are no
// cross-document transactions.
type Store struct {
	db *sql.DB
}

// NewStore creates a document store over an initialized database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle, mainly for shutdown.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Field names are interpolated into json_extract paths, so restrict them to
// plain identifiers.
var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

var collectionNames = func() map[string]bool {
	names := make(map[string]bool, len(Collections))
	for _, c := range Collections {
		names[c] = true
	}
	return names
}()

func checkCollection(collection string) error {
	if !collectionNames[collection] {
		return fmt.Errorf("unknown collection: %s", collection)
	}
	return nil
}

// Add stores a new document under a generated key and returns the key. The
// creation timestamp is stamped server-side into both the createdAt field of
// the document and the created_at column.
func (s *Store) Add(ctx context.Context, collection string, doc any) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	query := fmt.Sprintf(
		"INSERT INTO %s (id, data, created_at) VALUES (?, json_set(?, '$.createdAt', ?), ?)",
		collection,
	)
	_, err = s.db.ExecContext(ctx, query, id, string(data), now.Format(time.RFC3339), now)
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}

	return id, nil
}

// Get fetches a document by id. Returns ErrNoDocument when the id resolves
// to no record.
func (s *Store) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT data FROM %s WHERE id = ?", collection)

	var raw string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to get document from %s: %w", collection, err)
	}

	doc := &Document{ID: id}
	if err := json.Unmarshal([]byte(raw), &doc.Data); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}

	return doc, nil
}

// Query returns documents matching all equality filters, ordered ascending by
// the given field, capped at limit. An orderBy of "createdAt" sorts on the
// server-assigned creation time.
func (s *Store) Query(ctx context.Context, collection string, filters []Filter, orderBy string, limit int) ([]Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, data FROM %s", collection)
	args := []any{}

	for i, f := range filters {
		if !fieldNamePattern.MatchString(f.Field) {
			return nil, fmt.Errorf("invalid filter field: %s", f.Field)
		}
		if i == 0 {
			query += " WHERE "
		} else {
			query += " AND "
		}
		query += fmt.Sprintf("json_extract(data, '$.%s') = ?", f.Field)
		args = append(args, f.Value)
	}

	if orderBy != "" {
		if !fieldNamePattern.MatchString(orderBy) {
			return nil, fmt.Errorf("invalid order field: %s", orderBy)
		}
		if orderBy == "createdAt" {
			query += " ORDER BY created_at ASC, rowid ASC"
		} else {
			query += fmt.Sprintf(" ORDER BY json_extract(data, '$.%s') ASC", orderBy)
		}
	}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var raw string
		if err := rows.Scan(&doc.ID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &doc.Data); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", doc.ID, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", collection, err)
	}

	return docs, nil
}

// Set applies a merge write: fields present in the patch overwrite the stored
// value, everything else is left untouched. This is never a replace.
func (s *Store) Set(ctx context.Context, collection, id string, patch map[string]any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if len(patch) == 0 {
		// Nothing to merge; still report a missing document.
		_, err := s.Get(ctx, collection, id)
		return err
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}

	query := fmt.Sprintf("UPDATE %s SET data = json_patch(data, ?) WHERE id = ?", collection)
	result, err := s.db.ExecContext(ctx, query, string(data), id)
	if err != nil {
		return fmt.Errorf("failed to update document in %s: %w", collection, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNoDocument
	}

	return nil
}

// Delete removes a document by id. Returns ErrNoDocument when nothing was
// deleted.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", collection)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete document from %s: %w", collection, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNoDocument
	}

	return nil
}

// Count returns the number of documents matching the filters. Used by
// uniqueness preconditions; the check and the subsequent write are separate
// round-trips, so a concurrent duplicate can still slip through.
func (s *Store) Count(ctx context.Context, collection string, filters []Filter) (int, error) {
	docs, err := s.Query(ctx, collection, filters, "", 0)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
