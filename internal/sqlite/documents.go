package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Document is the JSON state of one local store.
type Document struct {
	Store     string
	Data      []byte
	UpdatedAt time.Time
}

// GetDocument returns the document of a store or ErrNotFound.
func (db *Database) GetDocument(ctx context.Context, store string) (Document, error) {
	var (
		doc       = Document{Store: store, Data: nil, UpdatedAt: time.Time{}}
		data      string
		updatedAt string
	)
	err := db.ReadOnly.QueryRowContext(ctx, `
		SELECT data, updated_at
		FROM store_documents
		WHERE store = ?`, store).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("query store document: %w", err)
	}
	doc.Data = []byte(data)
	if doc.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return Document{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return doc, nil
}

// PutDocument inserts or replaces the document of a store.
func (db *Database) PutDocument(ctx context.Context, doc Document) error {
	_, err := db.ReadWrite.ExecContext(ctx, `
		INSERT INTO store_documents (store, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (store) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		doc.Store, string(doc.Data), formatTimestamp(doc.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upsert store document: %w", err)
	}
	return nil
}
