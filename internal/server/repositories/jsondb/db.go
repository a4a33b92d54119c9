// Package jsondb keeps users and tasks in a single JSON document persisted
// through a Blob (memory, local file or S3 object).
//
// All writes go through one lock. A mutation is applied to a copy of the
// document, persisted, and only then made visible to readers, so a failed
// write leaves the in-memory state untouched.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

// Blob stores the raw document bytes.
type Blob interface {
	// Read returns the stored bytes, or nil and no error when nothing has
	// been stored yet.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored bytes.
	Write(ctx context.Context, data []byte) error
}

// Document is the persisted layout: two collections keyed by record id.
type Document struct {
	Users map[string]*models.User `json:"users"`
	Tasks map[string]*models.Task `json:"tasks"`
}

func newDocument() *Document {
	return &Document{
		Users: map[string]*models.User{},
		Tasks: map[string]*models.Task{},
	}
}

func (d *Document) clone() *Document {
	c := &Document{
		Users: make(map[string]*models.User, len(d.Users)),
		Tasks: make(map[string]*models.Task, len(d.Tasks)),
	}
	for id, u := range d.Users {
		cp := *u
		c.Users[id] = &cp
	}
	for id, t := range d.Tasks {
		cp := *t
		c.Tasks[id] = &cp
	}
	return c
}

// DB is the single-writer document store.
type DB struct {
	mu   sync.RWMutex
	wmu  sync.Mutex
	blob Blob
	doc  *Document
}

// Open loads the document from blob. A missing document is initialised
// with empty collections and written back immediately.
func Open(ctx context.Context, blob Blob) (*DB, error) {
	data, err := blob.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	db := &DB{blob: blob, doc: newDocument()}

	if data == nil {
		if err := db.persist(ctx, db.doc); err != nil {
			return nil, err
		}
		return db, nil
	}

	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	// a document written by hand may omit a collection
	if doc.Users == nil {
		doc.Users = map[string]*models.User{}
	}
	if doc.Tasks == nil {
		doc.Tasks = map[string]*models.Task{}
	}
	db.doc = doc

	return db, nil
}

// View runs fn against the current document. fn must not modify it or keep
// references to it after returning.
func (db *DB) View(fn func(doc *Document) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn(db.doc)
}

// Update runs fn against a private copy of the document. If fn succeeds the
// copy is persisted and replaces the current document. Updates are
// serialised; readers keep seeing the previous state until the write lands.
func (db *DB) Update(ctx context.Context, fn func(doc *Document) error) error {
	db.wmu.Lock()
	defer db.wmu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.RLock()
	next := db.doc.clone()
	db.mu.RUnlock()

	if err := fn(next); err != nil {
		return err
	}

	if err := db.persist(ctx, next); err != nil {
		return err
	}

	db.mu.Lock()
	db.doc = next
	db.mu.Unlock()

	return nil
}

func (db *DB) persist(ctx context.Context, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := db.blob.Write(ctx, data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
