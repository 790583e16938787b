package store

import (
	"context"

	"CollabSphere/module/document/model"
)

// DocumentDB is the document state accessor. Production implementation is
// Mongo; an in-memory implementation lives in db_mem.go.
type DocumentDB interface {
	Insert(ctx context.Context, doc *model.Document) error
	Find(ctx context.Context, documentID string) (*model.Document, error)
	// ListByOwner returns the owner's documents, most recently updated first.
	ListByOwner(ctx context.Context, owner string) ([]*model.Document, error)
	// Write overwrites the current content, attributing the edit.
	Write(ctx context.Context, documentID, content, editedBy string) error
	// Update applies a partial REST update (nil field = leave unchanged).
	Update(ctx context.Context, documentID string, title, content *string, editedBy string) error
	Delete(ctx context.Context, documentID string) error
}

// VersionDB stores immutable content snapshots.
type VersionDB interface {
	Insert(ctx context.Context, v *model.DocumentVersion) error
	Find(ctx context.Context, versionID string) (*model.DocumentVersion, error)
	// MaxVersionNumber returns 0 when the document has no versions yet.
	MaxVersionNumber(ctx context.Context, documentID string) (int64, error)
	// List returns versions newest first, capped at limit (<=0 means no cap).
	List(ctx context.Context, documentID string, limit int64) ([]*model.DocumentVersion, error)
	// DeleteBeyond removes every version except the keep most recent by
	// creation order. Returns the number of versions deleted.
	DeleteBeyond(ctx context.Context, documentID string, keep int64) (int64, error)
	DeleteAll(ctx context.Context, documentID string) error
}
