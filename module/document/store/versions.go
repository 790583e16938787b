package store

import (
	"context"
	"sync"
	"time"

	"CollabSphere/module/document/model"
	"CollabSphere/tools/errs"
	"CollabSphere/tools/ids"
)

// VersionStore is the snapshot store. It wraps a VersionDB and serializes the
// read-max-then-insert of CreateVersion per document, so concurrent saves on
// the same document can never allocate duplicate version numbers.
type VersionStore struct {
	db   VersionDB
	docs DocumentDB

	mu       sync.Mutex
	docLocks map[string]*sync.Mutex
}

func NewVersionStore(db VersionDB, docs DocumentDB) *VersionStore {
	return &VersionStore{
		db:       db,
		docs:     docs,
		docLocks: make(map[string]*sync.Mutex),
	}
}

func (s *VersionStore) lockFor(documentID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.docLocks[documentID]
	if !ok {
		l = &sync.Mutex{}
		s.docLocks[documentID] = l
	}
	return l
}

// CreateVersion appends a snapshot numbered 1+max(existing) for the document.
func (s *VersionStore) CreateVersion(ctx context.Context, documentID, content, userID, snapshotType string) (*model.DocumentVersion, error) {
	l := s.lockFor(documentID)
	l.Lock()
	defer l.Unlock()

	max, err := s.db.MaxVersionNumber(ctx, documentID)
	if err != nil {
		return nil, err
	}
	v := &model.DocumentVersion{
		ID:            ids.GenerateString(),
		DocumentID:    documentID,
		Content:       content,
		CreatedBy:     userID,
		VersionNumber: max + 1,
		SnapshotType:  snapshotType,
		CreatedAt:     time.Now(),
	}
	if err := s.db.Insert(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ListVersions returns snapshots newest first, capped at limit.
func (s *VersionStore) ListVersions(ctx context.Context, documentID string, limit int64) ([]*model.DocumentVersion, error) {
	return s.db.List(ctx, documentID, limit)
}

// CleanupOldVersions trims retention: the keepCount most recent snapshots
// survive, the rest are deleted. Version numbers are never reallocated.
func (s *VersionStore) CleanupOldVersions(ctx context.Context, documentID string, keepCount int64) (int64, error) {
	if keepCount < 0 {
		keepCount = 0
	}
	return s.db.DeleteBeyond(ctx, documentID, keepCount)
}

// DeleteAllVersions removes every snapshot of a deleted document.
func (s *VersionStore) DeleteAllVersions(ctx context.Context, documentID string) error {
	return s.db.DeleteAll(ctx, documentID)
}

// Restore is deliberately two-step, not atomic: first a safety snapshot of
// the current content, then the overwrite. If the overwrite fails the
// document is unchanged and the extra snapshot is benign.
func (s *VersionStore) Restore(ctx context.Context, documentID, versionID, userID string) (*model.Document, error) {
	doc, err := s.docs.Find(ctx, documentID)
	if err != nil {
		return nil, err
	}
	v, err := s.db.Find(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if v.DocumentID != documentID {
		return nil, errs.ErrRecordNotFound.WrapMsg("version", "id", versionID, "document", documentID)
	}

	if _, err := s.CreateVersion(ctx, documentID, doc.Content, userID, model.SnapshotAuto); err != nil {
		return nil, err
	}
	if err := s.docs.Write(ctx, documentID, v.Content, userID); err != nil {
		return nil, err
	}
	return s.docs.Find(ctx, documentID)
}
