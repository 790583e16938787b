package service

import (
	"context"

	"CollabSphere/module/document/model"
	"CollabSphere/module/document/store"
	"CollabSphere/tools/ids"
)

// Service is the REST-facing document layer. It shares the snapshot store
// with the realtime save path; both are last-writer-wins against the same
// document record.
type Service struct {
	docs          store.DocumentDB
	versions      *store.VersionStore
	versionsLimit int64
}

func NewService(docs store.DocumentDB, versions *store.VersionStore, versionsLimit int64) *Service {
	return &Service{docs: docs, versions: versions, versionsLimit: versionsLimit}
}

// Create inserts the document and records the initial manual snapshot.
func (s *Service) Create(ctx context.Context, title, content, userID string) (*model.Document, error) {
	if title == "" {
		title = "Untitled Document"
	}
	doc := &model.Document{
		ID:      ids.GenerateString(),
		Title:   title,
		Content: content,
		Owner:   userID,
	}
	if err := s.docs.Insert(ctx, doc); err != nil {
		return nil, err
	}
	if _, err := s.versions.CreateVersion(ctx, doc.ID, content, userID, model.SnapshotManual); err != nil {
		return nil, err
	}
	return s.docs.Find(ctx, doc.ID)
}

func (s *Service) Get(ctx context.Context, documentID string) (*model.Document, error) {
	return s.docs.Find(ctx, documentID)
}

// List returns the caller's documents, most recently updated first.
func (s *Service) List(ctx context.Context, userID string) ([]*model.Document, error) {
	return s.docs.ListByOwner(ctx, userID)
}

// Update applies a direct (non-realtime) partial update.
func (s *Service) Update(ctx context.Context, documentID string, title, content *string, userID string) (*model.Document, error) {
	if err := s.docs.Update(ctx, documentID, title, content, userID); err != nil {
		return nil, err
	}
	return s.docs.Find(ctx, documentID)
}

// Delete removes the document and all of its snapshots.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	if err := s.versions.DeleteAllVersions(ctx, documentID); err != nil {
		return err
	}
	return s.docs.Delete(ctx, documentID)
}

// Versions lists snapshot history, newest first, capped by policy.
func (s *Service) Versions(ctx context.Context, documentID string) ([]*model.DocumentVersion, error) {
	if _, err := s.docs.Find(ctx, documentID); err != nil {
		return nil, err
	}
	return s.versions.ListVersions(ctx, documentID, s.versionsLimit)
}

// Restore rolls the document back to a snapshot, preserving the pre-restore
// content as a new snapshot first.
func (s *Service) Restore(ctx context.Context, documentID, versionID, userID string) (*model.Document, error) {
	return s.versions.Restore(ctx, documentID, versionID, userID)
}
