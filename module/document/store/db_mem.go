package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"CollabSphere/module/document/model"
	"CollabSphere/tools/errs"
)

// MemDocumentDB is the in-memory document accessor used by tests and local
// runs without Mongo. FailWrites forces Write/Update to fail, which is how
// tests exercise the save-error path.
type MemDocumentDB struct {
	mu         sync.RWMutex
	docs       map[string]*model.Document
	FailWrites bool
}

func NewMemDocumentDB() *MemDocumentDB {
	return &MemDocumentDB{docs: make(map[string]*model.Document)}
}

func (db *MemDocumentDB) Insert(ctx context.Context, doc *model.Document) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := time.Now()
	cp := *doc
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	db.docs[cp.ID] = &cp
	return nil
}

func (db *MemDocumentDB) Find(ctx context.Context, documentID string) (*model.Document, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	doc, ok := db.docs[documentID]
	if !ok {
		return nil, errs.ErrRecordNotFound.WrapMsg("document", "id", documentID)
	}
	cp := *doc
	return &cp, nil
}

func (db *MemDocumentDB) ListByOwner(ctx context.Context, owner string) ([]*model.Document, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []*model.Document
	for _, doc := range db.docs {
		if doc.Owner != owner {
			continue
		}
		cp := *doc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (db *MemDocumentDB) Write(ctx context.Context, documentID, content, editedBy string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.FailWrites {
		return errs.ErrPersistence.WrapMsg("write document", "id", documentID)
	}
	doc, ok := db.docs[documentID]
	if !ok {
		return errs.ErrRecordNotFound.WrapMsg("document", "id", documentID)
	}
	doc.Content = content
	doc.LastEditedBy = editedBy
	doc.UpdatedAt = time.Now()
	return nil
}

func (db *MemDocumentDB) Update(ctx context.Context, documentID string, title, content *string, editedBy string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.FailWrites {
		return errs.ErrPersistence.WrapMsg("update document", "id", documentID)
	}
	doc, ok := db.docs[documentID]
	if !ok {
		return errs.ErrRecordNotFound.WrapMsg("document", "id", documentID)
	}
	if title != nil {
		doc.Title = *title
	}
	if content != nil {
		doc.Content = *content
	}
	doc.LastEditedBy = editedBy
	doc.UpdatedAt = time.Now()
	return nil
}

func (db *MemDocumentDB) Delete(ctx context.Context, documentID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.docs[documentID]; !ok {
		return errs.ErrRecordNotFound.WrapMsg("document", "id", documentID)
	}
	delete(db.docs, documentID)
	return nil
}

// MemVersionDB keeps versions per document in insertion order, which is also
// creation order because inserts are serialized by the version store.
type MemVersionDB struct {
	mu          sync.RWMutex
	byDoc       map[string][]*model.DocumentVersion
	byID        map[string]*model.DocumentVersion
	FailInserts bool
}

func NewMemVersionDB() *MemVersionDB {
	return &MemVersionDB{
		byDoc: make(map[string][]*model.DocumentVersion),
		byID:  make(map[string]*model.DocumentVersion),
	}
}

func (db *MemVersionDB) Insert(ctx context.Context, v *model.DocumentVersion) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.FailInserts {
		return errs.ErrPersistence.WrapMsg("insert version", "document", v.DocumentID)
	}
	cp := *v
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	db.byDoc[cp.DocumentID] = append(db.byDoc[cp.DocumentID], &cp)
	db.byID[cp.ID] = &cp
	return nil
}

func (db *MemVersionDB) Find(ctx context.Context, versionID string) (*model.DocumentVersion, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	v, ok := db.byID[versionID]
	if !ok {
		return nil, errs.ErrRecordNotFound.WrapMsg("version", "id", versionID)
	}
	cp := *v
	return &cp, nil
}

func (db *MemVersionDB) MaxVersionNumber(ctx context.Context, documentID string) (int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var max int64
	for _, v := range db.byDoc[documentID] {
		if v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max, nil
}

func (db *MemVersionDB) List(ctx context.Context, documentID string, limit int64) ([]*model.DocumentVersion, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	vs := db.byDoc[documentID]
	out := make([]*model.DocumentVersion, 0, len(vs))
	// newest first = reverse insertion order
	for i := len(vs) - 1; i >= 0; i-- {
		cp := *vs[i]
		out = append(out, &cp)
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (db *MemVersionDB) DeleteBeyond(ctx context.Context, documentID string, keep int64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	vs := db.byDoc[documentID]
	if int64(len(vs)) <= keep {
		return 0, nil
	}
	cut := int64(len(vs)) - keep
	stale := vs[:cut]
	for _, v := range stale {
		delete(db.byID, v.ID)
	}
	db.byDoc[documentID] = append([]*model.DocumentVersion(nil), vs[cut:]...)
	return cut, nil
}

func (db *MemVersionDB) DeleteAll(ctx context.Context, documentID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, v := range db.byDoc[documentID] {
		delete(db.byID, v.ID)
	}
	delete(db.byDoc, documentID)
	return nil
}
