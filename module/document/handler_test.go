package document

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CollabSphere/global/config"
	mwsecurity "CollabSphere/middleware/security"
	"CollabSphere/module/document/model"
	"CollabSphere/module/document/service"
	"CollabSphere/module/document/store"
	"CollabSphere/tools/security"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemDocumentDB, *store.VersionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docs := store.NewMemDocumentDB()
	versions := store.NewVersionStore(store.NewMemVersionDB(), docs)
	svc := service.NewService(docs, versions, 20)

	r := gin.New()
	api := r.Group("/api", mwsecurity.Middleware(mwsecurity.DefaultOptions()))
	NewHandler(svc).RegisterRoutes(api.Group("/documents"))
	return r, docs, versions
}

func authToken(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := security.Generate(security.DefaultOptions(config.GetJwtSecret()), userID)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	r, _, _ := newTestRouter(t)
	if w := do(t, r, http.MethodGet, "/api/documents/doc1", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/documents/doc1", "bogus.token.here", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d", w.Code)
	}
}

func TestCreateWritesInitialManualVersion(t *testing.T) {
	r, _, versions := newTestRouter(t)
	token := authToken(t, "u1")

	w := do(t, r, http.MethodPost, "/api/documents", token, gin.H{"title": "Notes", "content": "hello"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	doc := resp["document"].(map[string]any)
	if doc["title"] != "Notes" || doc["owner"] != "u1" {
		t.Errorf("created document: %v", doc)
	}

	vs, err := versions.ListVersions(context.Background(), doc["id"].(string), 0)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(vs) != 1 || vs[0].SnapshotType != model.SnapshotManual || vs[0].VersionNumber != 1 {
		t.Errorf("initial snapshot: %+v", vs)
	}
}

func TestCreateDefaultsTitle(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/documents", authToken(t, "u1"), gin.H{"content": ""})
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d", w.Code)
	}
	doc := decode(t, w)["document"].(map[string]any)
	if doc["title"] != "Untitled Document" {
		t.Errorf("default title: %v", doc["title"])
	}
}

func TestListReturnsOwnDocumentsNewestFirst(t *testing.T) {
	r, docs, _ := newTestRouter(t)
	ctx := context.Background()
	docs.Insert(ctx, &model.Document{ID: "doc1", Title: "first", Owner: "u1"})
	docs.Insert(ctx, &model.Document{ID: "doc2", Title: "second", Owner: "u1"})
	docs.Insert(ctx, &model.Document{ID: "doc3", Title: "other", Owner: "u2"})
	// freshen doc1 so it sorts ahead of doc2
	title := "first updated"
	docs.Update(ctx, "doc1", &title, nil, "u1")

	w := do(t, r, http.MethodGet, "/api/documents", authToken(t, "u1"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	list := decode(t, w)["documents"].([]any)
	if len(list) != 2 {
		t.Fatalf("want 2 owned documents, got %d", len(list))
	}
	if list[0].(map[string]any)["id"] != "doc1" {
		t.Errorf("not newest first: %v", list[0])
	}
	for _, d := range list {
		if d.(map[string]any)["owner"] != "u1" {
			t.Errorf("foreign document in listing: %v", d)
		}
	}
}

func TestListWithNoDocumentsIsEmptyArray(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/documents", authToken(t, "u9"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	list, ok := decode(t, w)["documents"].([]any)
	if !ok {
		t.Fatalf("documents must be an array, body %s", w.Body.String())
	}
	if len(list) != 0 {
		t.Errorf("want empty listing, got %d", len(list))
	}
}

func TestGetUnknownDocumentIs404(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/documents/ghost", authToken(t, "u1"), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status %d", w.Code)
	}
	if resp := decode(t, w); resp["success"] != false {
		t.Errorf("body: %v", resp)
	}
}

func TestUpdateIsPartial(t *testing.T) {
	r, docs, _ := newTestRouter(t)
	docs.Insert(context.Background(), &model.Document{ID: "doc1", Title: "old", Content: "body", Owner: "u1"})
	token := authToken(t, "u2")

	w := do(t, r, http.MethodPut, "/api/documents/doc1", token, gin.H{"title": "new title"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	doc := decode(t, w)["document"].(map[string]any)
	if doc["title"] != "new title" || doc["content"] != "body" {
		t.Errorf("partial update: %v", doc)
	}
	if doc["lastEditedBy"] != "u2" {
		t.Errorf("attribution: %v", doc["lastEditedBy"])
	}
}

func TestDeleteRemovesDocumentAndHistory(t *testing.T) {
	r, docs, versions := newTestRouter(t)
	ctx := context.Background()
	docs.Insert(ctx, &model.Document{ID: "doc1", Content: "x", Owner: "u1"})
	versions.CreateVersion(ctx, "doc1", "x", "u1", model.SnapshotAuto)
	token := authToken(t, "u1")

	w := do(t, r, http.MethodDelete, "/api/documents/doc1", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if _, err := docs.Find(ctx, "doc1"); err == nil {
		t.Error("document still present after delete")
	}
	vs, _ := versions.ListVersions(ctx, "doc1", 0)
	if len(vs) != 0 {
		t.Errorf("history survived delete: %d", len(vs))
	}
}

func TestVersionsListAndRestore(t *testing.T) {
	r, docs, versions := newTestRouter(t)
	ctx := context.Background()
	docs.Insert(ctx, &model.Document{ID: "doc1", Content: "v3", Owner: "u1"})
	v1, _ := versions.CreateVersion(ctx, "doc1", "v1", "u1", model.SnapshotManual)
	versions.CreateVersion(ctx, "doc1", "v2", "u1", model.SnapshotAuto)
	versions.CreateVersion(ctx, "doc1", "v3", "u1", model.SnapshotAuto)
	token := authToken(t, "u1")

	w := do(t, r, http.MethodGet, "/api/documents/doc1/versions", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	vs := decode(t, w)["versions"].([]any)
	if len(vs) != 3 {
		t.Fatalf("want 3 versions, got %d", len(vs))
	}
	if vs[0].(map[string]any)["versionNumber"].(float64) != 3 {
		t.Errorf("not newest first: %v", vs[0])
	}

	w = do(t, r, http.MethodPost, "/api/documents/doc1/versions/"+v1.ID+"/restore", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("restore status %d body %s", w.Code, w.Body.String())
	}
	doc := decode(t, w)["document"].(map[string]any)
	if doc["content"] != "v1" {
		t.Errorf("restored content: %v", doc["content"])
	}

	// the pre-restore safety snapshot pushes history to 4 entries
	w = do(t, r, http.MethodGet, "/api/documents/doc1/versions", token, nil)
	if got := len(decode(t, w)["versions"].([]any)); got != 4 {
		t.Errorf("history after restore: %d", got)
	}
}

func TestRestoreForeignVersionIs404(t *testing.T) {
	r, docs, versions := newTestRouter(t)
	ctx := context.Background()
	docs.Insert(ctx, &model.Document{ID: "doc1", Content: "a", Owner: "u1"})
	docs.Insert(ctx, &model.Document{ID: "doc2", Content: "b", Owner: "u1"})
	foreign, _ := versions.CreateVersion(ctx, "doc2", "b", "u1", model.SnapshotAuto)

	w := do(t, r, http.MethodPost, "/api/documents/doc1/versions/"+foreign.ID+"/restore", authToken(t, "u1"), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status %d", w.Code)
	}
}
