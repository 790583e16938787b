package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthzReportsBackendState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", healthz)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["status"] != "ok" {
		t.Errorf("status field: %v", m["status"])
	}
	// neither backend is up in unit tests
	if m["mongo"] != false || m["redis"] != false {
		t.Errorf("backend flags: mongo=%v redis=%v", m["mongo"], m["redis"])
	}
}

func TestPresenceWithoutRecorderIs503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/presence/:userId", presence)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/presence/u1", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", w.Code)
	}
}

func TestNodeNumStaysInSnowflakeRange(t *testing.T) {
	for _, id := range []string{"collab_gw-1", "collab_gw-2", "", "a-very-long-node-name"} {
		n := nodeNum(id)
		if n < 0 || n > 1023 {
			t.Errorf("nodeNum(%q) = %d", id, n)
		}
	}
}
