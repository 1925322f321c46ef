package get

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/gqlchat"
	"github.com/google/go-cmp/cmp"
)

func TestHandler(t *testing.T) {
	w := httptest.NewRecorder()
	New([]string{"llama3.2"}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var actual Response
	if err := json.Unmarshal(w.Body.Bytes(), &actual); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	expected := Response{
		Status:  "ok",
		Version: gqlchat.Version,
		Models:  []string{"llama3.2"},
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Error(diff)
	}
}
