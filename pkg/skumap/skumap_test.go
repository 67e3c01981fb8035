package skumap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storewatch/pkg/logger"
)

func init() {
	_ = logger.InitLogger(true, "", "error")
}

func TestFetchSelectedLabels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"files": {"models.json": {"content": "{\"models\": [\"256-orange-pro\", \"512-blue-pro\"]}"}}}`))
	}))
	defer srv.Close()

	labels, err := NewClient(srv.URL).FetchSelectedLabels(context.Background())
	if err != nil {
		t.Fatalf("FetchSelectedLabels failed: %v", err)
	}
	if len(labels) != 2 || labels[0] != "256-orange-pro" {
		t.Fatalf("Unexpected labels: %v", labels)
	}
}

func TestFetchSelectedLabelsEmptyURL(t *testing.T) {
	labels, err := NewClient("").FetchSelectedLabels(context.Background())
	if err != nil {
		t.Fatalf("Empty URL must not error: %v", err)
	}
	if labels != nil {
		t.Fatalf("Expected no labels, got %v", labels)
	}
}

func TestFetchSelectedLabelsMissingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"files": {"other.json": {"content": "{}"}}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchSelectedLabels(context.Background())
	if !errors.Is(err, ErrGistFormat) {
		t.Fatalf("Expected ErrGistFormat, got %v", err)
	}
}

func TestFetchSelectedLabelsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchSelectedLabels(context.Background())
	if !errors.Is(err, ErrGistUnavailable) {
		t.Fatalf("Expected ErrGistUnavailable, got %v", err)
	}
}
