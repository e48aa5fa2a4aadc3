package posts

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullJSON = `{"posts":[
  {"slug":"a","title":"A","category":"Recipes","date":"2024-01-02","excerpt":"first",
   "content":{"paragraphs":["p1","p2"],"ingredients":["salt"]}},
  {"slug":"b","title":"B","category":"Travel","date":"2024-03-04","excerpt":"second"}
]}`

const indexJSON = `{"posts":[{"slug":"a","title":"A","category":"Recipes","date":"2024-01-02"}],"count":1}`

func newDatasetServer(t *testing.T, indexStatus int) (*httptest.Server, *int) {
	t.Helper()
	fullHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(indexStatus)
		if indexStatus == http.StatusOK {
			w.Write([]byte(indexJSON))
		}
	})
	mux.HandleFunc("/posts.json", func(w http.ResponseWriter, r *http.Request) {
		fullHits++
		w.Write([]byte(fullJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &fullHits
}

func TestLoadIndex(t *testing.T) {
	srv, fullHits := newDatasetServer(t, http.StatusOK)
	l := NewLoader(Sources{Index: srv.URL + "/index.json", Full: srv.URL + "/posts.json"}, srv.Client(), nil)

	got, err := l.LoadIndex(t.Context())
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "a" {
		t.Errorf("LoadIndex returned %+v, want the single index post", got)
	}
	if *fullHits != 0 {
		t.Errorf("full dataset fetched %d times, want 0", *fullHits)
	}
}

func TestLoadIndexFallsBackOnHTTPError(t *testing.T) {
	srv, fullHits := newDatasetServer(t, http.StatusNotFound)
	l := NewLoader(Sources{Index: srv.URL + "/index.json", Full: srv.URL + "/posts.json"}, srv.Client(), nil)

	got, err := l.LoadIndex(t.Context())
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d posts, want 2 from the full dataset", len(got))
	}
	if *fullHits != 1 {
		t.Errorf("full dataset fetched %d times, want 1", *fullHits)
	}
	if got[0].Content == nil || len(got[0].Content.Paragraphs) != 2 {
		t.Errorf("full post content not decoded: %+v", got[0].Content)
	}
}

func TestLoadIndexFallsBackOnMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "index.json"), []byte("{not json"), 0o644)
	os.WriteFile(filepath.Join(dir, "posts.json"), []byte(fullJSON), 0o644)

	l := NewLoader(Sources{Index: "index.json", Full: "posts.json", BaseDir: dir}, nil, nil)
	got, err := l.LoadIndex(t.Context())
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d posts, want 2", len(got))
	}
}

func TestLoadFullHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := srv.URL + "/posts.json"
	l := NewLoader(Sources{Full: path}, srv.Client(), nil)
	got, err := l.LoadFull(t.Context())
	if len(got) != 0 {
		t.Errorf("LoadFull returned %d posts on failure, want 0", len(got))
	}

	var dsErr *DatasetError
	if !errors.As(err, &dsErr) {
		t.Fatalf("expected *DatasetError, got %T (%v)", err, err)
	}
	if dsErr.Path != path {
		t.Errorf("DatasetError.Path = %q, want %q", dsErr.Path, path)
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected wrapped *HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", httpErr.StatusCode)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should mention %q", err.Error(), path)
	}
}

func TestLoadIndexBothMissing(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(Sources{Index: "missing-index.json", Full: "missing.json", BaseDir: dir}, nil, nil)

	_, err := l.LoadIndex(t.Context())
	var dsErr *DatasetError
	if !errors.As(err, &dsErr) {
		t.Fatalf("expected *DatasetError, got %v", err)
	}
	if dsErr.Path != "missing.json" {
		t.Errorf("Path = %q, want the full dataset path", dsErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadMissingPostsKey(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "posts.json"), []byte(`{"count":3}`), 0o644)

	l := NewLoader(Sources{Full: "posts.json", BaseDir: dir}, nil, nil)
	got, err := l.LoadFull(t.Context())
	if err != nil {
		t.Fatalf("LoadFull: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestLoadEmptyIndexSourceUsesFull(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "posts.json"), []byte(fullJSON), 0o644)

	l := NewLoader(Sources{Full: filepath.Join(dir, "posts.json")}, nil, nil)
	got, err := l.LoadIndex(t.Context())
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d posts, want 2", len(got))
	}
}
