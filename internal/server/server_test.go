package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/blogrender/internal/carousel"
	"github.com/ziadkadry99/blogrender/internal/page"
	"github.com/ziadkadry99/blogrender/internal/posts"
	"github.com/ziadkadry99/blogrender/internal/site"
)

const dataset = `{"posts":[
 {"slug":"lemon-tart","title":"Lemon Tart","category":"Recipes","date":"2024-04-01","excerpt":"Bright.","content":{"paragraphs":["One.","Two."]}},
 {"slug":"road-trip","title":"Road Trip","category":"Travel","date":"2024-03-01","excerpt":"Far."}
]}`

func newTestServer(t *testing.T, full string, allowAll bool) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "posts.json"), []byte(dataset), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *"), 0o644); err != nil {
		t.Fatal(err)
	}
	loader := posts.NewLoader(posts.Sources{Full: full, BaseDir: dir}, nil, nil)
	ctrl := page.New(loader, page.Options{SiteName: "Test"}, nil)
	live := carousel.NewLive(loader, 5, time.Hour, nil)
	return New(Config{SiteDir: dir, AllowAll: allowAll}, ctrl, site.Shells{Index: site.IndexShell, Post: site.PostShell}, loader, live, nil)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, "posts.json", false)

	w := get(t, srv, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, "posts.json", true)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestIndexPage(t *testing.T) {
	w := get(t, newTestServer(t, "posts.json", false), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	if strings.Count(body, `class="post-card"`) != 2 {
		t.Errorf("expected 2 cards:\n%s", body)
	}
	if !strings.Contains(body, `href="#recipes"`) {
		t.Error("sidebar categories missing")
	}
}

func TestPostRoutes(t *testing.T) {
	srv := newTestServer(t, "posts.json", false)
	for _, target := range []string{"/posts/lemon-tart/", "/posts/lemon-tart", "/post.html?slug=lemon-tart"} {
		w := get(t, srv, target)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, w.Code)
			continue
		}
		body := w.Body.String()
		if !strings.Contains(body, "<title>Lemon Tart | Test</title>") {
			t.Errorf("%s: title not set", target)
		}
		if !strings.Contains(body, `data-slug="lemon-tart"`) {
			t.Errorf("%s: post body missing", target)
		}
	}
}

func TestPostNotFound(t *testing.T) {
	srv := newTestServer(t, "posts.json", false)

	w := get(t, srv, "/posts/missing/")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown slug: expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Post not found (Slug mismatch)") {
		t.Error("unknown slug message missing")
	}

	w = get(t, srv, "/post.html")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing slug: expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Post not found (No slug provided)") {
		t.Error("missing slug message missing")
	}
}

func TestDatasetUnavailable(t *testing.T) {
	w := get(t, newTestServer(t, "nowhere.json", false), "/")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "nowhere.json") {
		t.Error("error block should name the attempted path")
	}
}

func TestIndexJSON(t *testing.T) {
	w := get(t, newTestServer(t, "posts.json", false), "/"+site.IndexFile)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var ds posts.Dataset
	if err := json.Unmarshal(w.Body.Bytes(), &ds); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ds.Count != 2 || ds.Posts[0].Content != nil {
		t.Errorf("unexpected index: %+v", ds)
	}
}

func TestStaticFiles(t *testing.T) {
	w := get(t, newTestServer(t, "posts.json", false), "/robots.txt")
	if w.Code != http.StatusOK || w.Body.String() != "User-agent: *" {
		t.Errorf("static file: %d %q", w.Code, w.Body.String())
	}
}

func TestCarouselOriginPolicy(t *testing.T) {
	dial := func(t *testing.T, allowAll bool, origin string) (int, error) {
		t.Helper()
		ts := httptest.NewServer(newTestServer(t, "posts.json", allowAll).Router())
		defer ts.Close()
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/carousel"
		conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {origin}})
		if err != nil {
			if resp == nil {
				return 0, err
			}
			return resp.StatusCode, err
		}
		conn.Close()
		return resp.StatusCode, nil
	}

	for _, tc := range []struct {
		name     string
		allowAll bool
		origin   string
		wantOK   bool
	}{
		{"localhost", false, "http://localhost:3000", true},
		{"loopback ip", false, "http://127.0.0.1:9999", true},
		{"foreign", false, "http://evil.example", false},
		{"foreign allowed in dev mode", true, "http://evil.example", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			status, err := dial(t, tc.allowAll, tc.origin)
			if tc.wantOK {
				if err != nil || status != http.StatusSwitchingProtocols {
					t.Errorf("expected upgrade, got %d: %v", status, err)
				}
				return
			}
			if status != http.StatusForbidden {
				t.Errorf("expected 403, got %d: %v", status, err)
			}
		})
	}
}

func TestOriginAllowedSameHost(t *testing.T) {
	srv := newTestServer(t, "posts.json", false)
	req := httptest.NewRequest("GET", "http://blog.example.com/ws/carousel", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	if !srv.originAllowed(req) {
		t.Error("same-host origin should be allowed")
	}
	req.Header.Set("Origin", "https://other.example.com")
	if srv.originAllowed(req) {
		t.Error("foreign origin should be rejected")
	}
}
