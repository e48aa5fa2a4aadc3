package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// HTTPError represents a non-success HTTP response for a dataset resource.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// DatasetError reports that the full dataset could not be loaded.
// Path is the resource that was attempted.
type DatasetError struct {
	Path string
	Err  error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("loading posts from %s: %v", e.Path, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }

// Sources names the two dataset resources. Local paths are resolved
// against BaseDir; http and https URLs are fetched.
type Sources struct {
	Index   string
	Full    string
	BaseDir string
}

// Loader fetches the post dataset.
type Loader struct {
	src    Sources
	client *http.Client
	logger *zap.Logger
}

// NewLoader creates a Loader. A nil client uses a default http.Client and a
// nil logger discards output.
func NewLoader(src Sources, client *http.Client, logger *zap.Logger) *Loader {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		src:    src,
		client: client,
		logger: logger.Named("loader"),
	}
}

// Sources returns the configured resources.
func (l *Loader) Sources() Sources { return l.src }

// LoadIndex loads the lightweight index. Any failure falls back to the full
// dataset.
func (l *Loader) LoadIndex(ctx context.Context) ([]Post, error) {
	if l.src.Index == "" {
		return l.LoadFull(ctx)
	}
	all, err := l.fetch(ctx, l.src.Index)
	if err == nil {
		return all, nil
	}
	l.logger.Warn("index unavailable, falling back to full dataset",
		zap.String("path", l.src.Index),
		zap.Error(err))
	return l.LoadFull(ctx)
}

// LoadFull loads the full dataset. On failure it returns no posts and a
// *DatasetError naming the attempted path.
func (l *Loader) LoadFull(ctx context.Context) ([]Post, error) {
	all, err := l.fetch(ctx, l.src.Full)
	if err != nil {
		l.logger.Error("full dataset unavailable", zap.String("path", l.src.Full), zap.Error(err))
		return nil, &DatasetError{Path: l.src.Full, Err: err}
	}
	return all, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]Post, error) {
	if source == "" {
		return nil, fmt.Errorf("no dataset source configured")
	}

	var data []byte
	var err error
	if isRemote(source) {
		data, err = l.fetchRemote(ctx, source)
	} else {
		data, err = os.ReadFile(l.localPath(source))
	}
	if err != nil {
		return nil, err
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	if ds.Posts == nil {
		ds.Posts = []Post{}
	}
	l.logger.Debug("dataset loaded", zap.String("path", source), zap.Int("posts", len(ds.Posts)))
	return ds.Posts, nil
}

func (l *Loader) fetchRemote(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", source, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: source}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return body, nil
}

func (l *Loader) localPath(source string) string {
	source = strings.TrimPrefix(source, "file://")
	if filepath.IsAbs(source) || l.src.BaseDir == "" {
		return source
	}
	return filepath.Join(l.src.BaseDir, filepath.FromSlash(source))
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
