package site

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ziadkadry99/blogrender/internal/posts"
)

// IndexFile is the name of the lightweight index written next to the pages.
const IndexFile = "posts-index.json"

// BuildIndex abbreviates every post to its card fields.
func BuildIndex(all []posts.Post) posts.Dataset {
	entries := make([]posts.Post, len(all))
	for i, p := range all {
		entries[i] = posts.Abbreviate(p)
	}
	return posts.Dataset{Posts: entries, Count: len(entries)}
}

// WriteIndex writes the index as JSON to the given path.
func WriteIndex(ds posts.Dataset, outputPath string) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
