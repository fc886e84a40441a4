package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileCache stores raw API responses per word so repeated lookups never
// hit the network again.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{rootDir: cacheDirectory}
}

func (cache *FileCache) filePath(expression string) string {
	return filepath.Join(cache.rootDir, expression+".json")
}

func (cache *FileCache) cache(expression string, fetch func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(expression)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := os.ReadFile(localFilePath)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile(%s) > %w", localFilePath, err)
		}
		return contents, nil
	}

	contents, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("fetch(%s) > %w", expression, err)
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	if err := os.WriteFile(localFilePath, contents, 0644); err != nil {
		return contents, fmt.Errorf("os.WriteFile(%s) > %w", localFilePath, err)
	}
	return contents, nil
}
