package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lgarreta/ecuapassdocs/constants"
)

type DirStats struct {
	Scanned  uint32
	Matched  uint32
	Uncached uint32 // source documents without a cached analysis result
}

// ListDocuments walks root and returns the cached analysis results found,
// sorted by path. Source documents (.pdf, .png) with no cache next to them are
// returned separately; they need the analysis call first.
func ListDocuments(root string, skipHidden bool) (cached, uncached []string, stats DirStats, err error) {
	if strings.TrimSpace(root) == "" {
		return nil, nil, stats, errors.New("root path is required")
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		switch {
		case constants.IsCacheFile(path):
			stats.Matched++
			cached = append(cached, path)
		case constants.IsValidDocument(path):
			if _, statErr := os.Stat(constants.SiblingPath(path, constants.CacheSuffix)); statErr != nil {
				stats.Uncached++
				uncached = append(uncached, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, stats, fmt.Errorf("walk: %w", err)
	}
	sort.Strings(cached)
	sort.Strings(uncached)
	return cached, uncached, stats, nil
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
