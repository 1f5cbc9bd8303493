package constants

import (
	"path/filepath"
	"strings"
)

// CloudName tags the files cached from the document-analysis service.
const CloudName = "azure"

// File name suffixes around a source document "<root>.pdf".
const (
	CacheSuffix    = "-" + CloudName + "-CACHE.json"
	DocumentSuffix = "-DOCUMENT.json"
	ResultsSuffix  = "-RESULTS.json"
)

// AllowedExtensions holds the source document extensions accepted for processing.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"png": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsValidDocument reports whether name is a source document (.pdf or .png).
func IsValidDocument(name string) bool {
	_, ok := AllowedExtensions[NormalizeExt(filepath.Ext(name))]
	return ok
}

// IsCacheFile reports whether name is a cached analysis result.
func IsCacheFile(name string) bool {
	return strings.HasSuffix(filepath.Base(name), CacheSuffix)
}

// RootName strips the directory, and either the cache suffix or the extension,
// from path: "dir/CPI-01-azure-CACHE.json" and "dir/CPI-01.pdf" both give "CPI-01".
func RootName(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, CacheSuffix) {
		return strings.TrimSuffix(base, CacheSuffix)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SiblingPath returns dir/<root><suffix> for the document at path.
func SiblingPath(path, suffix string) string {
	return filepath.Join(filepath.Dir(path), RootName(path)+suffix)
}
