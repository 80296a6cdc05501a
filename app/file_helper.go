package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileHelper validates dataset input paths
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// dataExtensions are the input file types the loader understands
var dataExtensions = map[string]bool{
	".csv": true,
	".tsv": true,
	".txt": true,
}

// ResolveInputPath validates that path points to a readable data file.
// Pointing at a directory picks the single data file inside it, so
// `datawash analyze ./exports` works when the export lands one file.
func (h *FileHelper) ResolveInputPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}

	if !info.IsDir() {
		if !h.isDataFile(path) {
			return "", fmt.Errorf("unsupported file type %s (want csv, tsv, or txt)", filepath.Ext(path))
		}
		return path, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("cannot read directory %s: %w", path, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(path, entry.Name())
		if h.isDataFile(full) {
			candidates = append(candidates, full)
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("no data files found in %s", path)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%d data files in %s, specify one explicitly", len(candidates), path)
	}
}

func (h *FileHelper) isDataFile(path string) bool {
	return dataExtensions[strings.ToLower(filepath.Ext(path))]
}
