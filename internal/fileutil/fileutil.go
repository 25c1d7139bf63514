// Package fileutil collects small filesystem helpers for art files.
package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// artExtensions are the image formats the render pipeline accepts.
var artExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

// IsArtFile reports whether path has a supported image extension.
func IsArtFile(path string) bool {
	return artExtensions[strings.ToLower(filepath.Ext(path))]
}

// FileExists checks if a file exists at the given path
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ExpandArtFiles resolves a mix of files and directories into a sorted
// list of art files. Directories are read one level deep, non-art
// entries are skipped, and explicit file arguments are kept as given
// so a bad path still surfaces as a per-file render error.
func ExpandArtFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !IsArtFile(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
