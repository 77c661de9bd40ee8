package service

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxIndexableFileSize is the per-file size cap for ingestion.
const maxIndexableFileSize = 1 << 20 // 1MB

var ignoredDirs = map[string]struct{}{
	"node_modules": {}, ".git": {}, "dist": {}, "build": {}, ".next": {},
	"coverage": {}, ".out": {}, ".target": {}, "bin": {}, "obj": {},
	"venv": {}, ".env": {}, ".idea": {}, ".vscode": {}, "__pycache__": {},
	".mypy_cache": {}, ".gradle": {},
}

var allowedExts = map[string]struct{}{
	".ts": {}, ".tsx": {}, ".js": {}, ".jsx": {}, ".py": {}, ".java": {},
	".go": {}, ".rb": {}, ".cpp": {}, ".c": {}, ".md": {}, ".json": {},
	".yml": {}, ".yaml": {}, ".sql": {}, ".sh": {},
}

// collectFiles walks root and returns paths of files worth indexing: known
// source extensions, not hidden, not in ignored directories, at most 1MB,
// and not binary.
func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, ignored := ignoredDirs[name]; ignored || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if _, ok := allowedExts[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxIndexableFileSize {
			return nil
		}
		if isBinary(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	return files, err
}

// isBinary sniffs the first 8000 bytes for a NUL byte.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, 8000)
	n, _ := f.Read(buf)
	return bytes.IndexByte(buf[:n], 0) != -1
}
