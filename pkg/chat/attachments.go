package chat

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".rst": true, ".org": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".xml": true, ".csv": true, ".ini": true,
	".go": true, ".py": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true,
	".rs": true, ".java": true, ".kt": true, ".swift": true, ".dart": true, ".zig": true,
	".c": true, ".h": true, ".cpp": true, ".hpp": true, ".cs": true, ".rb": true, ".php": true,
	".ex": true, ".hs": true, ".lua": true, ".sh": true, ".bash": true, ".sql": true,
	".html": true, ".css": true, ".svg": true, ".graphql": true, ".diff": true, ".patch": true,
	".mk": true, ".dockerfile": true, ".gitignore": true, ".env": true,
}

// DetectMimeType guesses a file's type from its extension. Every text file
// maps to text/plain.
func DetectMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := imageTypes[ext]; ok {
		return t
	}
	if ext == ".pdf" {
		return "application/pdf"
	}
	if textExtensions[ext] || ext == "" && textExtensions[strings.ToLower(filepath.Base(path))] {
		return "text/plain"
	}
	return "application/octet-stream"
}

// IsTextFile reports whether path holds text, by extension first and by
// sniffing the first KiB otherwise. Unreadable files are not text.
func IsTextFile(path string) bool {
	if DetectMimeType(path) == "text/plain" {
		return true
	}
	if DetectMimeType(path) != "application/octet-stream" {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 1024)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	buf = buf[:n]
	return !bytes.ContainsRune(buf, 0) && utf8.Valid(buf)
}
