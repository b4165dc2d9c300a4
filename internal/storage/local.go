package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Local writes uploads to a directory served under /uploads.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) *Local {
	return &Local{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *Local) Driver() string { return "local" }

// Dir is the directory the static file route serves.
func (l *Local) Dir() string { return l.dir }

func (l *Local) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	// 1. Create the uploads directory if it doesn't exist
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// 2. Write the file under its base name only
	name = filepath.Base(name)
	f, err := os.OpenFile(filepath.Join(l.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	// 3. Build the public URL
	return fmt.Sprintf("%s/uploads/%s", l.baseURL, url.PathEscape(name)), nil
}
