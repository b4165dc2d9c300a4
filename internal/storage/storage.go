// Package storage puts uploaded files into object storage and returns
// their public URLs.
package storage

//go:generate mockgen -destination=mocks/mock_uploader.go -package=mocks github.com/01moynul/storefront-golang/internal/storage Uploader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/google/uuid"
)

// Uploader stores one object under name and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	Driver() string
}

// New returns the uploader selected by cfg.Driver.
func New(cfg config.StorageConfig, baseURL string) (Uploader, error) {
	switch cfg.Driver {
	case "cloudinary":
		return NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	case "local":
		return NewLocal(cfg.LocalDir, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ObjectName prefixes the client's file name with a random hex id so
// uploads never collide.
func ObjectName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "") + "-" + base
}
