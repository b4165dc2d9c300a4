package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Cloudinary uploads into one folder of a Cloudinary account.
type Cloudinary struct {
	api    cloudinaryAPI
	folder string
}

func NewCloudinary(cloudinaryURL, folder string) (*Cloudinary, error) {
	if cloudinaryURL == "" {
		return nil, errors.New("cloudinary URL is required")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &Cloudinary{api: &cld.Upload, folder: folder}, nil
}

func (c *Cloudinary) Driver() string { return "cloudinary" }

// Upload stores r with the file name (without extension) as public id. The
// provider's error text is returned unchanged.
func (c *Cloudinary) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	overwrite := false
	result, err := c.api.Upload(ctx, r, uploader.UploadParams{
		PublicID:     strings.TrimSuffix(name, filepath.Ext(name)),
		Folder:       c.folder,
		ResourceType: "auto",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", errors.New(result.Error.Message)
	}

	url := result.SecureURL
	if url == "" {
		url = strings.Replace(result.URL, "http://", "https://", 1)
	}
	return url, nil
}
