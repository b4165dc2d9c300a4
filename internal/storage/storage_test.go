package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{32}-photo\.jpg$`)
	assert.Regexp(t, pattern, ObjectName("photo.jpg"))
	assert.Regexp(t, pattern, ObjectName("../../etc/photo.jpg"))
	assert.Regexp(t, pattern, ObjectName(`C:\Users\me\photo.jpg`))
	assert.NotEqual(t, ObjectName("a.png"), ObjectName("a.png"))
}

func TestNewSelectsDriver(t *testing.T) {
	u, err := New(config.StorageConfig{Driver: "local", LocalDir: t.TempDir()}, "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "local", u.Driver())

	_, err = New(config.StorageConfig{Driver: "s3"}, "")
	assert.Error(t, err)

	_, err = New(config.StorageConfig{Driver: "cloudinary"}, "")
	assert.Error(t, err)
}

func TestLocalUpload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l := NewLocal(dir, "http://localhost:8080/")

	url, err := l.Upload(context.Background(), "abc-my photo.jpg", strings.NewReader("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/abc-my%20photo.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "abc-my photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	_, err = l.Upload(context.Background(), "abc-my photo.jpg", strings.NewReader("again"), "image/jpeg")
	assert.Error(t, err, "existing objects are never overwritten")
}

type fakeCloudinary struct {
	params uploader.UploadParams
	result *uploader.UploadResult
	err    error
}

func (f *fakeCloudinary) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = params
	return f.result, f.err
}

func TestCloudinaryUpload(t *testing.T) {
	fake := &fakeCloudinary{result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/storefront/abc-mug.jpg"}}
	c := &Cloudinary{api: fake, folder: "storefront"}

	url, err := c.Upload(context.Background(), "abc-mug.jpg", strings.NewReader("x"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/storefront/abc-mug.jpg", url)
	assert.Equal(t, "abc-mug", fake.params.PublicID)
	assert.Equal(t, "storefront", fake.params.Folder)
}

func TestCloudinaryUploadErrors(t *testing.T) {
	rejected := &fakeCloudinary{result: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}
	_, err := (&Cloudinary{api: rejected}).Upload(context.Background(), "a.jpg", strings.NewReader("x"), "image/jpeg")
	require.Error(t, err)
	assert.Equal(t, "Invalid image file", err.Error())

	failed := &fakeCloudinary{err: errors.New("connection reset")}
	_, err = (&Cloudinary{api: failed}).Upload(context.Background(), "a.jpg", strings.NewReader("x"), "image/jpeg")
	assert.EqualError(t, err, "connection reset")
}
