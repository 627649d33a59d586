// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitcart/orbitcart-backend/internal/config"
)

func localStorageService(t *testing.T) *StorageService {
	cfg := &config.Config{}
	cfg.Server.Host = "localhost"
	cfg.Server.Port = "8080"

	svc, err := NewStorageService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)

	svc.localDir = t.TempDir()
	return svc
}

func multipartImage(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("images", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	require.Len(t, form.File["images"], 1)

	header := form.File["images"][0]
	file, err := header.Open()
	require.NoError(t, err)
	return file, header
}

// Without AWS credentials the service must still construct and store files
// somewhere the /uploads route can serve them.
func TestUploadProductImageLocalFallback(t *testing.T) {
	svc := localStorageService(t)

	content := []byte("png-bytes")
	file, header := multipartImage(t, "photo.png", content)
	defer file.Close()

	result, err := svc.UploadProductImage(file, header)
	require.NoError(t, err)
	assert.Contains(t, result.URL, "/uploads/")
	assert.Equal(t, int64(len(content)), result.Size)

	stored, err := os.ReadFile(filepath.Join(svc.localDir, filepath.FromSlash(result.Key)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestUploadProductImageRejectsExtension(t *testing.T) {
	svc := localStorageService(t)

	file, header := multipartImage(t, "notes.txt", []byte("not an image"))
	defer file.Close()

	_, err := svc.UploadProductImage(file, header)
	assert.Error(t, err)
}

func TestDeleteByURLIgnoresForeignURLs(t *testing.T) {
	svc := localStorageService(t)

	assert.NoError(t, svc.DeleteByURL("https://example.com/elsewhere.png"))
	assert.NoError(t, svc.DeleteByURL("http://localhost:8080/uploads/products/x.png"))
}
