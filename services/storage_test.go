package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lexium/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	tempDir := t.TempDir()
	storage := NewLocalStorage(tempDir)
	ctx := context.Background()
	content := "hello storage"
	key := "exports/2026/02/report.xlsx"
	size := int64(len(content))

	t.Run("UploadReader creates file", func(t *testing.T) {
		result, err := storage.UploadReader(ctx, strings.NewReader(content), key, XLSXContentType, size)
		require.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, size, result.FileSize)
		assert.Equal(t, "report.xlsx", result.FileName)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.NoError(t, err)
	})

	t.Run("Get retrieves file content", func(t *testing.T) {
		reader, contentType, err := storage.Get(ctx, key)
		require.NoError(t, err)
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		assert.Equal(t, content, string(got))
		assert.Equal(t, XLSXContentType, contentType)
	})

	t.Run("Rejects keys escaping the base directory", func(t *testing.T) {
		_, err := storage.UploadReader(ctx, strings.NewReader("x"), "../outside.txt", "text/plain", 1)
		assert.Error(t, err)
		_, _, err = storage.Get(ctx, "../../etc/passwd")
		assert.Error(t, err)
	})

	t.Run("Delete removes file", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, key))
		_, err := os.Stat(filepath.Join(tempDir, key))
		assert.True(t, os.IsNotExist(err))

		// deleting twice is fine
		assert.NoError(t, storage.Delete(ctx, key))
	})

	t.Run("URLs and paths", func(t *testing.T) {
		expected := "/" + filepath.ToSlash(filepath.Join(tempDir, "some/key"))
		assert.Equal(t, expected, storage.GetPublicURL("some/key"))

		signed, err := storage.GetSignedURL(ctx, "some/key", time.Hour)
		assert.NoError(t, err)
		assert.Equal(t, expected, signed)
	})
}

func TestGenerateExportKey(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	key := GenerateExportKey(now, "hours per case.pdf")

	assert.True(t, strings.HasPrefix(key, "exports/2026/03/"))
	assert.True(t, strings.HasSuffix(key, "-hours_per_case.pdf"))
	// uuid (36) + "-" + name
	assert.Len(t, strings.TrimPrefix(key, "exports/2026/03/"), 36+1+len("hours_per_case.pdf"))
}

func TestArchiveExport(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	res, err := ArchiveExport(context.Background(), storage, now, "reports.xlsx", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.FileSize)
	assert.Equal(t, XLSXContentType, res.MimeType)

	reader, _, err := storage.Get(context.Background(), res.Key)
	require.NoError(t, err)
	defer reader.Close()
	got, _ := io.ReadAll(reader)
	assert.Equal(t, "data", string(got))

	_, err = ArchiveExport(context.Background(), nil, now, "x.pdf", nil)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestNewStorageFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{ExportDir: t.TempDir()}
	_, ok := NewStorage(cfg).(*LocalStorage)
	assert.True(t, ok)
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewLocalStorage("/tmp").IsConfigured())

	r2 := &R2Storage{bucket: "test-bucket", client: nil}
	assert.False(t, r2.IsConfigured())
}
