// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package media

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/yonde/internal/platform/constants"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

// multipartFile builds a *multipart.FileHeader the way an HTTP handler
// would receive it from ParseMultipartForm.
func multipartFile(t *testing.T, fieldName, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	formWriter := multipart.NewWriter(&body)
	part, err := formWriter.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, formWriter.Close())

	request := httptest.NewRequest(http.MethodPost, "/", &body)
	request.Header.Set("Content-Type", formWriter.FormDataContentType())
	require.NoError(t, request.ParseMultipartForm(32<<20))

	headers := request.MultipartForm.File[fieldName]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestSaveUpload(t *testing.T) {
	store := newTestStore(t)
	fileHeader := multipartFile(t, "image", "cover page.png", []byte("png-bytes"))

	url, err := store.SaveUpload(fileHeader)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, constants.PublicImagePrefix))

	// Original name survives in sanitized form, prefixed by a UUID.
	assert.Contains(t, url, "cover_page.png")
	assert.NotContains(t, url, " ")

	// File exists on disk with the uploaded content.
	content, err := os.ReadFile(store.pathFor(url))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestSaveUploadUniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.SaveUpload(multipartFile(t, "image", "same.png", []byte("a")))
	require.NoError(t, err)
	second, err := store.SaveUpload(multipartFile(t, "image", "same.png", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveAll(t *testing.T) {
	store := newTestStore(t)

	headers := []*multipart.FileHeader{
		multipartFile(t, "image", "page-1.png", []byte("p1")),
		multipartFile(t, "image", "page-2.png", []byte("p2")),
	}

	urls, err := store.SaveAll(headers)
	require.NoError(t, err)
	require.Len(t, urls, 2)

	// Upload order is preserved: page order matters for readers.
	assert.Contains(t, urls[0], "page-1.png")
	assert.Contains(t, urls[1], "page-2.png")
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	url, err := store.SaveUpload(multipartFile(t, "image", "gone.png", []byte("x")))
	require.NoError(t, err)

	store.Remove(ctx, url)
	_, statErr := os.Stat(store.pathFor(url))
	assert.True(t, os.IsNotExist(statErr))

	// Removing again must stay silent.
	store.Remove(ctx, url)
}

func TestRemoveIgnoresForeignURLs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// URLs outside the managed prefix map to nothing and are skipped.
	store.Remove(ctx, "https://elsewhere.example/image.png")
	store.Remove(ctx, "/etc/passwd")
}

func TestPathForRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	path := store.pathFor(constants.PublicImagePrefix + "../../etc/passwd")
	if path != "" {
		assert.Equal(t, filepath.Join(store.root, "passwd"), path)
	}
}
