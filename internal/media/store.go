// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package media manages uploaded image files on local disk.

It is the single owner of the public image directory: every poster and
chapter page flows through this package, which assigns collision-free
names and hands back the public URLs under which the files are served.

Core Responsibilities:

  - Naming: UUID-prefixed, sanitized filenames to prevent collisions and traversal.
  - Serving: Stable public URLs under the /public/images/ prefix.
  - Cleanup: Best-effort removal of files for deleted catalog entries.
*/
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/phamduc/yonde/internal/platform/constants"
	"github.com/phamduc/yonde/internal/platform/ctxutil"
	"github.com/phamduc/yonde/pkg/uuid"
)

// Store persists uploaded images under a single root directory.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore creates the image root directory if needed and returns a [Store].
func NewStore(root string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("media_store_mkdir_failed: %w", err)
	}
	return &Store{root: root, logger: logger}, nil
}

// # Uploads

/*
SaveUpload writes a single uploaded file to disk.

Description: Assigns a UUID-prefixed, sanitized filename so concurrent
uploads of identically named files never collide.

Parameters:
  - fileHeader: *multipart.FileHeader (from the parsed multipart form)

Returns:
  - string: Public URL of the stored file
  - error: Size violations or filesystem failures
*/
func (store *Store) SaveUpload(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > constants.MaxUploadBytes {
		return "", fmt.Errorf("media_store_file_too_large: %d bytes", fileHeader.Size)
	}

	source, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("media_store_open_upload_failed: %w", err)
	}
	defer source.Close()

	fileName := uuid.New() + "-" + sanitizeFilename(fileHeader.Filename)
	destination, err := os.Create(filepath.Join(store.root, fileName))
	if err != nil {
		return "", fmt.Errorf("media_store_create_failed: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		_ = os.Remove(destination.Name())
		return "", fmt.Errorf("media_store_write_failed: %w", err)
	}

	return constants.PublicImagePrefix + fileName, nil
}

/*
SaveAll writes a batch of uploaded files to disk.

Description: Used for chapter page uploads. The batch is atomic: if any
file fails, every file already written in this batch is removed again.

Parameters:
  - fileHeaders: []*multipart.FileHeader

Returns:
  - []string: Public URLs in upload order
  - error: The first failure encountered
*/
func (store *Store) SaveAll(fileHeaders []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(fileHeaders))

	for _, fileHeader := range fileHeaders {
		url, err := store.SaveUpload(fileHeader)
		if err != nil {
			// Roll back the partial batch before reporting the failure.
			for _, saved := range urls {
				_ = os.Remove(store.pathFor(saved))
			}
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// # Cleanup

// Remove deletes the file behind a public URL. Missing files and other
// unlink failures are logged but never surfaced: catalog deletions must
// not fail because an image is already gone.
func (store *Store) Remove(ctx context.Context, publicURL string) {
	path := store.pathFor(publicURL)
	if path == "" {
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		ctxutil.GetLogger(ctx).Warn("media_store_remove_failed",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}

// RemoveAll deletes every file behind the given public URLs, best-effort.
func (store *Store) RemoveAll(ctx context.Context, publicURLs []string) {
	for _, url := range publicURLs {
		store.Remove(ctx, url)
	}
}

// # Helpers

// pathFor maps a public URL back to the on-disk location.
// Returns "" for URLs outside the managed prefix.
func (store *Store) pathFor(publicURL string) string {
	name, found := strings.CutPrefix(publicURL, constants.PublicImagePrefix)
	if !found || name == "" {
		return ""
	}

	// Reject anything that could escape the root directory.
	name = filepath.Base(name)
	return filepath.Join(store.root, name)
}

// sanitizeFilename strips everything but safe filename characters.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)

	var builder strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			builder.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}

	sanitized := builder.String()
	if sanitized == "" || sanitized == "." {
		return "upload"
	}
	return sanitized
}
