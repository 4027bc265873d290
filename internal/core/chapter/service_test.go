// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package chapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phamduc/yonde/internal/platform/apperr"
)

// # Fakes

type fakeRepository struct {
	parents  map[string]*ParentManga
	chapters map[string]*Chapter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		parents:  map[string]*ParentManga{},
		chapters: map[string]*Chapter{},
	}
}

func (repository *fakeRepository) Create(_ context.Context, chapter *Chapter) error {
	if _, exists := repository.parents[chapter.MangaID]; !exists {
		return apperr.NotFound("Manga")
	}
	for _, existing := range repository.chapters {
		if existing.Slug == chapter.Slug {
			return apperr.Conflict("Chapter with this slug already exists")
		}
	}
	stored := *chapter
	repository.chapters[chapter.ID] = &stored
	return nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*Detail, error) {
	chapter, exists := repository.chapters[id]
	if !exists {
		return nil, apperr.NotFound("Chapter")
	}
	return repository.detail(chapter), nil
}

func (repository *fakeRepository) FindBySlug(_ context.Context, slug string) (*Detail, error) {
	for _, chapter := range repository.chapters {
		if chapter.Slug == slug {
			return repository.detail(chapter), nil
		}
	}
	return nil, apperr.NotFound("Chapter")
}

func (repository *fakeRepository) Delete(_ context.Context, id string) error {
	if _, exists := repository.chapters[id]; !exists {
		return apperr.NotFound("Chapter")
	}
	delete(repository.chapters, id)
	return nil
}

func (repository *fakeRepository) ResolveManga(_ context.Context, mangaSlug string) (*ParentManga, error) {
	for _, parent := range repository.parents {
		if parent.Slug == mangaSlug {
			return parent, nil
		}
	}
	return nil, apperr.NotFound("Manga")
}

func (repository *fakeRepository) detail(chapter *Chapter) *Detail {
	detail := &Detail{Chapter: *chapter}
	if parent, exists := repository.parents[chapter.MangaID]; exists {
		detail.MangaTitle = parent.Title
		detail.MangaSlug = parent.Slug
	}
	return detail
}

type fakeImages struct {
	removed []string
}

func (images *fakeImages) RemoveAll(_ context.Context, publicURLs []string) {
	images.removed = append(images.removed, publicURLs...)
}

type fakeCache struct {
	invalidated []string
}

func (cache *fakeCache) Invalidate(_ context.Context, slugs ...string) {
	cache.invalidated = append(cache.invalidated, slugs...)
}

func newTestService(repository *fakeRepository, images *fakeImages, cache *fakeCache) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, images, cache, logger)
}

// # Tests

func TestCreate(t *testing.T) {
	repository := newFakeRepository()
	repository.parents["manga-1"] = &ParentManga{ID: "manga-1", Title: "One Piece", Slug: "one-piece"}
	images := &fakeImages{}
	cache := &fakeCache{}
	service := newTestService(repository, images, cache)

	chapter, err := service.Create(context.Background(), CreateInput{
		MangaSlug: "one-piece",
		Name:      "Chapter 1: Romance Dawn",
		Type:      TypeChapter,
		ActorID:   "admin-1",
		ImageURLs: []string{"/public/images/p1.webp", "/public/images/p2.webp"},
	})

	require.NoError(t, err)
	require.NotEmpty(t, chapter.ID)
	require.Equal(t, "chapter-1-romance-dawn", chapter.Slug)
	require.Equal(t, TypeChapter, chapter.Type)
	require.Equal(t, "admin-1", chapter.AuthorID)
	require.Len(t, chapter.Images, 2)
	require.Equal(t, []string{"one-piece"}, cache.invalidated)
}

func TestCreateExplicitSlugWins(t *testing.T) {
	repository := newFakeRepository()
	repository.parents["manga-1"] = &ParentManga{ID: "manga-1", Slug: "one-piece"}
	service := newTestService(repository, &fakeImages{}, &fakeCache{})

	chapter, err := service.Create(context.Background(), CreateInput{
		MangaSlug: "one-piece",
		Name:      "Chapter 1",
		Slug:      "OP Chapter One!!",
		Type:      TypeBook,
	})

	require.NoError(t, err)
	require.Equal(t, "op-chapter-one", chapter.Slug)
}

func TestCreateParentMissing(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeImages{}, &fakeCache{})

	_, err := service.Create(context.Background(), CreateInput{
		MangaSlug: "gone",
		Name:      "Chapter 1",
		Type:      TypeChapter,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestCreateInvalidType(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeImages{}, &fakeCache{})

	_, err := service.Create(context.Background(), CreateInput{
		MangaSlug: "one-piece",
		Name:      "Chapter 1",
		Type:      Type("volume"),
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestCreateDuplicateSlug(t *testing.T) {
	repository := newFakeRepository()
	repository.parents["manga-1"] = &ParentManga{ID: "manga-1", Slug: "one-piece"}
	service := newTestService(repository, &fakeImages{}, &fakeCache{})

	_, err := service.Create(context.Background(), CreateInput{
		MangaSlug: "one-piece", Name: "Chapter 1", Type: TypeChapter,
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), CreateInput{
		MangaSlug: "one-piece", Name: "Chapter 1", Type: TypeChapter,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestDelete(t *testing.T) {
	repository := newFakeRepository()
	repository.parents["manga-1"] = &ParentManga{ID: "manga-1", Slug: "one-piece"}
	images := &fakeImages{}
	cache := &fakeCache{}
	service := newTestService(repository, images, cache)

	chapter, err := service.Create(context.Background(), CreateInput{
		MangaSlug: "one-piece",
		Name:      "Chapter 1",
		Type:      TypeChapter,
		ImageURLs: []string{"/public/images/p1.webp"},
	})
	require.NoError(t, err)
	cache.invalidated = nil

	err = service.Delete(context.Background(), "manga-1", chapter.ID)
	require.NoError(t, err)
	require.Empty(t, repository.chapters)
	require.Equal(t, []string{"/public/images/p1.webp"}, images.removed)
	require.Equal(t, []string{"one-piece"}, cache.invalidated)
}

func TestDeleteMismatchedManga(t *testing.T) {
	repository := newFakeRepository()
	repository.parents["manga-1"] = &ParentManga{ID: "manga-1", Slug: "one-piece"}
	images := &fakeImages{}
	service := newTestService(repository, images, &fakeCache{})

	chapter, err := service.Create(context.Background(), CreateInput{
		MangaSlug: "one-piece", Name: "Chapter 1", Type: TypeChapter,
	})
	require.NoError(t, err)

	err = service.Delete(context.Background(), "manga-2", chapter.ID)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	require.Len(t, repository.chapters, 1)
	require.Empty(t, images.removed)
}

func TestDeleteOrphanSkipsCacheInvalidation(t *testing.T) {
	repository := newFakeRepository()
	repository.parents["manga-1"] = &ParentManga{ID: "manga-1", Slug: "one-piece"}
	cache := &fakeCache{}
	service := newTestService(repository, &fakeImages{}, cache)

	chapter, err := service.Create(context.Background(), CreateInput{
		MangaSlug: "one-piece", Name: "Chapter 1", Type: TypeChapter,
	})
	require.NoError(t, err)

	// Parent deleted out from under the chapter.
	delete(repository.parents, "manga-1")
	cache.invalidated = nil

	err = service.Delete(context.Background(), "manga-1", chapter.ID)
	require.NoError(t, err)
	require.Empty(t, cache.invalidated)
}
