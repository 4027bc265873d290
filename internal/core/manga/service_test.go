// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package manga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/pkg/pointer"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	mangas   map[string]*Manga // keyed by ID
	chapters map[string][]ChapterSummary
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		mangas:   make(map[string]*Manga),
		chapters: make(map[string][]ChapterSummary),
	}
}

func (repository *fakeRepository) Create(_ context.Context, manga *Manga) error {
	repository.mangas[manga.ID] = manga
	return nil
}

func (repository *fakeRepository) Update(_ context.Context, manga *Manga) error {
	if _, ok := repository.mangas[manga.ID]; !ok {
		return apperr.NotFound("Manga")
	}
	repository.mangas[manga.ID] = manga
	return nil
}

func (repository *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := repository.mangas[id]; !ok {
		return apperr.NotFound("Manga")
	}
	delete(repository.mangas, id)
	return nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*Manga, error) {
	if manga, ok := repository.mangas[id]; ok {
		copied := *manga
		return &copied, nil
	}
	return nil, apperr.NotFound("Manga")
}

func (repository *fakeRepository) FindBySlug(_ context.Context, slug string) (*Manga, error) {
	for _, manga := range repository.mangas {
		if manga.Slug == slug {
			copied := *manga
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Manga")
}

func (repository *fakeRepository) List(_ context.Context, limit, offset int) ([]*Manga, int, error) {
	all := make([]*Manga, 0, len(repository.mangas))
	for _, manga := range repository.mangas {
		all = append(all, manga)
	}
	return all, len(all), nil
}

func (repository *fakeRepository) ListByTag(_ context.Context, tags []string, limit, offset int) ([]*Manga, int, error) {
	var matches []*Manga
	for _, manga := range repository.mangas {
		if overlaps(manga.Taglist, tags) {
			matches = append(matches, manga)
		}
	}
	return matches, len(matches), nil
}

func overlaps(taglist, tags []string) bool {
	for _, candidate := range taglist {
		for _, tag := range tags {
			if candidate == tag {
				return true
			}
		}
	}
	return false
}

func (repository *fakeRepository) ListChapters(_ context.Context, mangaID string) ([]ChapterSummary, error) {
	if summaries, ok := repository.chapters[mangaID]; ok {
		return summaries, nil
	}
	return []ChapterSummary{}, nil
}

// fakeCache records cache traffic so tests can assert the cache-aside flow.
type fakeCache struct {
	entries     map[string]*Detail
	invalidated []string
	setCount    int
	hitCount    int
	missCount   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*Detail)}
}

func (cache *fakeCache) GetDetail(_ context.Context, slug string) (*Detail, bool) {
	if detail, ok := cache.entries[slug]; ok {
		cache.hitCount++
		return detail, true
	}
	cache.missCount++
	return nil, false
}

func (cache *fakeCache) SetDetail(_ context.Context, slug string, detail *Detail) {
	cache.setCount++
	cache.entries[slug] = detail
}

func (cache *fakeCache) Invalidate(_ context.Context, slugs ...string) {
	for _, slug := range slugs {
		cache.invalidated = append(cache.invalidated, slug)
		delete(cache.entries, slug)
	}
}

// fakeImages records removed poster URLs.
type fakeImages struct {
	removed []string
}

func (images *fakeImages) Remove(_ context.Context, publicURL string) {
	images.removed = append(images.removed, publicURL)
}

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakeCache, *fakeImages) {
	t.Helper()
	repository := newFakeRepository()
	cache := newFakeCache()
	images := &fakeImages{}
	return NewService(repository, cache, images), repository, cache, images
}

func TestCreate(t *testing.T) {
	service, repository, _, _ := newTestService(t)

	manga, err := service.Create(context.Background(), CreateInput{
		Title:       "One Piece",
		Description: "Pirates.",
		Taglist:     []string{" adventure ", "", "shounen"},
		ImageURL:    "/public/images/poster.png",
		ActorID:     "admin-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, manga.ID)
	assert.Equal(t, "one-piece", manga.Slug)
	assert.Equal(t, []string{"adventure", "shounen"}, manga.Taglist)
	assert.Equal(t, "admin-1", manga.UploaderID)
	assert.Equal(t, "admin-1", manga.EditorID)
	assert.Len(t, repository.mangas, 1)
}

func TestCreateExplicitSlugWins(t *testing.T) {
	service, _, _, _ := newTestService(t)

	manga, err := service.Create(context.Background(), CreateInput{
		Title: "One Piece",
		Slug:  "OP Remaster!!",
	})
	require.NoError(t, err)
	assert.Equal(t, "op-remaster", manga.Slug)
}

func TestCreateDuplicateSlug(t *testing.T) {
	service, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateInput{Title: "One Piece"})
	require.NoError(t, err)

	// Different title, same derived slug.
	_, err = service.Create(ctx, CreateInput{Title: "one  piece!!"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestCreateUnsluggableTitle(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.Create(context.Background(), CreateInput{Title: "!!!"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestUpdate(t *testing.T) {
	service, _, cache, images := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{
		Title:    "One Piece",
		ImageURL: "/public/images/old-poster.png",
		ActorID:  "admin-1",
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, UpdateInput{
		Description: pointer.To("Now with a synopsis."),
		ImageURL:    pointer.To("/public/images/new-poster.png"),
		ActorID:     "admin-2",
	})
	require.NoError(t, err)

	assert.Equal(t, "Now with a synopsis.", updated.Description)
	assert.Equal(t, "/public/images/new-poster.png", updated.Image)

	// The original uploader stays on record; only the editor moves.
	assert.Equal(t, "admin-1", updated.UploaderID)
	assert.Equal(t, "admin-2", updated.EditorID)

	// The replaced poster file is cleaned up and the cache is dropped.
	assert.Contains(t, images.removed, "/public/images/old-poster.png")
	assert.Contains(t, cache.invalidated, "one-piece")

	// Untouched fields survive partial updates.
	assert.Equal(t, "One Piece", updated.Title)
	assert.Equal(t, "one-piece", updated.Slug)
}

func TestUpdateSlugCollision(t *testing.T) {
	service, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateInput{Title: "One Piece"})
	require.NoError(t, err)
	second, err := service.Create(ctx, CreateInput{Title: "Naruto"})
	require.NoError(t, err)

	_, err = service.Update(ctx, second.ID, UpdateInput{Slug: pointer.To("One Piece")})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestUpdateSlugToItselfIsAllowed(t *testing.T) {
	service, _, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{Title: "One Piece"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, UpdateInput{Slug: pointer.To("one-piece")})
	require.NoError(t, err)
	assert.Equal(t, "one-piece", updated.Slug)
}

func TestDelete(t *testing.T) {
	service, repository, cache, images := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{
		Title:    "One Piece",
		ImageURL: "/public/images/poster.png",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	assert.Empty(t, repository.mangas)
	assert.Contains(t, images.removed, "/public/images/poster.png")
	assert.Contains(t, cache.invalidated, "one-piece")

	err = service.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

func TestBySlugCacheAside(t *testing.T) {
	service, repository, cache, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{Title: "One Piece"})
	require.NoError(t, err)
	repository.chapters[created.ID] = []ChapterSummary{
		{ID: "ch-2", Name: "Chapter 2", Slug: "one-piece-chapter-2", Type: "chapter"},
		{ID: "ch-1", Name: "Chapter 1", Slug: "one-piece-chapter-1", Type: "chapter"},
	}

	// First read misses the cache and populates it.
	detail, err := service.BySlug(ctx, "one-piece")
	require.NoError(t, err)
	assert.Len(t, detail.Chapters, 2)
	assert.Equal(t, 1, cache.missCount)
	assert.Equal(t, 1, cache.setCount)

	// Second read is served from the cache.
	_, err = service.BySlug(ctx, "one-piece")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hitCount)
}

func TestBySlugNotFound(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.BySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

func TestByTagMatchesAnyOfSeveral(t *testing.T) {
	service, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateInput{Title: "One Piece", Taglist: []string{"action", "adventure"}})
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateInput{Title: "Monster", Taglist: []string{"drama"}})
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateInput{Title: "Yotsuba", Taglist: []string{"comedy"}})
	require.NoError(t, err)

	// One shared tag is enough; the comedy-only entry stays out.
	mangas, total, err := service.ByTag(ctx, []string{"action", "drama"}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, mangas, 2)
}

func TestParseTaglistSplitsCommaList(t *testing.T) {
	assert.Equal(t, []string{"action", "drama"}, parseTaglist([]string{" action , drama ,"}))
	assert.Equal(t, []string{"action"}, parseTaglist([]string{"action"}))
	assert.Empty(t, parseTaglist([]string{""}))
}

func TestUpdateTitleRederivesSlug(t *testing.T) {
	service, _, cache, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{Title: "One Piece"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, UpdateInput{
		Title: pointer.To("Two Piece"),
	})
	require.NoError(t, err)

	assert.Equal(t, "two-piece", updated.Slug)
	assert.Contains(t, cache.invalidated, "one-piece")
	assert.Contains(t, cache.invalidated, "two-piece")
}
