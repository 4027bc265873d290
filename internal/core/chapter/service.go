// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/pkg/slug"
	"github.com/phamduc/yonde/pkg/uuid"
)

// # Dependencies

// ImageRemover deletes previously stored page images.
type ImageRemover interface {
	RemoveAll(context context.Context, publicURLs []string)
}

// CacheInvalidator drops cached manga detail entries whose chapter
// listings just changed.
type CacheInvalidator interface {
	Invalidate(context context.Context, slugs ...string)
}

// # Service

// Service implements the chapter business logic.
type Service struct {
	repository Repository
	images     ImageRemover
	cache      CacheInvalidator
	logger     *slog.Logger
}

// NewService constructs the chapter service.
func NewService(repository Repository, images ImageRemover, cache CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		images:     images,
		cache:      cache,
		logger:     logger,
	}
}

// CreateInput carries the fields needed to publish a chapter. ImageURLs
// must already be stored; the service never touches upload handling.
type CreateInput struct {
	MangaSlug string
	Name      string
	Slug      string
	Type      Type
	ActorID   string // Admin performing the upload (from token claims)
	ImageURLs []string
}

/*
Create publishes a new chapter under an existing manga.

Description: Resolves the parent manga first so a missing parent fails
before any row is written, derives the slug from the explicit value or
the chapter name, then persists and invalidates the parent's cached
detail so readers see the new chapter immediately.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Chapter: The persisted chapter
  - error: apperr.NotFound, apperr.BadRequest, apperr.Conflict
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Chapter, error) {
	if !input.Type.IsValid() {
		return nil, apperr.BadRequest("Unknown chapter type")
	}

	// 1. Parent must exist before anything is written.
	parent, err := service.repository.ResolveManga(context, input.MangaSlug)
	if err != nil {
		return nil, err
	}

	// 2. Slug from the explicit value, falling back to the name.
	source := input.Slug
	if source == "" {
		source = input.Name
	}
	chapterSlug := slug.From(source)
	if chapterSlug == "" {
		return nil, apperr.BadRequest("Name does not produce a usable slug")
	}

	// 3. Persist. The repository guards parent existence and slug
	// uniqueness transactionally.
	chapter := &Chapter{
		ID:       uuid.New(),
		MangaID:  parent.ID,
		Name:     input.Name,
		Slug:     chapterSlug,
		Type:     input.Type,
		AuthorID: input.ActorID,
		Images:   input.ImageURLs,
	}

	if err := service.repository.Create(context, chapter); err != nil {
		return nil, err
	}

	// 4. The parent's cached detail lists chapters; drop it.
	service.cache.Invalidate(context, parent.Slug)

	service.logger.Info("chapter_created",
		"chapter_id", chapter.ID,
		"manga_id", chapter.MangaID,
		"slug", chapter.Slug,
		"type", chapter.Type,
		"pages", len(chapter.Images),
	)

	return chapter, nil
}

/*
ByID returns the reader view of a chapter.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Detail: Chapter with parent breadcrumb fields
  - error: apperr.NotFound
*/
func (service *Service) ByID(context context.Context, id string) (*Detail, error) {
	return service.repository.FindByID(context, id)
}

/*
BySlug returns the reader view of a chapter by its slug.

Parameters:
  - context: context.Context
  - chapterSlug: string

Returns:
  - *Detail: Chapter with parent breadcrumb fields
  - error: apperr.NotFound
*/
func (service *Service) BySlug(context context.Context, chapterSlug string) (*Detail, error) {
	return service.repository.FindBySlug(context, chapterSlug)
}

/*
Delete removes a chapter and its stored page images.

Description: The chapter must belong to the given manga; a mismatch is
reported as not found rather than forbidden so the route leaks nothing
about other manga. Image removal is best effort and runs after the row
is gone.

Parameters:
  - context: context.Context
  - mangaID: string (Parent the caller claims the chapter belongs to)
  - chapterID: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (service *Service) Delete(context context.Context, mangaID string, chapterID string) error {
	detail, err := service.repository.FindByID(context, chapterID)
	if err != nil {
		return err
	}

	if detail.MangaID != mangaID {
		return apperr.NotFound("Chapter")
	}

	if err := service.repository.Delete(context, chapterID); err != nil {
		return err
	}

	service.images.RemoveAll(context, detail.Images)

	if detail.MangaSlug != "" {
		service.cache.Invalidate(context, detail.MangaSlug)
	}

	service.logger.Info("chapter_deleted",
		"chapter_id", chapterID,
		"manga_id", mangaID,
	)

	return nil
}
