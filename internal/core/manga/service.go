// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package manga implements the catalog management use cases.

It orchestrates slug generation, uniqueness enforcement, poster lifecycle,
and the cache-aside read path for the public detail view.

Architecture:

  - Service: Orchestrates business logic (Create, Update, Delete, reads).
  - Repository: Abstracted interface for PostgreSQL persistence.
  - Cache: Redis-backed read acceleration for the hot detail endpoint.
*/
package manga

import (
	"context"
	"fmt"
	"strings"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/pkg/pointer"
	"github.com/phamduc/yonde/pkg/slug"
	"github.com/phamduc/yonde/pkg/uuid"
)

// # Contracts & Types

// ImageRemover defines the contract for best-effort poster cleanup.
// Implementations never fail: a missing file must not block a catalog
// mutation that already succeeded.
type ImageRemover interface {
	Remove(context context.Context, publicURL string)
}

// Service implements catalog management use cases.
type Service struct {
	repository Repository
	cache      Cache
	images     ImageRemover
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, cache Cache, images ImageRemover) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		images:     images,
	}
}

// # Write Path

// CreateInput holds the data required to publish a new manga.
type CreateInput struct {
	Title       string
	Slug        string // Optional; derived from Title when empty
	Description string
	Taglist     []string
	ImageURL    string // Poster URL already stored by the media layer
	ActorID     string // Admin performing the creation (from token claims)
}

/*
Create validates, slugs, and persists a brand new manga.

Description: The slug is derived from the explicit slug input when given,
otherwise from the title, and must be unique across the catalog.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Manga: Created entity
  - err: Conflict (duplicate slug), BadRequest (unsluggable title), or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Manga, error) {
	slugValue, err := service.resolveSlug(context, input.Slug, input.Title, "")
	if err != nil {
		return nil, err
	}

	// Time-sortable ID to prevent PG index fragmentation.
	manga := &Manga{
		ID:          uuid.New(),
		Title:       input.Title,
		Slug:        slugValue,
		Description: input.Description,
		Image:       input.ImageURL,
		Taglist:     normalizeTags(input.Taglist),
		UploaderID:  input.ActorID,
		EditorID:    input.ActorID,
	}

	if err := service.repository.Create(context, manga); err != nil {
		return nil, fmt.Errorf("manga_service_create_failed: %w", err)
	}

	return manga, nil
}

// UpdateInput holds the optional field updates for an existing manga.
// Nil pointers and a nil Taglist leave the current value untouched.
type UpdateInput struct {
	Title       *string
	Slug        *string
	Description *string
	Taglist     []string
	ImageURL    *string // New poster URL; the old file is removed
	ActorID     string  // Admin performing the update (from token claims)
}

/*
Update applies partial changes to an existing manga.

Description: Recomputes the slug only when one is explicitly provided.
When the poster is replaced, the previous file is removed best-effort.
Both the old and new slug entries are dropped from the cache.

Parameters:
  - context: context.Context
  - mangaID: string
  - input: UpdateInput

Returns:
  - *Manga: Updated entity
  - err: NotFound, Conflict (slug collision), or storage errors
*/
func (service *Service) Update(context context.Context, mangaID string, input UpdateInput) (*Manga, error) {
	manga, err := service.repository.FindByID(context, mangaID)
	if err != nil {
		return nil, err
	}

	previousSlug := manga.Slug
	previousImage := manga.Image

	manga.Title = pointer.Fallback(input.Title, manga.Title)
	manga.Description = pointer.Fallback(input.Description, manga.Description)

	if input.Taglist != nil {
		manga.Taglist = normalizeTags(input.Taglist)
	}

	// The slug tracks the title: a title change without an explicit slug
	// still re-derives it.
	if input.Slug != nil || input.Title != nil {
		explicit := ""
		if input.Slug != nil {
			explicit = *input.Slug
		}
		slugValue, err := service.resolveSlug(context, explicit, manga.Title, manga.ID)
		if err != nil {
			return nil, err
		}
		manga.Slug = slugValue
	}

	if input.ImageURL != nil {
		manga.Image = *input.ImageURL
	}

	if input.ActorID != "" {
		manga.EditorID = input.ActorID
	}

	if err := service.repository.Update(context, manga); err != nil {
		return nil, err
	}

	// Poster replacement: drop the superseded file after the row is safe.
	if input.ImageURL != nil && previousImage != "" && previousImage != manga.Image {
		service.images.Remove(context, previousImage)
	}

	service.cache.Invalidate(context, previousSlug, manga.Slug)

	return manga, nil
}

/*
Delete removes a manga from the catalog.

Description: Hard-deletes the row, removes the poster file best-effort,
and drops the cached detail. Chapters referencing the manga are left in
place and become unreachable through the catalog.

Parameters:
  - context: context.Context
  - mangaID: string

Returns:
  - err: NotFound or storage errors
*/
func (service *Service) Delete(context context.Context, mangaID string) error {
	manga, err := service.repository.FindByID(context, mangaID)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, mangaID); err != nil {
		return err
	}

	if manga.Image != "" {
		service.images.Remove(context, manga.Image)
	}

	service.cache.Invalidate(context, manga.Slug)

	return nil
}

// # Read Path

/*
List returns a page of the catalog, newest first, plus the total count.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Manga: Page of entities
  - int: Total catalog size
  - err: Storage errors
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Manga, int, error) {
	return service.repository.List(context, limit, offset)
}

/*
ByTag returns a page of the catalog overlapping the given tags, plus the
matching count. A manga matches when it carries at least one of the tags.

Parameters:
  - context: context.Context
  - tags: []string
  - limit: int
  - offset: int

Returns:
  - []*Manga: Page of entities
  - int: Total matches
  - err: Storage errors
*/
func (service *Service) ByTag(context context.Context, tags []string, limit, offset int) ([]*Manga, int, error) {
	return service.repository.ListByTag(context, tags, limit, offset)
}

/*
BySlug returns the full detail view for the public reading page.

Description: Cache-aside read. On a miss the detail is assembled from the
database (manga row plus chapter summaries, newest first) and written
back to the cache.

Parameters:
  - context: context.Context
  - slugValue: string

Returns:
  - *Detail: Manga with its chapter list
  - err: NotFound or storage errors
*/
func (service *Service) BySlug(context context.Context, slugValue string) (*Detail, error) {
	if detail, found := service.cache.GetDetail(context, slugValue); found {
		return detail, nil
	}

	manga, err := service.repository.FindBySlug(context, slugValue)
	if err != nil {
		return nil, err
	}

	chapters, err := service.repository.ListChapters(context, manga.ID)
	if err != nil {
		return nil, fmt.Errorf("manga_service_detail_chapters_failed: %w", err)
	}

	detail := &Detail{Manga: *manga, Chapters: chapters}
	service.cache.SetDetail(context, slugValue, detail)

	return detail, nil
}

/*
ByID returns the raw manga row, used by the admin edit form.

Parameters:
  - context: context.Context
  - mangaID: string

Returns:
  - *Manga: Hydrated entity
  - err: NotFound or storage errors
*/
func (service *Service) ByID(context context.Context, mangaID string) (*Manga, error) {
	return service.repository.FindByID(context, mangaID)
}

// # Helpers

// resolveSlug derives the canonical slug and enforces catalog uniqueness.
// selfID exempts the manga being updated from the collision check.
func (service *Service) resolveSlug(context context.Context, explicit, title, selfID string) (string, error) {
	source := explicit
	if source == "" {
		source = title
	}

	slugValue := slug.From(source)
	if slugValue == "" {
		return "", apperr.BadRequest("Title does not produce a usable slug")
	}

	existing, err := service.repository.FindBySlug(context, slugValue)
	if err == nil && existing.ID != selfID {
		return "", apperr.Conflict("Manga with this slug already exists")
	}

	return slugValue, nil
}

// normalizeTags trims whitespace and drops empty entries, preserving order.
func normalizeTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}
