// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package manga

import (
	"context"
)

// # Catalog Data Access

// Repository defines the data access contract for the manga catalog.
type Repository interface {

	/*
		Create persists a brand-new manga to the storage.

		Parameters:
		  - context: context.Context
		  - manga: *Manga

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, manga *Manga) error

	/*
		Update persists changes to a manga's mutable fields.

		Parameters:
		  - context: context.Context
		  - manga: *Manga

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, manga *Manga) error

	/*
		Delete removes the manga row with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound if no row matched, or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		FindByID returns the manga with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Manga: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Manga, error)

	/*
		FindBySlug returns the manga with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Manga: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Manga, error)

	/*
		List returns a paginated slice of the catalog, newest first,
		along with the total count.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Manga: Page of entities
		  - int: Total catalog size
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Manga, int, error)

	/*
		ListByTag returns the paginated subset of the catalog carrying
		any of the given tags, newest first, along with the matching
		count.

		Parameters:
		  - context: context.Context
		  - tags: []string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Manga: Page of entities
		  - int: Total matches
		  - error: Database retrieval failures
	*/
	ListByTag(context context.Context, tags []string, limit, offset int) ([]*Manga, int, error)

	/*
		ListChapters returns the chapter summaries belonging to a manga,
		newest first.

		Parameters:
		  - context: context.Context
		  - mangaID: string

		Returns:
		  - []ChapterSummary: Chapter projections for the detail view
		  - error: Database retrieval failures
	*/
	ListChapters(context context.Context, mangaID string) ([]ChapterSummary, error)
}
