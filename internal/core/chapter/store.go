// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package chapter

import (
	"context"
)

// # Parent Resolution

// ParentManga is the slice of the parent aggregate the chapter domain
// needs: enough to validate existence and address the detail cache.
type ParentManga struct {
	ID    string
	Title string
	Slug  string
}

// # Chapter Data Access

// Repository defines the data access contract for reading units.
type Repository interface {

	/*
		Create persists a new chapter inside a transaction that verifies
		the parent manga still exists and the slug is free.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter

		Returns:
		  - error: apperr.NotFound (parent gone), apperr.Conflict (slug taken),
		    or persistence failures
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		FindByID returns the reader view of a chapter by its ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Detail: Chapter with parent breadcrumb fields
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Detail, error)

	/*
		FindBySlug returns the reader view of a chapter by its slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Detail: Chapter with parent breadcrumb fields
		  - error: Database retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Detail, error)

	/*
		Delete removes the chapter row with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound if no row matched, or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		ResolveManga returns the parent projection for a manga slug.

		Parameters:
		  - context: context.Context
		  - mangaSlug: string

		Returns:
		  - *ParentManga: Existence proof plus cache addressing fields
		  - error: apperr.NotFound or retrieval failures
	*/
	ResolveManga(context context.Context, mangaSlug string) (*ParentManga, error)
}
