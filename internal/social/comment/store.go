// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package comment

import "context"

// # Repository Contract

// Repository defines the persistence operations for comments.
type Repository interface {
	/*
		Create persists a new comment inside a transaction that verifies
		the author account still exists.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: apperr.NotFound (author gone) or execution errors
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID retrieves a single comment row by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: The comment entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		ListByManga returns every comment under a manga, newest first,
		with author profiles resolved.

		Parameters:
		  - context: context.Context
		  - mangaID: string

		Returns:
		  - []Resolved: Never nil; empty when the manga has no comments
		  - error: database errors
	*/
	ListByManga(context context.Context, mangaID string) ([]Resolved, error)

	/*
		Delete removes a comment row by its ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound if no row matched
	*/
	Delete(context context.Context, id string) error

	/*
		ResolveManga maps a manga slug to its ID.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - string: The manga ID
		  - error: apperr.NotFound or database errors
	*/
	ResolveManga(context context.Context, slug string) (string, error)
}
