// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/pkg/uuid"
)

// # Service

// Service implements the comment business logic.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs the comment service.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
Add posts a comment under the manga addressed by slug and returns the
refreshed thread.

Description: The manga is resolved before the write so commenting on a
deleted manga reports 404 rather than silently orphaning a row. The
repository re-verifies the author account transactionally.

Parameters:
  - context: context.Context
  - mangaSlug: string
  - authorID: string (From the access token claims)
  - body: string

Returns:
  - []Resolved: The full thread, newest first
  - error: apperr.NotFound or database errors
*/
func (service *Service) Add(context context.Context, mangaSlug string, authorID string, body string) ([]Resolved, error) {
	mangaID, err := service.repository.ResolveManga(context, mangaSlug)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		MangaID:  mangaID,
		AuthorID: authorID,
		Body:     body,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		"comment_id", comment.ID,
		"manga_id", mangaID,
		"author_id", authorID,
	)

	return service.repository.ListByManga(context, mangaID)
}

/*
List returns the comment thread for a manga, newest first.

Parameters:
  - context: context.Context
  - mangaSlug: string

Returns:
  - []Resolved: Never nil
  - error: apperr.NotFound or database errors
*/
func (service *Service) List(context context.Context, mangaSlug string) ([]Resolved, error) {
	mangaID, err := service.repository.ResolveManga(context, mangaSlug)
	if err != nil {
		return nil, err
	}

	return service.repository.ListByManga(context, mangaID)
}

/*
Remove deletes a comment and returns the refreshed thread.

Description: Only the author may remove their comment; anyone else gets
apperr.Forbidden. The comment must also live under the manga named in
the route, otherwise it is reported as not found.

Parameters:
  - context: context.Context
  - mangaSlug: string
  - commentID: string
  - requesterID: string (From the access token claims)

Returns:
  - []Resolved: The remaining thread, newest first
  - error: apperr.NotFound, apperr.Forbidden, or database errors
*/
func (service *Service) Remove(context context.Context, mangaSlug string, commentID string, requesterID string) ([]Resolved, error) {
	mangaID, err := service.repository.ResolveManga(context, mangaSlug)
	if err != nil {
		return nil, err
	}

	comment, err := service.repository.FindByID(context, commentID)
	if err != nil {
		return nil, err
	}

	if comment.MangaID != mangaID {
		return nil, apperr.NotFound("Comment")
	}

	if comment.AuthorID != requesterID {
		return nil, apperr.Forbidden("Only the author can delete this comment")
	}

	if err := service.repository.Delete(context, commentID); err != nil {
		return nil, err
	}

	service.logger.Info("comment_deleted",
		"comment_id", commentID,
		"manga_id", mangaID,
		"author_id", requesterID,
	)

	return service.repository.ListByManga(context, mangaID)
}
