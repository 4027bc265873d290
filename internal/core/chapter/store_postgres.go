// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
PostgreSQL implementation of the chapter data access.

Chapter creation runs inside an explicit transaction: the schema carries
no foreign key from core.chapter to core.manga (deleted manga leave
their chapters orphaned on purpose), so the parent-existence and
slug-uniqueness checks are enforced here instead of by constraints.

Reader lookups LEFT JOIN the parent manga so orphaned chapters still
resolve, just without breadcrumb fields.
*/
package chapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
Create persists a new chapter record into the core.chapter table.

Description: Runs in a transaction. Verifies the parent manga row still
exists and that no chapter holds the slug, then inserts. Both checks
and the insert commit or fail together, so a concurrent manga deletion
cannot race a chapter creation past the existence check.

Parameters:
  - context: context.Context
  - chapter: *Chapter (Entity to persist)

Returns:
  - error: apperr.NotFound, apperr.Conflict, or execution errors
*/
func (repository *postgresRepository) Create(context context.Context, chapter *Chapter) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	// 1. Parent existence check
	var parentID string
	err = transaction.QueryRow(context,
		"SELECT id FROM core.manga WHERE id = $1", chapter.MangaID,
	).Scan(&parentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Manga")
		}
		return fmt.Errorf("postgres_chapter_repo_parent_check_failed: %w", err)
	}

	// 2. Slug uniqueness check
	var existingID string
	err = transaction.QueryRow(context,
		"SELECT id FROM core.chapter WHERE slug = $1", chapter.Slug,
	).Scan(&existingID)
	if err == nil {
		return apperr.Conflict("Chapter with this slug already exists")
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("postgres_chapter_repo_slug_check_failed: %w", err)
	}

	// 3. Insert
	const query = `
		INSERT INTO core.chapter (
			id, mangaid, name, slug, type, authorid, images, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = now
	}
	chapter.UpdatedAt = now

	_, err = transaction.Exec(context, query,
		chapter.ID,
		chapter.MangaID,
		chapter.Name,
		chapter.Slug,
		chapter.Type,
		chapter.AuthorID,
		chapter.Images,
		chapter.CreatedAt,
		chapter.UpdatedAt,
	)
	if err != nil {
		// A concurrent create can slip past the slug check above.
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Chapter with this slug already exists")
		}
		return fmt.Errorf("postgres_chapter_repo_create_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_chapter_repo_commit_failed: %w", err)
	}

	return nil
}

const detailQuery = `
	SELECT
		c.id, c.mangaid, c.name, c.slug, c.type, c.authorid, c.images, c.createdat, c.updatedat,
		COALESCE(m.title, ''), COALESCE(m.slug, '')
	FROM core.chapter c
	LEFT JOIN core.manga m ON m.id = c.mangaid`

/*
FindByID retrieves the reader view of a chapter by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Detail: Chapter with parent breadcrumb fields
  - error: apperr.NotFound or database errors
*/
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Detail, error) {
	return repository.scanDetail(context, detailQuery+" WHERE c.id = $1", id)
}

/*
FindBySlug retrieves the reader view of a chapter by its unique slug.

Description: Primary lookup for reader deep links.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Detail: Chapter with parent breadcrumb fields
  - error: apperr.NotFound or database errors
*/
func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Detail, error) {
	return repository.scanDetail(context, detailQuery+" WHERE c.slug = $1", slug)
}

// scanDetail executes a single-row lookup and hydrates the Detail view.
func (repository *postgresRepository) scanDetail(context context.Context, query string, arg any) (*Detail, error) {
	detail := &Detail{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&detail.ID,
		&detail.MangaID,
		&detail.Name,
		&detail.Slug,
		&detail.Type,
		&detail.AuthorID,
		&detail.Images,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.MangaTitle,
		&detail.MangaSlug,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres_chapter_repo_find_failed: %w", err)
	}

	return detail, nil
}

/*
Delete removes a chapter row by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if no row matched, or execution errors
*/
func (repository *postgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM core.chapter WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}

/*
ResolveManga returns the parent projection for a manga ID.

Parameters:
  - context: context.Context
  - mangaSlug: string

Returns:
  - *ParentManga: Existence proof plus cache addressing fields
  - error: apperr.NotFound or database errors
*/
func (repository *postgresRepository) ResolveManga(context context.Context, mangaSlug string) (*ParentManga, error) {
	const query = "SELECT id, title, slug FROM core.manga WHERE slug = $1"

	parent := &ParentManga{}
	err := repository.pool.QueryRow(context, query, mangaSlug).Scan(
		&parent.ID,
		&parent.Title,
		&parent.Slug,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manga")
		}
		return nil, fmt.Errorf("postgres_chapter_repo_resolve_manga_failed: %w", err)
	}

	return parent, nil
}
