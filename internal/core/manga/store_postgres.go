// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
PostgreSQL implementation of the catalog's data access.

It leans on native Postgres capabilities for discovery:
  - Array Columns: Taglist is a text[] queried with the && overlap operator.
  - Window Functions: COUNT(*) OVER() retrieves total result counts without
    requiring a separate 'COUNT' query.

Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
[apperr.AppError] types to avoid leaking storage implementation details.
*/
package manga

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed catalog store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const mangaColumns = "id, title, slug, description, image, taglist, uploaderid, lasteditorid, createdat, updatedat"

/*
Create persists a new manga record into the core.manga table.

Parameters:
  - context: context.Context
  - manga: *Manga (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *postgresRepository) Create(context context.Context, manga *Manga) error {
	const query = `
		INSERT INTO core.manga (
			id, title, slug, description, image, taglist, uploaderid, lasteditorid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if manga.CreatedAt.IsZero() {
		manga.CreatedAt = now
	}
	manga.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		manga.ID,
		manga.Title,
		manga.Slug,
		manga.Description,
		manga.Image,
		manga.Taglist,
		manga.UploaderID,
		manga.EditorID,
		manga.CreatedAt,
		manga.UpdatedAt,
	)

	if err != nil {
		// The service checks the slug first, but a concurrent create can
		// still hit the unique constraint.
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Manga with this slug already exists")
		}
		return fmt.Errorf("postgres_manga_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to a manga's mutable fields.

Description: Synchronizes the in-memory state with the database,
refreshing the updatedat timestamp.

Parameters:
  - context: context.Context
  - manga: *Manga

Returns:
  - error: apperr.NotFound if the row vanished, or update failures
*/
func (repository *postgresRepository) Update(context context.Context, manga *Manga) error {
	const query = `
		UPDATE core.manga
		SET title = $2, slug = $3, description = $4, image = $5, taglist = $6, lasteditorid = $7, updatedat = $8
		WHERE id = $1`

	manga.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		manga.ID,
		manga.Title,
		manga.Slug,
		manga.Description,
		manga.Image,
		manga.Taglist,
		manga.EditorID,
		manga.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_manga_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	return nil
}

/*
Delete removes a manga row by its ID.

Description: Hard delete. Chapters referencing the manga are intentionally
left in place; chapter cleanup is the caller's decision.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if no row matched, or execution errors
*/
func (repository *postgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM core.manga WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_manga_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	return nil
}

/*
FindByID retrieves a manga record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Manga: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Manga, error) {
	const query = "SELECT " + mangaColumns + " FROM core.manga WHERE id = $1"
	return repository.scanOne(context, query, id)
}

/*
FindBySlug retrieves a manga record by its unique slug.

Description: Primary lookup for the public reading page.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Manga: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Manga, error) {
	const query = "SELECT " + mangaColumns + " FROM core.manga WHERE slug = $1"
	return repository.scanOne(context, query, slug)
}

// scanOne executes a single-row lookup and hydrates the Manga entity.
func (repository *postgresRepository) scanOne(context context.Context, query string, arg any) (*Manga, error) {
	manga := &Manga{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&manga.ID,
		&manga.Title,
		&manga.Slug,
		&manga.Description,
		&manga.Image,
		&manga.Taglist,
		&manga.UploaderID,
		&manga.EditorID,
		&manga.CreatedAt,
		&manga.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Manga")
	}

	return manga, nil
}

/*
List returns a paginated slice of the catalog and the total count.

Description: Uses COUNT(*) OVER() to retrieve the total record count
without a second query. Newest entries come first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Manga: Page of hydrated entities
  - int: Total catalog size
  - error: Database execution errors
*/
func (repository *postgresRepository) List(context context.Context, limit, offset int) ([]*Manga, int, error) {
	const query = `
		SELECT ` + mangaColumns + `, COUNT(*) OVER() AS total_count
		FROM core.manga
		ORDER BY createdat DESC, id DESC
		LIMIT $1 OFFSET $2`

	return repository.scanPage(context, query, limit, offset)
}

/*
ListByTag returns the paginated subset of the catalog carrying any of the
given tags.

Description: Uses the array overlap operator (&&) against the taglist
text[] column, which is served by a GIN index. A single request can carry
several tags; one shared tag is enough to match.

Parameters:
  - context: context.Context
  - tags: []string
  - limit: int
  - offset: int

Returns:
  - []*Manga: Page of hydrated entities
  - int: Total matches
  - error: Database execution errors
*/
func (repository *postgresRepository) ListByTag(context context.Context, tags []string, limit, offset int) ([]*Manga, int, error) {
	const query = `
		SELECT ` + mangaColumns + `, COUNT(*) OVER() AS total_count
		FROM core.manga
		WHERE taglist && $1::text[]
		ORDER BY createdat DESC, id DESC
		LIMIT $2 OFFSET $3`

	return repository.scanPage(context, query, tags, limit, offset)
}

// scanPage executes a windowed list query and hydrates the page plus total.
func (repository *postgresRepository) scanPage(context context.Context, query string, args ...any) ([]*Manga, int, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_manga_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var mangas []*Manga
	var totalCount int

	for rows.Next() {
		manga := &Manga{}
		err := rows.Scan(
			&manga.ID,
			&manga.Title,
			&manga.Slug,
			&manga.Description,
			&manga.Image,
			&manga.Taglist,
			&manga.UploaderID,
			&manga.EditorID,
			&manga.CreatedAt,
			&manga.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_manga_repo_scan_failed: %w", err)
		}
		mangas = append(mangas, manga)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_manga_repo_rows_failed: %w", err)
	}

	return mangas, totalCount, nil
}

/*
ListChapters returns the chapter summaries belonging to a manga, newest first.

Description: Reads the core.chapter table directly so the detail view is
assembled in a single repository without a cross-package dependency.

Parameters:
  - context: context.Context
  - mangaID: string

Returns:
  - []ChapterSummary: Chapter projections for the detail view
  - error: Database execution errors
*/
func (repository *postgresRepository) ListChapters(context context.Context, mangaID string) ([]ChapterSummary, error) {
	const query = `
		SELECT id, name, slug, type, createdat
		FROM core.chapter
		WHERE mangaid = $1
		ORDER BY createdat DESC, id DESC`

	rows, err := repository.pool.Query(context, query, mangaID)
	if err != nil {
		return nil, fmt.Errorf("postgres_manga_repo_list_chapters_failed: %w", err)
	}
	defer rows.Close()

	// Non-nil so the detail view serializes as [] instead of null.
	summaries := []ChapterSummary{}

	for rows.Next() {
		var summary ChapterSummary
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Slug,
			&summary.Type,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_manga_repo_scan_chapter_failed: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_manga_repo_chapter_rows_failed: %w", err)
	}

	return summaries, nil
}
