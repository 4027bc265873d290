// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamduc/yonde/internal/platform/apperr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (repository *postgresRepository) Create(context context.Context, comment *Comment) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	// 1. Author existence check. Tokens outlive accounts, so the
	// claim's user ID is not proof the row is still there.
	var authorID string
	err = transaction.QueryRow(context,
		"SELECT id FROM users.account WHERE id = $1", comment.AuthorID,
	).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("User")
		}
		return fmt.Errorf("postgres_comment_repo_author_check_failed: %w", err)
	}

	// 2. Insert
	const query = `
		INSERT INTO social.comment (
			id, mangaid, authorid, body, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	_, err = transaction.Exec(context, query,
		comment.ID,
		comment.MangaID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_comment_repo_commit_failed: %w", err)
	}

	return nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	const query = `
		SELECT id, mangaid, authorid, body, createdat, updatedat
		FROM social.comment
		WHERE id = $1`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.MangaID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

func (repository *postgresRepository) ListByManga(context context.Context, mangaID string) ([]Resolved, error) {
	const query = `
		SELECT
			c.id, c.mangaid, c.authorid, c.body, c.createdat, c.updatedat,
			COALESCE(a.username, ''), COALESCE(a.image, '')
		FROM social.comment c
		LEFT JOIN users.account a ON a.id = c.authorid
		WHERE c.mangaid = $1
		ORDER BY c.createdat DESC, c.id DESC`

	rows, err := repository.pool.Query(context, query, mangaID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := []Resolved{}
	for rows.Next() {
		var resolved Resolved
		err := rows.Scan(
			&resolved.ID,
			&resolved.MangaID,
			&resolved.AuthorID,
			&resolved.Body,
			&resolved.CreatedAt,
			&resolved.UpdatedAt,
			&resolved.AuthorUsername,
			&resolved.AuthorImage,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, resolved)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_rows_failed: %w", err)
	}

	return comments, nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM social.comment WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *postgresRepository) ResolveManga(context context.Context, slug string) (string, error) {
	const query = "SELECT id FROM core.manga WHERE slug = $1"

	var mangaID string
	err := repository.pool.QueryRow(context, query, slug).Scan(&mangaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Manga")
		}
		return "", fmt.Errorf("postgres_comment_repo_resolve_manga_failed: %w", err)
	}

	return mangaID, nil
}
