// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package manga defines the core domain entities for the Yonde catalog.

It manages the lifecycle of serialized publications including metadata,
poster images, tag-based discovery, and the chapter listing shown on a
manga's detail page.

Core Responsibility:

  - Catalog: Owns the manga aggregate (title, slug, description, poster).
  - Discovery: Manages the free-form tag list used for genre browsing.
  - Navigation: Exposes chapter summaries so readers can jump into content.

This package acts as the source of truth for all series-level data models.
*/
package manga

import "time"

// # Core Entities

// Manga is the central aggregate of the Yonde domain.
// It represents a single serialized publication in the catalog.
type Manga struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"` // URL-safe identifier, unique across the catalog
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"` // Poster URL under /public/images/
	Taglist     []string  `json:"taglist"`         // Free-form genre/theme tags
	UploaderID  string    `json:"uploader_id"`
	EditorID    string    `json:"last_editor_id"` // Admin who last touched the entry
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChapterSummary is the chapter projection embedded in a manga detail view.
// It carries just enough for the reader to render the chapter list.
type ChapterSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Type      string    `json:"type"` // "chapter" or "book"
	CreatedAt time.Time `json:"created_at"`
}

// Detail is the full manga view served on the reading page:
// the aggregate plus its chapters, newest first.
type Detail struct {
	Manga
	Chapters []ChapterSummary `json:"chapters"`
}

// # Field Identifiers

// Global field names for validation and form mapping in the catalog domain.
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldTaglist     = "taglist"
	FieldImage       = "image"
	FieldMangaID     = "mangaID"
	FieldTag         = "tag"
	FieldMessage     = "message"
)

// # Validation Bounds

const (
	// TitleMaxLen bounds the manga title length.
	TitleMaxLen = 256

	// DescriptionMaxLen bounds the synopsis length.
	DescriptionMaxLen = 5000
)
