// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package chapter defines the reading units of the Yonde catalog.

A chapter is an ordered set of page images belonging to one manga. Two
kinds exist and share the same storage shape: regular chapters and books
(volume-sized uploads), distinguished by a type discriminator.

Core Responsibility:

  - Content: Owns page image ordering, the unit readers actually consume.
  - Addressing: Slug-based lookup for reader deep links.
  - Integrity: Guards slug uniqueness and parent existence at creation.
*/
package chapter

import "time"

// # Domain Enums

// Type discriminates the two kinds of reading units.
type Type string

const (
	// TypeChapter is a regular serialized chapter.
	TypeChapter Type = "chapter"

	// TypeBook is a volume-sized upload.
	TypeBook Type = "book"
)

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	return t == TypeChapter || t == TypeBook
}

// # Core Entities

// Chapter represents one reading unit of a manga.
type Chapter struct {
	ID        string    `json:"id"`
	MangaID   string    `json:"manga_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"` // Unique across all chapters
	Type      Type      `json:"type"`
	AuthorID  string    `json:"author_id"` // Admin who uploaded the chapter
	Images    []string  `json:"images"`    // Page URLs in reading order
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Detail is the reader view of a chapter: the entity plus parent manga
// fields for breadcrumbs. The parent fields are empty for orphaned
// chapters whose manga has been deleted.
type Detail struct {
	Chapter
	MangaTitle string `json:"manga_title,omitempty"`
	MangaSlug  string `json:"manga_slug,omitempty"`
}

// # Field Identifiers

// Global field names for validation and form mapping in the chapter domain.
const (
	FieldMangaSlug = "mangaSlug"
	FieldMangaID   = "mangaID"
	FieldName      = "name"
	FieldSlug      = "slug"
	FieldImage     = "image"
	FieldBookID    = "bookID"
	FieldBookSlug  = "bookSlug"
)

// # Validation Bounds

const (
	// NameMaxLen bounds the chapter display name.
	NameMaxLen = 256
)
