// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package comment implements reader discussion threads attached to manga.

Comments are flat (no nesting) and always addressed through the parent
manga's slug. The read model resolves each comment to its author's
public profile so the client never joins users itself.
*/
package comment

import "time"

// # Entities

// Comment is a single reader comment persisted in social.comment.
type Comment struct {
	ID        string    `json:"id"`
	MangaID   string    `json:"manga_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resolved is the read model of a comment with the author's public
// profile denormalized in. AuthorImage may be empty.
type Resolved struct {
	Comment
	AuthorUsername string `json:"author_username"`
	AuthorImage    string `json:"author_image,omitempty"`
}

// # Field Identifiers

// Global field names for validation and routing in the comment domain.
const (
	FieldBody      = "body"
	FieldMangaSlug = "mangaSlug"
	FieldCommentID = "commentID"
)

// # Validation Bounds

const (
	// BodyMaxLen bounds a single comment body.
	BodyMaxLen = 2000
)
