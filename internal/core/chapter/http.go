// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package chapter

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/constants"
	"github.com/phamduc/yonde/internal/platform/middleware"
	requestutil "github.com/phamduc/yonde/internal/platform/request"
	"github.com/phamduc/yonde/internal/platform/respond"
	"github.com/phamduc/yonde/internal/platform/sec"
	"github.com/phamduc/yonde/internal/platform/validate"
	"github.com/phamduc/yonde/pkg/uuid"
)

const maxFormMemory = 32 << 20

// MediaStore persists and removes uploaded page images.
type MediaStore interface {
	SaveAll(files []*multipart.FileHeader) ([]string, error)
	RemoveAll(context context.Context, publicURLs []string)
}

// # HTTP Handler

// Handler exposes chapter endpoints over HTTP.
type Handler struct {
	service *Service
	media   MediaStore
}

// NewHandler constructs the chapter HTTP handler.
func NewHandler(service *Service, media MediaStore) *Handler {
	return &Handler{service: service, media: media}
}

// RegisterRoutes attaches chapter endpoints to the manga router. The
// chapter surface lives under /api/manga because a chapter is always
// addressed through its parent catalog.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public reader endpoints.
	router.Get("/book/{bookID}", handler.byID)
	router.Get("/book/slug/{bookSlug}", handler.bySlug)

	// Admin write endpoints.
	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireRole(sec.RoleAdmin))

		router.Post("/create/chapter", handler.create(TypeChapter))
		router.Post("/create/book", handler.create(TypeBook))
		router.Delete("/book/{mangaID}/{bookID}", handler.delete)
	})
}

// # Endpoints

// create handles POST /api/manga/create/chapter and
// POST /api/manga/create/book. Both routes share the handler; only the
// type discriminator differs.
func (handler *Handler) create(chapterType Type) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if err := request.ParseMultipartForm(maxFormMemory); err != nil {
			respond.Error(writer, request, apperr.BadRequest("Request body must be multipart form data"))
			return
		}

		mangaSlug := request.FormValue(FieldMangaSlug)
		name := request.FormValue(FieldName)
		explicitSlug := request.FormValue(FieldSlug)

		validator := &validate.Validator{}
		validator.Required(FieldMangaSlug, mangaSlug)
		validator.Slug(FieldMangaSlug, mangaSlug)
		validator.Required(FieldName, name)
		validator.MaxLen(FieldName, name, NameMaxLen)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}

		actorID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		files := request.MultipartForm.File[FieldImage]
		if len(files) == 0 {
			respond.Error(writer, request, apperr.BadRequest("At least one page image is required"))
			return
		}
		if len(files) > constants.MaxChapterPages {
			respond.Error(writer, request, apperr.BadRequest("Too many page images"))
			return
		}

		imageURLs, err := handler.media.SaveAll(files)
		if err != nil {
			respond.Error(writer, request, apperr.Internal(err))
			return
		}

		chapter, err := handler.service.Create(request.Context(), CreateInput{
			MangaSlug: mangaSlug,
			Name:      name,
			Slug:      explicitSlug,
			Type:      chapterType,
			ActorID:   actorID,
			ImageURLs: imageURLs,
		})
		if err != nil {
			// Stored pages belong to nothing now; roll them back.
			handler.media.RemoveAll(request.Context(), imageURLs)
			respond.Error(writer, request, err)
			return
		}

		respond.Created(writer, chapter)
	}
}

// byID handles GET /api/manga/book/{bookID}.
func (handler *Handler) byID(writer http.ResponseWriter, request *http.Request) {
	bookID := chi.URLParam(request, FieldBookID)
	if !uuid.IsValid(bookID) {
		respond.Error(writer, request, apperr.BadRequest("Invalid chapter ID"))
		return
	}

	detail, err := handler.service.ByID(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// bySlug handles GET /api/manga/book/slug/{bookSlug}.
func (handler *Handler) bySlug(writer http.ResponseWriter, request *http.Request) {
	bookSlug := chi.URLParam(request, FieldBookSlug)

	detail, err := handler.service.BySlug(request.Context(), bookSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// delete handles DELETE /api/manga/book/{mangaID}/{bookID}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	mangaID := chi.URLParam(request, FieldMangaID)
	bookID := chi.URLParam(request, FieldBookID)

	if !uuid.IsValid(mangaID) || !uuid.IsValid(bookID) {
		respond.Error(writer, request, apperr.BadRequest("Invalid ID"))
		return
	}

	if err := handler.service.Delete(request.Context(), mangaID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
