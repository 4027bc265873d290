// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package manga provides the HTTP interface for the catalog.

It exposes endpoints for browsing manga, retrieving the detail view with
chapter lists, and managing catalog entries by authorized personnel.

# Routing Strategy

  - Public: Discovery endpoints accessible to all visitors (list, detail, tags).
  - Restricted: Mutative endpoints requiring the Admin role (create, update, delete).

Mutations arrive as multipart/form-data because they may carry a poster
image alongside the metadata fields. The handler translates between the
form layer and the internal domain [Service].
*/
package manga

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/middleware"
	requestutil "github.com/phamduc/yonde/internal/platform/request"
	"github.com/phamduc/yonde/internal/platform/respond"
	"github.com/phamduc/yonde/internal/platform/sec"
	"github.com/phamduc/yonde/internal/platform/validate"
	"github.com/phamduc/yonde/pkg/pagination"
	"github.com/phamduc/yonde/pkg/pointer"
	"github.com/phamduc/yonde/pkg/slice"
	"github.com/phamduc/yonde/pkg/uuid"
)

// maxFormMemory bounds the in-memory portion of a parsed multipart form;
// larger file parts spill to temporary files.
const maxFormMemory = 32 << 20

// # Definitions & Constructors

// MediaStore defines the slice of the media layer the handler needs:
// storing an uploaded poster and undoing that store when the catalog
// mutation fails afterwards.
type MediaStore interface {
	SaveUpload(fileHeader *multipart.FileHeader) (string, error)
	Remove(context context.Context, publicURL string)
}

// Handler implements catalog-related HTTP endpoints.
type Handler struct {
	service *Service
	media   MediaStore
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, media MediaStore) *Handler {
	return &Handler{service: service, media: media}
}

// RegisterRoutes mounts the catalog endpoints onto the given router.
//
// # Endpoints
//   - GET    /                  : Paginated catalog listing.
//   - GET    /tags/{tag}        : Paginated listing filtered by tag.
//   - GET    /{slug}            : Public detail view with chapters.
//   - GET    /id/{mangaID}      : Raw row for the admin edit form.
//   - POST   /create            : Creates a catalog entry (multipart).
//   - PUT    /update/{mangaID}  : Updates a catalog entry (multipart).
//   - DELETE /{mangaID}         : Removes a catalog entry.
//
// The chapter endpoints share this router and are registered separately.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/tags/{tag}", handler.listByTag)
	router.Get("/{slug}", handler.bySlug)

	// Restricted endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/id/{mangaID}", handler.byID)
		r.Post("/create", handler.create)
		r.Put("/update/{mangaID}", handler.update)
		r.Delete("/{mangaID}", handler.delete)
	})
}

/*
List returns a page of the catalog.

GET /api/manga?page=&limit=

Response:
  - 200: []Manga with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	mangas, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, mangas, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
ListByTag returns a page of the catalog matching the given tags.

GET /api/manga/tags/{tag}?page=&limit=

Description: The path segment takes one tag or a comma-separated list;
a manga matches when it carries any of them.

Response:
  - 200: []Manga with pagination metadata
*/
func (handler *Handler) listByTag(writer http.ResponseWriter, request *http.Request) {
	tags := parseTaglist([]string{requestutil.Param(request, FieldTag)})
	params := pagination.FromRequest(request)

	mangas, total, err := handler.service.ByTag(request.Context(), tags, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, mangas, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
BySlug returns the public detail view for the reading page.

GET /api/manga/{slug}

Description: Serves from the Redis detail cache when possible; chapter
summaries are ordered newest first.

Response:
  - 200: Detail: Manga with its chapter list
  - 404: ErrNotFound: No manga with this slug
*/
func (handler *Handler) bySlug(writer http.ResponseWriter, request *http.Request) {
	slugValue := requestutil.Param(request, FieldSlug)

	detail, err := handler.service.BySlug(request.Context(), slugValue)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
ByID returns the raw manga row for the admin edit form.

GET /api/manga/id/{mangaID}

Response:
  - 200: Manga
  - 400: ErrBadRequest: Malformed manga ID
  - 401/403: Authentication/role failures
  - 404: ErrNotFound: No such manga
*/
func (handler *Handler) byID(writer http.ResponseWriter, request *http.Request) {
	mangaID := requestutil.Param(request, FieldMangaID)
	if !uuid.IsValid(mangaID) {
		respond.Error(writer, request, apperr.BadRequest("Malformed manga ID"))
		return
	}

	manga, err := handler.service.ByID(request.Context(), mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, manga)
}

/*
Create publishes a new manga to the catalog.

POST /api/manga/create

Description: Accepts multipart/form-data with the metadata fields and an
optional poster file under the "image" part.

Request (form fields):
  - title: string (required)
  - slug: string (optional; derived from title when empty)
  - description: string
  - taglist: repeated values or one comma-separated value
  - image: file part (optional poster)

Response:
  - 201: Manga: Created entry
  - 400: Validation or malformed form
  - 409: ErrConflict: Slug already taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(maxFormMemory); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Malformed multipart form"))
		return
	}

	title := request.FormValue(FieldTitle)
	description := request.FormValue(FieldDescription)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, TitleMaxLen).
		MaxLen(FieldDescription, description, DescriptionMaxLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	imageURL, err := handler.storePoster(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	manga, err := handler.service.Create(request.Context(), CreateInput{
		Title:       title,
		Slug:        request.FormValue(FieldSlug),
		Description: description,
		Taglist:     parseTaglist(request.MultipartForm.Value[FieldTaglist]),
		ImageURL:    imageURL,
		ActorID:     actorID,
	})

	if err != nil {
		// The poster was stored before the row; undo it.
		if imageURL != "" {
			handler.media.Remove(request.Context(), imageURL)
		}
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, manga)
}

/*
Update applies partial changes to a catalog entry.

PUT /api/manga/update/{mangaID}

Description: Multipart form; only the fields present in the form are
touched. A new "image" part replaces the poster and removes the old file.

Response:
  - 200: Manga: Updated entry
  - 400: Validation, malformed ID, or malformed form
  - 404: ErrNotFound: No such manga
  - 409: ErrConflict: Slug already taken
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	mangaID := requestutil.Param(request, FieldMangaID)
	if !uuid.IsValid(mangaID) {
		respond.Error(writer, request, apperr.BadRequest("Malformed manga ID"))
		return
	}

	if err := request.ParseMultipartForm(maxFormMemory); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Malformed multipart form"))
		return
	}

	var input UpdateInput
	form := request.MultipartForm.Value

	if values, ok := form[FieldTitle]; ok && len(values) > 0 {
		validator := &validate.Validator{}
		validator.Required(FieldTitle, values[0]).MaxLen(FieldTitle, values[0], TitleMaxLen)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
		input.Title = pointer.To(values[0])
	}

	if values, ok := form[FieldSlug]; ok && len(values) > 0 {
		input.Slug = pointer.To(values[0])
	}

	if values, ok := form[FieldDescription]; ok && len(values) > 0 {
		validator := &validate.Validator{}
		validator.MaxLen(FieldDescription, values[0], DescriptionMaxLen)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
		input.Description = pointer.To(values[0])
	}

	if values, ok := form[FieldTaglist]; ok {
		input.Taglist = parseTaglist(values)
		if input.Taglist == nil {
			// Field present but empty means "clear the tags".
			input.Taglist = []string{}
		}
	}

	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ActorID = actorID

	imageURL, err := handler.storePoster(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if imageURL != "" {
		input.ImageURL = pointer.To(imageURL)
	}

	manga, err := handler.service.Update(request.Context(), mangaID, input)
	if err != nil {
		if imageURL != "" {
			handler.media.Remove(request.Context(), imageURL)
		}
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, manga)
}

/*
Delete removes a catalog entry.

DELETE /api/manga/{mangaID}

Description: Deletes the row and poster file. Chapters of the manga are
left in storage but disappear from the catalog.

Response:
  - 204: No Content
  - 400: ErrBadRequest: Malformed manga ID
  - 404: ErrNotFound: No such manga
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	mangaID := requestutil.Param(request, FieldMangaID)
	if !uuid.IsValid(mangaID) {
		respond.Error(writer, request, apperr.BadRequest("Malformed manga ID"))
		return
	}

	if err := handler.service.Delete(request.Context(), mangaID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Form Helpers

// storePoster saves the optional poster part and returns its public URL,
// or "" when the form carries no image.
func (handler *Handler) storePoster(request *http.Request) (string, error) {
	files := request.MultipartForm.File[FieldImage]
	if len(files) == 0 {
		return "", nil
	}

	url, err := handler.media.SaveUpload(files[0])
	if err != nil {
		return "", apperr.Internal(err)
	}
	return url, nil
}

// parseTaglist accepts both repeated form values and a single
// comma-separated value, trimming whitespace and dropping empties.
func parseTaglist(values []string) []string {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	trimmed := slice.Map(values, strings.TrimSpace)
	return slice.Filter(trimmed, func(tag string) bool { return tag != "" })
}
