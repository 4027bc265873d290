// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/middleware"
	requestutil "github.com/phamduc/yonde/internal/platform/request"
	"github.com/phamduc/yonde/internal/platform/respond"
	"github.com/phamduc/yonde/internal/platform/validate"
	"github.com/phamduc/yonde/pkg/uuid"
)

// # HTTP Handler

// Handler exposes comment endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the comment HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the comment sub-router mounted at /api/comment.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/get/{mangaSlug}", handler.list)

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireAuth)

		router.Post("/create/{mangaSlug}", handler.create)
		router.Delete("/delete/{mangaSlug}/{commentID}", handler.delete)
	})

	return router
}

// # Endpoints

type createRequest struct {
	Body string `json:"body"`
}

// create handles POST /api/comment/create/{mangaSlug}.
func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var payload createRequest
	if err := requestutil.DecodeJSON(httpRequest, &payload); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldBody, payload.Body)
	validator.MaxLen(FieldBody, payload.Body, BodyMaxLen)
	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	mangaSlug := requestutil.Param(httpRequest, FieldMangaSlug)

	thread, err := handler.service.Add(httpRequest.Context(), mangaSlug, userID, payload.Body)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, thread)
}

// list handles GET /api/comment/get/{mangaSlug}.
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	mangaSlug := requestutil.Param(httpRequest, FieldMangaSlug)

	thread, err := handler.service.List(httpRequest.Context(), mangaSlug)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, thread)
}

// delete handles DELETE /api/comment/delete/{mangaSlug}/{commentID}.
func (handler *Handler) delete(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	mangaSlug := requestutil.Param(httpRequest, FieldMangaSlug)
	commentID := requestutil.Param(httpRequest, FieldCommentID)
	if !uuid.IsValid(commentID) {
		respond.Error(writer, httpRequest, apperr.BadRequest("Invalid comment ID"))
		return
	}

	thread, err := handler.service.Remove(httpRequest.Context(), mangaSlug, commentID, userID)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, thread)
}
