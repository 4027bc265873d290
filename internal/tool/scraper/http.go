// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package scraper

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduc/yonde/internal/platform/middleware"
	requestutil "github.com/phamduc/yonde/internal/platform/request"
	"github.com/phamduc/yonde/internal/platform/respond"
	"github.com/phamduc/yonde/internal/platform/validate"
)

// Field names for the scrape request payload.
const (
	FieldURL      = "url"
	FieldSelector = "selector"
)

// # HTTP Handler

// Handler exposes the scrape endpoint over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the scraper HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the tool sub-router mounted at /api/tool.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireAuth)

		router.Post("/scrape", handler.scrape)
	})

	return router
}

type scrapeRequest struct {
	URL      string `json:"url"`
	Selector string `json:"selector"`
}

// scrape handles POST /api/tool/scrape.
func (handler *Handler) scrape(writer http.ResponseWriter, httpRequest *http.Request) {
	var payload scrapeRequest
	if err := requestutil.DecodeJSON(httpRequest, &payload); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldURL, payload.URL)
	validator.Required(FieldSelector, payload.Selector)
	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	result, err := handler.service.Scrape(httpRequest.Context(), payload.URL, payload.Selector)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, result)
}
