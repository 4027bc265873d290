// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle—from account creation
to token issuance and profile lookup.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Handles JWT orchestration.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/constants"
	"github.com/phamduc/yonde/internal/platform/middleware"
	requestutil "github.com/phamduc/yonde/internal/platform/request"
	"github.com/phamduc/yonde/internal/platform/respond"
	"github.com/phamduc/yonde/internal/platform/validate"
	"github.com/phamduc/yonde/pkg/uuid"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Profile resolution).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with identity-specific routes.
//
// # Endpoints
//   - POST /register        : Creates a new account.
//   - POST /login           : Authenticates and returns a JWT.
//   - GET  /getme           : Returns the authenticated user's profile.
//   - GET  /userid/{userID} : Returns another member's public profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/getme", handler.getMe)
		r.Get("/userid/{userID}", handler.userByID)
	})

	return router
}

// # Request Payloads

// Registration and login payloads arrive wrapped in a "user" object,
// matching what the web client has always sent.
type registerRequest struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

type loginRequest struct {
	User struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	} `json:"user"`
}

/*
Register handles the creation of a new user account.

POST /api/register

Description: Validates input, checks for identity conflicts, and persists
a new user profile to the database.

Request:
  - Body: registerRequest (Username, Email, Password)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	payload := input.User
	validator := &validate.Validator{}
	validator.Required(FieldUsername, payload.Username).
		MinLen(FieldUsername, payload.Username, UsernameMinLen).
		MaxLen(FieldUsername, payload.Username, UsernameMaxLen).
		Alphanumeric(FieldUsername, payload.Username).
		Required(FieldEmail, payload.Email).
		Email(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password).
		MinLen(FieldPassword, payload.Password, PasswordMinLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and issues an access token.

POST /api/login

Description: Verifies credentials by username or email and generates a
signed JWT. The token is mirrored into the legacy 'auth-token' response
header for older clients.

Request:
  - Body: loginRequest (Identifier, Password)

Response:
  - 200: Session: Access token and User profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	payload := input.User
	validator := &validate.Validator{}
	validator.Required(FieldIdentifier, payload.Identifier)
	validator.Required(FieldPassword, payload.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Identifier: payload.Identifier,
		Password:   payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.LegacyAuthHeader, session.AccessToken)
	respond.OK(writer, map[string]any{
		FieldToken: session.AccessToken,
		FieldUser:  session.User,
	})
}

/*
GetMe returns the profile of the currently authenticated user.

GET /api/getme

Description: Resolves the token claims into a fresh database read so the
client always sees the current profile state.

Response:
  - 200: User: The authenticated user's profile
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Account no longer exists
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UserByID returns the public profile of any member.

GET /api/userid/{userID}

Description: Exposes only client-safe fields (id, username, image).

Response:
  - 200: PublicProfile: The requested member's public profile
  - 400: ErrBadRequest: Malformed user ID
  - 404: ErrNotFound: No such member
*/
func (handler *Handler) userByID(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, FieldUserID)
	if !uuid.IsValid(userID) {
		respond.Error(writer, request, apperr.BadRequest("Malformed user ID"))
		return
	}

	profile, err := handler.authService.PublicProfileByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
