// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (verifier *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if verifier.err != nil {
		return nil, verifier.err
	}
	return verifier.claims, nil
}

func okHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		called = true
		writer.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthenticateAnonymousPassesThrough(t *testing.T) {
	next, called := okHandler(t)
	handler := Authenticate(&stubVerifier{})(next)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthenticateBearerInjectsClaims(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "user-1", Role: string(sec.RoleMember)}

	var seen *sec.AuthClaims
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = GetUser(request.Context())
	})

	handler := Authenticate(&stubVerifier{claims: claims})(next)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer some.jwt.token")

	handler.ServeHTTP(httptest.NewRecorder(), request)

	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
}

func TestAuthenticateLegacyHeader(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "user-2"}

	var seen *sec.AuthClaims
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = GetUser(request.Context())
	})

	handler := Authenticate(&stubVerifier{claims: claims})(next)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("auth-token", "some.jwt.token")

	handler.ServeHTTP(httptest.NewRecorder(), request)

	require.NotNil(t, seen)
	assert.Equal(t, "user-2", seen.UserID)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	next, called := okHandler(t)
	handler := Authenticate(&stubVerifier{})(next)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Token abc")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	next, called := okHandler(t)
	handler := Authenticate(&stubVerifier{err: apperr.Unauthorized("bad token")})(next)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer expired.jwt")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAuthBlocksAnonymous(t *testing.T) {
	next, called := okHandler(t)
	handler := RequireAuth(next)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		claims     *sec.AuthClaims
		required   sec.UserRole
		wantStatus int
	}{
		{
			name:       "anonymous is rejected",
			claims:     nil,
			required:   sec.RoleMember,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "member cannot access admin routes",
			claims:     &sec.AuthClaims{UserID: "u", Role: string(sec.RoleMember)},
			required:   sec.RoleAdmin,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin satisfies member requirement",
			claims:     &sec.AuthClaims{UserID: "u", Role: string(sec.RoleAdmin)},
			required:   sec.RoleMember,
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, _ := okHandler(t)
			inner := RequireRole(tc.required)(next)

			// Authenticate normally runs first; simulate its context injection.
			var handler http.Handler = inner
			if tc.claims != nil {
				handler = Authenticate(&stubVerifier{claims: tc.claims})(inner)
			}

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.claims != nil {
				request.Header.Set("Authorization", "Bearer any")
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}
