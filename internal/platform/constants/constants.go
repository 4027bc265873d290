// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Media: Upload limits and public URL layout.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "yonde-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Multipart chapter uploads can carry dozens of page images.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "yonde.app"

	// AccessTokenTTL is how long an issued token stays valid. There is no
	// refresh or revocation mechanism: tokens are trusted until expiry.
	AccessTokenTTL = 24 * time.Hour

	// LegacyAuthHeader is the pre-Bearer header some older clients still send.
	LegacyAuthHeader = "auth-token"
)

// # Media & Uploads

const (
	// MaxUploadBytes is the per-file limit for uploaded images (5 MB).
	MaxUploadBytes = 5 << 20

	// MaxChapterPages bounds the number of page images in one chapter upload.
	MaxChapterPages = 200

	// PublicImagePrefix is the URL prefix under which stored images are served.
	PublicImagePrefix = "/public/images/"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Caching

const (
	// RedisPrefixManga is the key prefix for cached manga detail documents.
	RedisPrefixManga = "catalog:manga:"

	// MangaCacheTTL bounds staleness of the manga detail cache. Writes also
	// invalidate eagerly; the TTL is a backstop.
	MangaCacheTTL = 10 * time.Minute
)

// # Scraping Utility

const (
	// ScrapeFetchTimeout caps the outbound page and image fetches.
	ScrapeFetchTimeout = 12 * time.Second

	// ScrapeCleanupDelay is how long a scraped image folder survives before
	// its detached cleanup timer removes it.
	ScrapeCleanupDelay = 1 * time.Minute
)
