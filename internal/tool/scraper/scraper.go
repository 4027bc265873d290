// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package scraper implements the one-off page image collection utility.

Given a page URL and a selector, it fetches the page, gathers every
<img src> under the matching elements, and downloads the images into a
fresh folder under the image root. The folder self-destructs after a
fixed delay; the caller is expected to pick the files up immediately.

The selector is deliberately tiny: a leading dot matches a class name,
anything else matches an element tag. This covers the galleries the
tool is pointed at without pulling in a CSS engine.
*/
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/constants"
	"github.com/phamduc/yonde/pkg/slug"
)

// # Service

// Service fetches remote pages and harvests their images.
type Service struct {
	client *http.Client
	root   string
	logger *slog.Logger
}

// NewService constructs the scraper. root is the image directory under
// which per-scrape temp folders are created.
func NewService(root string, logger *slog.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: constants.ScrapeFetchTimeout},
		root:   root,
		logger: logger,
	}
}

// Result summarizes one scrape batch.
type Result struct {
	// Title is the slug of the first <h2> heading, or "scrape" when the
	// page has none.
	Title string `json:"title"`
	// Folder is the temp directory the images were saved into.
	Folder string `json:"folder"`
	// Files lists the saved file names in page order.
	Files []string `json:"files"`
	// Skipped counts images that failed to download.
	Skipped int `json:"skipped"`
	// ExpiresAt is when the folder is removed.
	ExpiresAt time.Time `json:"expires_at"`
}

/*
Scrape fetches pageURL, collects image sources under selector, and
downloads them into a fresh folder under the image root.

Description: Individual download failures are logged and counted, never
fatal. The folder is removed on a detached timer after
constants.ScrapeCleanupDelay regardless of what the caller does with
the response.

Parameters:
  - context: context.Context
  - pageURL: string (Absolute http or https URL)
  - selector: string (Tag name, or ".class")

Returns:
  - *Result: Batch summary
  - error: apperr.BadRequest (bad URL, no images) or fetch errors
*/
func (service *Service) Scrape(context context.Context, pageURL string, selector string) (*Result, error) {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, apperr.BadRequest("URL must be absolute http or https")
	}

	// 1. Fetch and parse the page.
	document, err := service.fetchDocument(context, pageURL)
	if err != nil {
		return nil, err
	}

	// 2. Harvest sources and the batch title.
	sources := extractImageSources(document, selector)
	if len(sources) == 0 {
		return nil, apperr.BadRequest("No images found under the selector")
	}

	title := slug.From(extractTitle(document))
	if title == "" {
		title = "scrape"
	}

	// 3. Fresh folder per batch.
	folder, err := os.MkdirTemp(service.root, "scrape-")
	if err != nil {
		return nil, fmt.Errorf("scraper_mkdir_failed: %w", err)
	}

	// 4. Download everything, skipping failures.
	result := &Result{
		Title:  title,
		Folder: filepath.Base(folder),
		Files:  []string{},
	}

	for index, source := range sources {
		resolved := base.ResolveReference(source)
		fileName := fmt.Sprintf("%s-%d%s", title, index+1, imageExtension(resolved))

		if err := service.download(context, resolved.String(), filepath.Join(folder, fileName)); err != nil {
			service.logger.Warn("scrape_image_skipped",
				"url", resolved.String(),
				"error", err,
			)
			result.Skipped++
			continue
		}

		result.Files = append(result.Files, fileName)
	}

	// 5. The folder is scratch space. Remove it after the grace period
	// on a detached timer so the response never waits on cleanup.
	result.ExpiresAt = time.Now().Add(constants.ScrapeCleanupDelay)
	time.AfterFunc(constants.ScrapeCleanupDelay, func() {
		if err := os.RemoveAll(folder); err != nil {
			service.logger.Warn("scrape_cleanup_failed", "folder", folder, "error", err)
		}
	})

	service.logger.Info("scrape_finished",
		"url", pageURL,
		"title", title,
		"saved", len(result.Files),
		"skipped", result.Skipped,
	)

	return result, nil
}

// fetchDocument GETs the page and parses it as HTML.
func (service *Service) fetchDocument(context context.Context, pageURL string) (*html.Node, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, apperr.BadRequest("URL must be absolute http or https")
	}

	response, err := service.client.Do(request)
	if err != nil {
		return nil, apperr.BadRequest("Failed to fetch the page")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.BadRequest(fmt.Sprintf("Page responded with status %d", response.StatusCode))
	}

	document, err := html.Parse(response.Body)
	if err != nil {
		return nil, apperr.BadRequest("Page is not parseable HTML")
	}

	return document, nil
}

// download streams one image to disk.
func (service *Service) download(context context.Context, imageURL string, destination string) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("scraper_request_failed: %w", err)
	}

	response, err := service.client.Do(request)
	if err != nil {
		return fmt.Errorf("scraper_fetch_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("scraper_fetch_failed: status %d", response.StatusCode)
	}

	file, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("scraper_create_failed: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, response.Body); err != nil {
		os.Remove(destination)
		return fmt.Errorf("scraper_write_failed: %w", err)
	}

	return nil
}

// # HTML Extraction

// extractImageSources walks the document and collects <img src> values
// inside every element matched by selector, in document order.
func extractImageSources(document *html.Node, selector string) []*url.URL {
	sources := []*url.URL{}

	var collectImages func(node *html.Node)
	collectImages = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "img" {
			if src := attribute(node, "src"); src != "" {
				if parsed, err := url.Parse(src); err == nil {
					sources = append(sources, parsed)
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			collectImages(child)
		}
	}

	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if matchesSelector(node, selector) {
			collectImages(node)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(document)

	return sources
}

// extractTitle returns the text of the first <h2> element, or "".
func extractTitle(document *html.Node) string {
	var heading *html.Node

	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if heading != nil {
			return
		}
		if node.Type == html.ElementNode && node.Data == "h2" {
			heading = node
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(document)

	if heading == nil {
		return ""
	}

	var text strings.Builder
	var collect func(node *html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			text.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(heading)

	return strings.TrimSpace(text.String())
}

// matchesSelector reports whether node matches the tiny selector
// grammar: ".name" matches a class, anything else matches the tag.
func matchesSelector(node *html.Node, selector string) bool {
	if node.Type != html.ElementNode {
		return false
	}

	if className, isClass := strings.CutPrefix(selector, "."); isClass {
		for _, class := range strings.Fields(attribute(node, "class")) {
			if class == className {
				return true
			}
		}
		return false
	}

	return node.Data == selector
}

// attribute returns the value of the named attribute, or "".
func attribute(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// imageExtension picks a file extension from the image URL path,
// defaulting to .webp when the path carries none.
func imageExtension(imageURL *url.URL) string {
	extension := strings.ToLower(path.Ext(imageURL.Path))
	switch extension {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif":
		return extension
	default:
		return ".webp"
	}
}
