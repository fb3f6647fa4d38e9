package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/fetch"
	"github.com/jonathan/career-compass/internal/types"
)

var (
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// Fetcher retrieves a page. *fetch.CachedFetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.CachedResult, error)
}

// URLOptions configures FromURL.
type URLOptions struct {
	// Fetcher defaults to an uncached fetcher
	Fetcher Fetcher
	// Renderer, when set, re-renders pages whose extracted text is too short
	Renderer fetch.Renderer
	// Source overrides the posting source, which defaults to the URL host
	Source string
	Logger *zap.Logger
	Now    func() time.Time
}

// FromURL fetches a posting page, extracts its text with platform-specific selectors and
// cleans it. The posting source is the URL host without a leading "www.".
func FromURL(ctx context.Context, urlStr string, opts URLOptions) (types.JobPosting, *Metadata, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Hostname() == "" {
		return types.JobPosting{}, nil, fmt.Errorf("%w: %q", ErrInvalidURL, urlStr)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewCachedFetcher(nil, fetch.CachedFetcherConfig{Logger: logger})
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("fetching posting", zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return types.JobPosting{}, nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	content := fetch.ContentSelectors(platform)
	noise := fetch.NoiseSelectors(platform)
	html := result.HTML
	text, err := fetch.ExtractText(html, content, noise...)
	if err != nil {
		return types.JobPosting{}, nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	rendered := false
	if opts.Renderer != nil && fetch.ShouldUseBrowser(text) {
		logger.Debug("content too short, rendering in browser",
			zap.String("url", urlStr), zap.Int("chars", len(text)), zap.Int("min", fetch.MinContentLength))
		browserHTML, renderErr := opts.Renderer.Render(ctx, urlStr)
		if renderErr != nil {
			logger.Warn("browser rendering failed, using HTTP content", zap.String("url", urlStr), zap.Error(renderErr))
		} else if browserText, extractErr := fetch.ExtractText(browserHTML, content, noise...); extractErr != nil {
			logger.Warn("browser content extraction failed", zap.String("url", urlStr), zap.Error(extractErr))
		} else {
			html, text, rendered = browserHTML, browserText, true
		}
	}

	source := opts.Source
	if source == "" {
		source = strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	}

	posting, meta, err := newPosting(text, source, urlStr, now())
	if err != nil {
		return types.JobPosting{}, nil, err
	}
	meta.Platform = string(platform)
	meta.Title = fetch.Title(html)
	meta.Rendered = rendered
	meta.FromCache = result.FromCache

	logger.Debug("posting ingested", zap.String("url", urlStr), zap.Int("tokens", meta.Tokens), zap.Bool("rendered", rendered))
	return posting, meta, nil
}
