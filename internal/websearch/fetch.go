// Package websearch visits prospect websites during deep searches and
// extracts contact details the grounded model did not return.
package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout per site.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; LeadProspector/1.0)"

// Page holds the raw content fetched from a prospect's website.
type Page struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// FetchError represents an error while fetching a prospect's website.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchOptions configures the site fetch behavior.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultFetchOptions returns sensible defaults for fetching prospect sites.
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// FetchPage retrieves HTML content from a prospect's website.
func FetchPage(ctx context.Context, urlStr string, opts *FetchOptions) (*Page, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &FetchError{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, &FetchError{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &FetchError{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	page := &Page{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return page, &FetchError{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return page, nil
}

// maxPageBytes caps how much of a prospect page is read. Contact details
// live in the header and footer, so a partial page is fine.
const maxPageBytes = 2 << 20

// NormalizeSiteURL makes a bare domain fetchable by prefixing https.
func NormalizeSiteURL(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		return "https://" + site
	}
	return site
}
