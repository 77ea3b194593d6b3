package websearch

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/lead-prospector/internal/types"
)

// maxConcurrentSites bounds the site-visit fan-out during deep searches.
const maxConcurrentSites = 4

// EnricherOptions configures the deep-search site enricher.
type EnricherOptions struct {
	FetchTimeout   time.Duration
	BrowserEnabled bool // allow headless-browser fallback for client-rendered sites
	Verbose        bool
}

// Enricher visits each contact's website and fills in social profiles,
// email and a summary the grounded model left as sentinels.
type Enricher struct {
	opts EnricherOptions
}

// NewEnricher creates a site enricher.
func NewEnricher(opts EnricherOptions) *Enricher {
	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = DefaultTimeout
	}
	return &Enricher{opts: opts}
}

// Enrich scrapes the website of every contact that has one and merges the
// findings into the records. Only absent (sentinel) fields are filled;
// model-provided values are never overwritten. Per-site failures are
// logged and skipped, never fatal.
func (e *Enricher) Enrich(ctx context.Context, contacts []types.ContactRecord, params types.SearchParams) []types.ContactRecord {
	out := make([]types.ContactRecord, len(contacts))
	copy(out, contacts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSites)

	for i := range out {
		if types.IsSentinel(out[i].Website) {
			continue
		}
		g.Go(func() error {
			details, err := e.scrapeSite(gctx, out[i].Website)
			if err != nil {
				if e.opts.Verbose {
					log.Printf("[WEBSEARCH] skipping %s: %v", out[i].Name, err)
				}
				return nil
			}
			mergeDetails(&out[i], details, params)
			return nil
		})
	}

	// Workers only return nil; the group is used for the limit and ctx wiring.
	_ = g.Wait()

	return out
}

// scrapeSite fetches one prospect site, falling back to a headless browser
// when the static HTML looks client-rendered.
func (e *Enricher) scrapeSite(ctx context.Context, site string) (*SiteDetails, error) {
	url := NormalizeSiteURL(site)

	page, err := FetchPage(ctx, url, &FetchOptions{
		Timeout:   e.opts.FetchTimeout,
		UserAgent: DefaultUserAgent,
	})
	if err != nil {
		return nil, err
	}

	html := page.HTML
	if e.opts.BrowserEnabled && ShouldUseBrowser(html) {
		rendered, err := RenderPage(ctx, url, e.opts.FetchTimeout*2, e.opts.Verbose)
		if err == nil {
			html = rendered
		}
	}

	return ExtractSiteDetails(html)
}

// mergeDetails fills a contact's absent fields from scraped site details,
// honoring the platforms the user asked to cross-reference.
func mergeDetails(c *types.ContactRecord, d *SiteDetails, params types.SearchParams) {
	if params.DeepSearchInstagram && types.IsSentinel(c.Instagram) && d.Instagram != "" {
		c.Instagram = d.Instagram
	}
	if params.DeepSearchFacebook && types.IsSentinel(c.Facebook) && d.Facebook != "" {
		c.Facebook = d.Facebook
	}
	if params.DeepSearchLinkedin && types.IsSentinel(c.LinkedIn) && d.LinkedIn != "" {
		c.LinkedIn = d.LinkedIn
	}
	if types.IsSentinel(c.Email) && d.Email != "" {
		c.Email = d.Email
	}
	if !c.HasWhatsApp && d.WhatsApp {
		c.HasWhatsApp = true
	}
	if params.DeepSearchWeb && types.IsSentinel(c.WebSummary) && d.Summary != "" {
		c.WebSummary = d.Summary
	}
}
