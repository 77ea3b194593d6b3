package websearch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SiteDetails holds contact details scraped from a prospect's website.
// Empty fields mean the site did not expose that channel.
type SiteDetails struct {
	Instagram string
	Facebook  string
	LinkedIn  string
	Email     string
	WhatsApp  bool
	Summary   string
}

// ExtractSiteDetails parses a prospect site's HTML and pulls out social
// profiles, a contact email and a short description.
func ExtractSiteDetails(html string) (*SiteDetails, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &FetchError{Message: "failed to parse HTML", Cause: err}
	}

	details := &SiteDetails{}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		classifyLink(href, details)
	})

	details.Summary = extractSummary(doc)

	return details, nil
}

// classifyLink routes one anchor href into the matching detail slot,
// keeping the first link found per channel.
func classifyLink(href string, details *SiteDetails) {
	lower := strings.ToLower(href)

	switch {
	case strings.HasPrefix(lower, "mailto:"):
		if details.Email == "" {
			email := strings.TrimPrefix(href, "mailto:")
			if i := strings.IndexByte(email, '?'); i >= 0 {
				email = email[:i]
			}
			details.Email = email
		}
	case strings.Contains(lower, "wa.me/") || strings.Contains(lower, "api.whatsapp.com"):
		details.WhatsApp = true
	case strings.Contains(lower, "instagram.com/"):
		if details.Instagram == "" && !isSharerLink(lower) {
			details.Instagram = href
		}
	case strings.Contains(lower, "facebook.com/"):
		if details.Facebook == "" && !isSharerLink(lower) {
			details.Facebook = href
		}
	case strings.Contains(lower, "linkedin.com/"):
		if details.LinkedIn == "" && !isSharerLink(lower) {
			details.LinkedIn = href
		}
	}
}

// isSharerLink filters share-this-page widgets that point at a social
// network but not at the business's own profile.
func isSharerLink(lower string) bool {
	return strings.Contains(lower, "/sharer") ||
		strings.Contains(lower, "/share?") ||
		strings.Contains(lower, "sharearticle") ||
		strings.Contains(lower, "/intent/")
}

// summaryMaxLength caps the scraped site summary.
const summaryMaxLength = 300

// extractSummary returns a short description of the business, preferring
// the meta description and falling back to the first real paragraph.
func extractSummary(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(desc); trimmed != "" {
			return truncate(trimmed, summaryMaxLength)
		}
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(desc); trimmed != "" {
			return truncate(trimmed, summaryMaxLength)
		}
	}

	var summary string
	doc.Find("main p, article p, body p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		// Skip cookie notices and one-liners
		if len(text) < 60 {
			return true
		}
		summary = truncate(text, summaryMaxLength)
		return false
	})
	return summary
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
