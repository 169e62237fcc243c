package enrich

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contactKeywords mark anchors likely to lead to a page listing an
// email address.
var contactKeywords = []string{"contact", "about", "team", "staff", "attorney", "people", "our-firm"}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// junkSuffixes are asset extensions that the email regex matches by
// accident (e.g. image@2x.png in srcset attributes).
var junkSuffixes = []string{".png", ".jpg", ".gif", ".css", ".js", ".webp", ".svg"}

// placeholderDomains never belong to the business being scraped.
var placeholderDomains = []string{"example.com", "sentry.io", "wixpress"}

// priorityLocalParts are generic mailbox names preferred over
// personal addresses when several candidates appear on a page.
var priorityLocalParts = []string{"info", "contact", "hello", "office"}

// scanPage merges contact details found in the markup into c. Already
// filled slots are never overwritten, so details accumulate
// first-match-wins across the homepage and follow-up pages.
func scanPage(html string, doc *goquery.Document, c *Contact) {
	if c.Email == "" {
		c.Email = findEmail(html, doc)
	}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		switch {
		case c.Instagram == "" && strings.Contains(href, "instagram.com"):
			c.Instagram = href
		case c.Facebook == "" && strings.Contains(href, "facebook.com"):
			c.Facebook = href
		case c.LinkedIn == "" && strings.Contains(href, "linkedin.com"):
			c.LinkedIn = href
		case c.Twitter == "" && strings.Contains(href, "twitter.com"):
			c.Twitter = href
		}
	})
}

// findEmail prefers an explicit mailto anchor, then falls back to
// regex-scanning the raw markup with junk and placeholder filtering.
func findEmail(html string, doc *goquery.Document) string {
	if href, ok := doc.Find(`a[href^="mailto:"]`).First().Attr("href"); ok {
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" {
			return addr
		}
	}

	var clean []string
	for _, match := range emailPattern.FindAllString(html, -1) {
		lower := strings.ToLower(match)
		if hasAnySuffix(lower, junkSuffixes) || containsAny(lower, placeholderDomains) {
			continue
		}
		clean = append(clean, match)
	}
	if len(clean) == 0 {
		return ""
	}
	for _, addr := range clean {
		local := addr[:strings.IndexByte(addr, '@')]
		if containsAny(strings.ToLower(local), priorityLocalParts) {
			return addr
		}
	}
	return clean[0]
}

// contactLinks collects same-domain anchors whose target mentions a
// contact keyword, resolved against base and deduplicated in document
// order. The caller decides how many to visit.
func contactLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !containsAny(strings.ToLower(href), contactKeywords) {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil || resolved.Host != base.Host {
			return
		}
		full := resolved.String()
		if _, dup := seen[full]; dup {
			return
		}
		seen[full] = struct{}{}
		links = append(links, full)
	})
	return links
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
