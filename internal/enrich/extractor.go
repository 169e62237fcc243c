package enrich

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/metrics"
)

// maxContactPages bounds the follow-up visits per website.
const maxContactPages = 2

// Extractor scans a business website for an email and social links.
type Extractor struct {
	fetcher PageFetcher
	logger  *zap.Logger
}

// NewExtractor builds an Extractor on top of the given fetcher.
func NewExtractor(fetcher PageFetcher, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{fetcher: fetcher, logger: logger}
}

// Extract visits the homepage and, if no email turned up, up to two
// same-domain contact-flavored pages. It always returns a usable
// Contact; every failure along the way degrades to absent fields.
func (e *Extractor) Extract(ctx context.Context, website string) Contact {
	var c Contact
	if website == "" {
		return c
	}
	target := website
	if !strings.HasPrefix(target, "http") {
		target = "https://" + target
	}
	base, err := url.Parse(target)
	if err != nil {
		e.logger.Debug("unparseable website", zap.String("website", website), zap.Error(err))
		return c
	}

	metrics.IncActiveExtractions()
	defer metrics.DecActiveExtractions()

	doc := e.fetchAndScan(ctx, target, &c)
	if c.Email != "" || doc == nil {
		metrics.ObserveExtraction(c.Email != "")
		return c
	}

	links := contactLinks(doc, base)
	if len(links) > maxContactPages {
		links = links[:maxContactPages]
	}
	for _, link := range links {
		e.fetchAndScan(ctx, link, &c)
		if c.Email != "" {
			break
		}
	}
	metrics.ObserveExtraction(c.Email != "")
	return c
}

// fetchAndScan loads one page and merges its findings into c. The
// parsed document is returned so the homepage scan can reuse it for
// link discovery; nil means the page could not be loaded or parsed.
func (e *Extractor) fetchAndScan(ctx context.Context, pageURL string, c *Contact) *goquery.Document {
	html, err := e.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		e.logger.Debug("page fetch failed", zap.String("url", pageURL), zap.Error(err))
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Debug("page parse failed", zap.String("url", pageURL), zap.Error(err))
		return nil
	}
	scanPage(html, doc, c)
	return doc
}
