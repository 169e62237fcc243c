package enrich

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestScanPagePrefersMailto(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<p>Reach us at sales@acme.example today.</p>
		<a href="mailto:owner@acme.example?subject=Hi">Email us</a>
	</body></html>`

	var c Contact
	scanPage(html, parseDoc(t, html), &c)
	require.Equal(t, "owner@acme.example", c.Email)
}

func TestScanPageRegexFallbackFiltersJunk(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img srcset="hero@2x.png">
		<script>window.dsn = "abc123@o456.ingest.sentry.io";</script>
		<p>support@example.com</p>
		<p>jane.doe@acme.example</p>
		<p>info@acme.example</p>
	</body></html>`

	var c Contact
	scanPage(html, parseDoc(t, html), &c)
	// Asset names, placeholder domains, and example.com are skipped;
	// the generic mailbox beats the personal one.
	require.Equal(t, "info@acme.example", c.Email)
}

func TestScanPageFirstCandidateWhenNoPriority(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>jane@acme.example</p><p>bob@acme.example</p></body></html>`

	var c Contact
	scanPage(html, parseDoc(t, html), &c)
	require.Equal(t, "jane@acme.example", c.Email)
}

func TestScanPageSocialsFirstMatchWins(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="https://instagram.com/acme">ig</a>
		<a href="https://instagram.com/acme-old">ig old</a>
		<a href="https://facebook.com/acme">fb</a>
		<a href="https://linkedin.com/company/acme">li</a>
		<a href="https://twitter.com/acme">tw</a>
		<a href="https://twitter.com/acme-old">tw old</a>
	</body></html>`

	var c Contact
	scanPage(html, parseDoc(t, html), &c)
	require.Equal(t, "https://instagram.com/acme", c.Instagram)
	require.Equal(t, "https://facebook.com/acme", c.Facebook)
	require.Equal(t, "https://linkedin.com/company/acme", c.LinkedIn)
	require.Equal(t, "https://twitter.com/acme", c.Twitter)
}

func TestScanPageDoesNotOverwriteAcrossPages(t *testing.T) {
	t.Parallel()

	c := Contact{Email: "kept@acme.example", Instagram: "https://instagram.com/kept"}
	html := `<html><body>
		<a href="mailto:new@acme.example">mail</a>
		<a href="https://instagram.com/other">ig</a>
	</body></html>`

	scanPage(html, parseDoc(t, html), &c)
	require.Equal(t, "kept@acme.example", c.Email)
	require.Equal(t, "https://instagram.com/kept", c.Instagram)
}

func TestContactLinksSameDomainDeduped(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://acme.example")
	require.NoError(t, err)

	html := `<html><body>
		<a href="/contact">contact</a>
		<a href="https://acme.example/contact">contact again</a>
		<a href="/about-us">about</a>
		<a href="https://other.example/contact">external</a>
		<a href="/pricing">pricing</a>
		<a href="/our-firm/people">people</a>
	</body></html>`

	links := contactLinks(parseDoc(t, html), base)
	require.Equal(t, []string{
		"https://acme.example/contact",
		"https://acme.example/about-us",
		"https://acme.example/our-firm/people",
	}, links)
}
