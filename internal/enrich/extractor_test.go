package enrich

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	visits []string
}

func (s *stubFetcher) FetchPage(_ context.Context, url string) (string, error) {
	s.mu.Lock()
	s.visits = append(s.visits, url)
	s.mu.Unlock()
	html, ok := s.pages[url]
	if !ok {
		return "", errors.New("page unavailable")
	}
	return html, nil
}

func TestExtractHomepageEmailStopsEarly(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{pages: map[string]string{
		"https://acme.example": `<html><body>
			<a href="mailto:info@acme.example">mail</a>
			<a href="/contact">contact</a>
		</body></html>`,
	}}
	ex := NewExtractor(fetcher, nil)

	c := ex.Extract(context.Background(), "acme.example")
	require.Equal(t, "info@acme.example", c.Email)
	require.Equal(t, []string{"https://acme.example"}, fetcher.visits)
}

func TestExtractFollowsContactPages(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{pages: map[string]string{
		"https://acme.example": `<html><body>
			<a href="https://facebook.com/acme">fb</a>
			<a href="/about">about</a>
			<a href="/contact">contact</a>
			<a href="/team">team</a>
		</body></html>`,
		"https://acme.example/about": `<html><body>nothing here</body></html>`,
		"https://acme.example/contact": `<html><body>
			<p>office@acme.example</p>
			<a href="https://facebook.com/acme-other">fb other</a>
		</body></html>`,
	}}
	ex := NewExtractor(fetcher, nil)

	c := ex.Extract(context.Background(), "https://acme.example")
	require.Equal(t, "office@acme.example", c.Email)
	// Homepage social wins over the one on the contact page.
	require.Equal(t, "https://facebook.com/acme", c.Facebook)
	// Only the first two contact candidates are visited; /team is not.
	require.Equal(t, []string{
		"https://acme.example",
		"https://acme.example/about",
		"https://acme.example/contact",
	}, fetcher.visits)
}

func TestExtractDeepPageFailureIsRecovered(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{pages: map[string]string{
		"https://acme.example": `<html><body>
			<a href="https://instagram.com/acme">ig</a>
			<a href="/contact">contact</a>
		</body></html>`,
	}}
	ex := NewExtractor(fetcher, nil)

	c := ex.Extract(context.Background(), "https://acme.example")
	require.Empty(t, c.Email)
	require.Equal(t, "https://instagram.com/acme", c.Instagram)
}

func TestExtractHomepageFailureYieldsEmptyContact(t *testing.T) {
	t.Parallel()

	ex := NewExtractor(&stubFetcher{pages: map[string]string{}}, nil)
	c := ex.Extract(context.Background(), "https://down.example")
	require.Equal(t, Contact{}, c)
}

func TestExtractNoWebsite(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{pages: map[string]string{}}
	ex := NewExtractor(fetcher, nil)
	c := ex.Extract(context.Background(), "")
	require.Equal(t, Contact{}, c)
	require.Empty(t, fetcher.visits)
}
