// Package search talks to the maps search provider that supplies
// business listings for enrichment.
package search

import (
	"context"
	"strconv"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

// Query is one paginated request against the provider.
type Query struct {
	// Query is the free-text maps search, e.g. "plumbers in leeds".
	Query string
	// Offset is the absolute result offset of the requested page.
	Offset int
	// PageSize is the number of listings requested per page.
	PageSize int
}

// Result is the provider's per-listing payload. It is transient and
// converted into a lead.Candidate immediately.
type Result struct {
	Title   string   `json:"title"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Website string   `json:"website"`
	Rating  *float64 `json:"rating"`
	MapsURL string   `json:"place_id_search"`
}

// Candidate converts the raw listing into the domain shape.
func (r Result) Candidate() lead.Candidate {
	rating := ""
	if r.Rating != nil {
		rating = strconv.FormatFloat(*r.Rating, 'f', -1, 64)
	}
	return lead.Candidate{
		Name:    r.Title,
		Address: r.Address,
		Phone:   r.Phone,
		Website: r.Website,
		Rating:  rating,
		MapsURL: r.MapsURL,
	}
}

// Provider returns one page of listings. An empty slice with a nil
// error means the result set is exhausted at that offset.
type Provider interface {
	Search(ctx context.Context, q Query) ([]Result, error)
}
