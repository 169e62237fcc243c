// Package lead defines the business-lead domain model, field
// normalization, and the duplicate-rejection index shared by the
// pipeline and the storage layer.
package lead

import (
	"errors"
	"time"
)

// ErrNotFound signals that the requested lead does not exist.
var ErrNotFound = errors.New("lead not found")

// CategoryAll is the wildcard category accepted by FindLeads.
const CategoryAll = "ALL"

// StatusNew is assigned to every freshly persisted lead.
const StatusNew = "New"

// Lead is one business record with contact fields and workflow
// metadata. JSON tags match the wire format consumed by the frontend.
type Lead struct {
	ID        string    `json:"id,omitempty"`
	Owner     string    `json:"user_email,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`

	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"`
	Rating  string `json:"rating,omitempty"`
	MapsURL string `json:"google_maps_url,omitempty"`

	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`

	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// Candidate is a provider listing not yet confirmed unique or
// enriched. Only Name, Phone, and Website participate in identity.
type Candidate struct {
	Name    string
	Address string
	Phone   string
	Website string
	Rating  string
	MapsURL string
}

// Lead converts the candidate into the persisted shape. Contact
// fields stay empty until enrichment fills them in.
func (c Candidate) Lead() Lead {
	return Lead{
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		Website: c.Website,
		Rating:  c.Rating,
		MapsURL: c.MapsURL,
	}
}

// Stats summarizes one owner's stored leads for the dashboard.
type Stats struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}
