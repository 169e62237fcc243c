// Package enrich extracts contact details from business websites. It
// is best effort throughout: extraction failures degrade to absent
// fields and never surface to the pipeline.
package enrich

import "github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"

// Contact holds the fields an extraction can recover from a website.
// Empty means "not found", not an error.
type Contact struct {
	Email     string
	Instagram string
	Facebook  string
	LinkedIn  string
	Twitter   string
}

// ApplyTo copies the recovered fields onto the lead.
func (c Contact) ApplyTo(l *lead.Lead) {
	l.Email = c.Email
	l.Instagram = c.Instagram
	l.Facebook = c.Facebook
	l.LinkedIn = c.LinkedIn
	l.Twitter = c.Twitter
}
