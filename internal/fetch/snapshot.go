package fetch

import (
	"fmt"
	"strings"
)

// Snapshot summarizes one fetched page.
type Snapshot struct {
	// URL is the requested URL.
	URL string

	// FinalURL is the URL after redirects.
	FinalURL string

	// StatusCode is the HTTP status of the final response.
	StatusCode int

	// ContentType is the response Content-Type header.
	ContentType string

	// Title is the <title> text.
	Title string

	// Description is the meta description or og:description.
	Description string

	// Text is the start of the visible text, whitespace collapsed.
	Text string

	// HasPasswordField is true when any form asks for a password.
	HasPasswordField bool

	// ExternalFormActions lists form targets on a different host.
	ExternalFormActions []string

	// InternalLinks counts links to the page's own host.
	InternalLinks int

	// ExternalLinks counts links to other hosts.
	ExternalLinks int

	// Truncated is true when the body exceeded the size limit.
	Truncated bool
}

// Redirected reports whether the final URL differs from the requested one.
func (s *Snapshot) Redirected() bool {
	return s.FinalURL != "" && s.FinalURL != s.URL
}

// Hints renders the snapshot as short lines for the classifier prompt.
func (s *Snapshot) Hints() []string {
	if s == nil {
		return nil
	}

	hints := []string{fmt.Sprintf("page fetched: HTTP %d", s.StatusCode)}
	if s.Redirected() {
		hints = append(hints, "redirected to: "+s.FinalURL)
	}
	if s.Title != "" {
		hints = append(hints, "page title: "+s.Title)
	}
	if s.Description != "" {
		hints = append(hints, "page description: "+s.Description)
	}
	if s.HasPasswordField {
		hints = append(hints, "page contains a password field")
	}
	if len(s.ExternalFormActions) > 0 {
		hints = append(hints, "forms submit to other hosts: "+strings.Join(s.ExternalFormActions, ", "))
	}
	hints = append(hints, fmt.Sprintf("links: %d internal, %d external", s.InternalLinks, s.ExternalLinks))
	if s.Text != "" {
		hints = append(hints, "visible text excerpt: "+s.Text)
	}
	return hints
}
