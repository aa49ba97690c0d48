package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownModality is returned by ParseModality for names it does not recognize.
var ErrUnknownModality = errors.New("unknown input modality")

// Modality is the kind of input a check accepts.
type Modality string

const (
	// ModalityText covers pasted messages, emails and SMS.
	ModalityText Modality = "text"

	// ModalityImage covers screenshots and photos.
	ModalityImage Modality = "image"

	// ModalityURL covers websites and links.
	ModalityURL Modality = "url"
)

// Modalities lists the modalities in tab order.
var Modalities = []Modality{ModalityText, ModalityImage, ModalityURL}

// ParseModality converts a user supplied name into a Modality.
// Matching is case-insensitive.
func ParseModality(name string) (Modality, error) {
	switch m := Modality(strings.ToLower(strings.TrimSpace(name))); m {
	case ModalityText, ModalityImage, ModalityURL:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModality, name)
	}
}

// Label returns the tab label.
func (m Modality) Label() string {
	switch m {
	case ModalityText:
		return "Text"
	case ModalityImage:
		return "Image"
	case ModalityURL:
		return "URL"
	default:
		return "Unknown"
	}
}

// Description returns the one-line hint shown under the tabs.
func (m Modality) Description() string {
	switch m {
	case ModalityText:
		return "Check messages, emails, SMS"
	case ModalityImage:
		return "Analyze screenshots, photos"
	case ModalityURL:
		return "Verify websites, links"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (m Modality) String() string {
	return string(m)
}
