package check

import (
	"context"
	"log/slog"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// EXIFHints summarizes the EXIF metadata of an image as prompt context.
// Images without EXIF data, which includes most screenshots, yield nil.
// GPS coordinates are reported by presence only.
func EXIFHints(data []byte) []string {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil
	}
	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	var (
		hints  []string
		hasGPS bool
		seen   = make(map[string]bool)
	)
	add := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		line := "image " + label + ": " + value
		if seen[line] {
			return
		}
		seen[line] = true
		hints = append(hints, line)
	}

	for _, entry := range entries {
		switch entry.TagName {
		case "GPSLatitude", "GPSLongitude", "GPSLatitudeRef", "GPSLongitudeRef":
			hasGPS = true
		case "Make":
			add("camera make", entry.Formatted)
		case "Model":
			add("camera model", entry.Formatted)
		case "Software", "ProcessingSoftware":
			add("software", entry.Formatted)
		case "DateTimeOriginal", "DateTimeDigitized", "DateTime":
			add("timestamp", entry.Formatted)
		case "Artist", "Author", "XPAuthor":
			add("author", entry.Formatted)
		case "HostComputer":
			add("host computer", entry.Formatted)
		}
	}
	if hasGPS {
		hints = append(hints, "image carries GPS coordinates")
	}
	return hints
}

// exifHintStep appends EXIF hints to the request. Missing or unreadable
// metadata never fails the check.
type exifHintStep struct {
	logger *slog.Logger
}

func (s *exifHintStep) Name() string {
	return "exif_hints"
}

func (s *exifHintStep) Do(_ context.Context, job *Job) error {
	hints := EXIFHints(job.Input.Image)
	if len(hints) == 0 {
		return nil
	}
	s.logger.Debug("exif metadata found",
		"file", job.Input.ImageName,
		"hints", len(hints),
	)
	job.Request.Hints = append(job.Request.Hints, hints...)
	return nil
}
