package document

import (
	"regexp"
	"strings"
)

const (
	// Extension is the fixed filename extension for all documents.
	Extension = ".md"

	// maxSlugLen bounds the slugified title portion of a filename.
	maxSlugLen = 50
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a title and collapses every run of non-alphanumeric
// characters to a single hyphen, truncated to 50 characters.
func Slugify(title string) string {
	s := nonAlnumRe.ReplaceAllString(strings.ToLower(title), "-")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return strings.Trim(s, "-")
}

// Filename builds the document filename for a record: `<id>-<slug>.md`.
// The id prefix is what makes the file discoverable; the slug is cosmetic.
func Filename(id, title string) string {
	slug := Slugify(title)
	if slug == "" {
		return id + Extension
	}
	return id + "-" + slug + Extension
}
