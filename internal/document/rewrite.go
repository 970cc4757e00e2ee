package document

import (
	"regexp"
	"strings"
)

// The rewrite helpers below perform surgical, byte-preserving edits: each
// replaces only the metadata line or section it targets and leaves the rest
// of the document untouched. Several store operations chain these as
// independent substitutions over the same text, which only works if every
// helper keeps its hands off the parts it doesn't own.

var (
	updatedLineRe = regexp.MustCompile(`(?m)^- \*\*Updated\*\*: [\d-]+`)
	titleLineRe   = regexp.MustCompile(`(?m)^# [A-Z]+-\d+: .+$`)
	uncheckedRe   = regexp.MustCompile(`(?m)^- \[ \] .+$`)
)

// replaceFirst substitutes only the first match of re. The metadata block is
// the sole owner of its lines; a `**Key**: value` string appearing later in
// body text is user content and must not be rewritten.
func replaceFirst(re *regexp.Regexp, content, repl string) string {
	loc := re.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + repl + content[loc[1]:]
}

// Touch rewrites the Updated metadata line to the given date.
func Touch(content, date string) string {
	return replaceFirst(updatedLineRe, content, "- **Updated**: "+date)
}

// SetTitle rewrites the document header line, keeping the id.
func SetTitle(content, id, title string) string {
	return titleLineRe.ReplaceAllString(content, "# "+id+": "+title)
}

// SetMetaField sets a `- **Key**: value` metadata line. An existing line for
// the key is rewritten in place; otherwise a new line is inserted directly
// after the Updated line, matching where the encoder would have put it.
func SetMetaField(content, key, value string) string {
	fieldRe := regexp.MustCompile(`(?m)^- \*\*` + regexp.QuoteMeta(key) + `\*\*: .+`)
	if fieldRe.MatchString(content) {
		return replaceFirst(fieldRe, content, "- **"+key+"**: "+value)
	}
	loc := updatedLineRe.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[1]] + "\n- **" + key + "**: " + value + content[loc[1]:]
}

// RemoveMetaField deletes a metadata line entirely, newline included. Only
// the first occurrence goes; the metadata block precedes any body text.
func RemoveMetaField(content, key string) string {
	lineRe := regexp.MustCompile(`\n- \*\*` + regexp.QuoteMeta(key) + `\*\*: .+`)
	return replaceFirst(lineRe, content, "")
}

// MetaField extracts the value of a metadata line, or "" when absent.
func MetaField(content, key string) string {
	fieldRe := regexp.MustCompile(`\*\*` + regexp.QuoteMeta(key) + `\*\*: (.+)`)
	if m := fieldRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

// locateSection returns the half-open byte range of a section's body (the
// text between the header line and the next "## " header or end of text).
func locateSection(content, name string) (start, end int, ok bool) {
	hdr := "## " + name + "\n"
	i := strings.Index(content, hdr)
	if i < 0 {
		return 0, 0, false
	}
	start = i + len(hdr)
	if rel := strings.Index(content[start:], "\n## "); rel >= 0 {
		end = start + rel
	} else {
		end = len(content)
	}
	return start, end, true
}

// ReplaceSection swaps a section's entire body for the given text. Returns
// the content unchanged when the section does not exist.
func ReplaceSection(content, name, body string) string {
	start, end, ok := locateSection(content, name)
	if !ok {
		return content
	}
	tail := content[end:]
	if !strings.HasPrefix(tail, "\n") && tail != "" {
		tail = "\n" + tail
	}
	return content[:start] + body + "\n" + tail
}

// SectionContains reports whether a section's body contains the given
// substring. Used for idempotent link insertion: re-adding an entry that is
// already present is a no-op.
func SectionContains(content, name, s string) bool {
	start, end, ok := locateSection(content, name)
	if !ok {
		return false
	}
	return strings.Contains(content[start:end], s)
}

// AppendToSection appends a line to a section's body. A body consisting only
// of the given placeholder is replaced outright. When dedupe is non-empty
// and the body already contains it, the content is returned unchanged.
func AppendToSection(content, name, line, placeholder, dedupe string) string {
	start, end, ok := locateSection(content, name)
	if !ok {
		return content
	}
	body := strings.TrimSpace(content[start:end])
	if dedupe != "" && strings.Contains(body, dedupe) {
		return content
	}
	if body == placeholder || body == "" {
		body = line
	} else {
		body = body + "\n" + line
	}
	return ReplaceSection(content, name, body)
}

// CheckNthUnchecked marks the nth unchecked checkbox line in the document
// (0-based, counted over the whole text in order). Returns the content
// unchanged when fewer than n+1 unchecked boxes exist.
func CheckNthUnchecked(content string, index int) string {
	n := 0
	return uncheckedRe.ReplaceAllStringFunc(content, func(line string) string {
		if n == index {
			n++
			return "- [x] " + strings.TrimPrefix(line, "- [ ] ")
		}
		n++
		return line
	})
}
