// Package utils provides helpers for parsing and formatting record
// identifiers like "TASK-042" or "SPEC-007".
package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var idRe = regexp.MustCompile(`^([A-Z]+)-(\d+)$`)

// ExtractPrefix extracts the type prefix from a record ID: "TASK-042" -> "TASK".
// Returns "" when the ID has no hyphen-separated prefix.
func ExtractPrefix(id string) string {
	idx := strings.Index(id, "-")
	if idx <= 0 {
		return ""
	}
	return id[:idx]
}

// ExtractNumber extracts the numeric part of a record ID: "TASK-042" -> 42.
// Returns 0 when the ID does not end in a number.
func ExtractNumber(id string) int {
	idx := strings.LastIndex(id, "-")
	if idx < 0 || idx == len(id)-1 {
		return 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// FormatID builds a record ID from a prefix and number, zero-padded to three
// digits: ("TASK", 7) -> "TASK-007". Numbers past 999 keep their full width.
func FormatID(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// IsRecordID reports whether s looks like a well-formed record ID.
func IsRecordID(s string) bool {
	return idRe.MatchString(s)
}

// NormalizeID ensures an ID carries the given prefix. Bare numbers get the
// prefix attached with zero-padding ("42" -> "TASK-042"); IDs that already
// have a prefix are returned as-is, uppercased for forgiving CLI input.
func NormalizeID(input, prefix string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		return FormatID(prefix, n)
	}
	return strings.ToUpper(input)
}
