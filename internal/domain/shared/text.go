package shared

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// FoldName returns the case-folded form used for case-insensitive uniqueness of names
func FoldName(name string) string {
	return folder.String(strings.TrimSpace(name))
}
