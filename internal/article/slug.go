// AngelaMos | 2026
// slug.go

package article

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveSlug lower-cases title, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims hyphens from both ends. A title with no
// ASCII letters or digits yields "".
func DeriveSlug(title string) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
