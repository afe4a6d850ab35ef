// AngelaMos | 2026
// slug_test.go

package article

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Welcome to Article Hub", "welcome-to-article-hub"},
		{"  Hello,   World!  ", "hello-world"},
		{"Go 1.25 Release Notes", "go-1-25-release-notes"},
		{"---already-sluggy---", "already-sluggy"},
		{"Café au lait", "caf-au-lait"},
		{"!!!", ""},
		{"", ""},
		{"UPPER_snake_Case", "upper-snake-case"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSlug(tt.title))
		})
	}
}

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestDeriveSlugProperties(t *testing.T) {
	titles := []string{
		"Welcome to Article Hub",
		"a--b__c  d",
		"-x-",
		"Ünïcödé & symbols #1",
		"tabs\tand\nnewlines",
		"12345",
		"MiXeD CaSe",
	}

	for _, title := range titles {
		slug := DeriveSlug(title)

		assert.Equal(t, slug, DeriveSlug(slug), "idempotent for %q", title)
		assert.False(t, strings.Contains(slug, "--"), "double hyphen in %q", slug)

		if slug != "" {
			assert.Regexp(t, slugShape, slug)
		}
	}
}
