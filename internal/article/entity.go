// AngelaMos | 2026
// entity.go

package article

import (
	"time"
)

type Article struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Excerpt   *string   `db:"excerpt"`
	Slug      string    `db:"slug"`
	Published bool      `db:"published"`
	AuthorID  string    `db:"author_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Author is filled in by read queries only.
	Author *Author `db:"-"`
}

// Author is the slice of the owning user shown next to an article.
type Author struct {
	Name  *string
	Email string
}

func (a *Article) ExcerptText() string {
	if a.Excerpt == nil {
		return ""
	}
	return *a.Excerpt
}
