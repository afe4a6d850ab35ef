// AngelaMos | 2026
// dto.go

package article

import (
	"time"
)

type CreateArticleRequest struct {
	Title     string `json:"title"     validate:"required,max=200"`
	Excerpt   string `json:"excerpt"   validate:"omitempty,max=500"`
	Content   string `json:"content"   validate:"required"`
	Slug      string `json:"slug"      validate:"omitempty,max=200"`
	Published bool   `json:"published"`
	AuthorID  string `json:"author_id" validate:"omitempty,uuid4"`
}

type AuthorResponse struct {
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type ArticleResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Excerpt   *string         `json:"excerpt"`
	Content   string          `json:"content"`
	HTML      string          `json:"html,omitempty"`
	Published bool            `json:"published"`
	AuthorID  string          `json:"author_id"`
	Author    *AuthorResponse `json:"author,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToArticleResponse(a *Article) ArticleResponse {
	resp := ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      a.Slug,
		Excerpt:   a.Excerpt,
		Content:   a.Content,
		Published: a.Published,
		AuthorID:  a.AuthorID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Author != nil {
		resp.Author = &AuthorResponse{
			Name:  a.Author.Name,
			Email: a.Author.Email,
		}
	}
	return resp
}

func ToArticleListResponse(articles []Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, ToArticleResponse(&articles[i]))
	}
	return out
}
