// AngelaMos | 2026
// handler.go

package article

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/articlehub/internal/core"
	"github.com/carterperez-dev/articlehub/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/articles", func(r chi.Router) {
		r.Get("/", h.ListArticles)
		r.Get("/{slug}", h.GetArticle)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/articles", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.CreateArticle)
	})
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles := h.service.ListPublished(r.Context())
	core.OK(w, r, ToArticleListResponse(articles))
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	a := h.service.GetBySlug(r.Context(), slug)
	if a == nil {
		core.NotFound(w, r, "article")
		return
	}

	resp := ToArticleResponse(a)

	html, err := h.service.RenderContent(a)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}
	resp.HTML = html

	core.OK(w, r, resp)
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if !core.Bind(w, r, &req) {
		return
	}

	authorID := req.AuthorID
	if authorID == "" {
		authorID = middleware.GetUserID(r.Context())
	}

	a, err := h.service.Create(r.Context(), CreateInput{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Slug:      req.Slug,
		Published: req.Published,
		AuthorID:  authorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, r, core.DuplicateError("title/slug already in use"))
		case errors.Is(err, core.ErrForeignKey):
			core.JSONError(w, r, core.ValidationError("author does not exist"))
		case errors.Is(err, core.ErrInvalidInput):
			core.JSONError(w, r, core.ValidationError("title, content and a usable slug are required"))
		default:
			core.InternalServerError(w, r, err)
		}
		return
	}

	core.Created(w, r, ToArticleResponse(a))
}
