// AngelaMos | 2026
// service.go

package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/articlehub/internal/core"
)

type CreateInput struct {
	Title     string
	Excerpt   string
	Content   string
	Slug      string
	Published bool
	AuthorID  string
}

type Service struct {
	repo     Repository
	renderer *Renderer
	logger   *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		renderer: NewRenderer(),
		logger:   logger,
	}
}

// ListPublished never fails from the reader's point of view: a storage
// failure is logged and an empty list returned.
func (s *Service) ListPublished(ctx context.Context) []Article {
	ctx, span := core.StartSpan(ctx, "article.list_published")
	defer span.End()

	articles, err := s.repo.ListPublished(ctx)
	if err != nil {
		core.SetSpanError(ctx, err)
		s.logger.ErrorContext(ctx, "list published articles failed",
			"error", err,
		)
		return []Article{}
	}

	return articles
}

// GetBySlug returns nil for a missing slug, an unpublished article and a
// storage failure alike.
func (s *Service) GetBySlug(ctx context.Context, slug string) *Article {
	ctx, span := core.StartSpan(ctx, "article.get_by_slug",
		attribute.String("article.slug", slug),
	)
	defer span.End()

	a, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			core.SetSpanError(ctx, err)
			s.logger.ErrorContext(ctx, "get article failed",
				"slug", slug,
				"error", err,
			)
		}
		return nil
	}

	return a
}

// Create stores a new article. The slug is derived from the title unless one
// is given, in which case it is normalized the same way. A slug that is
// already taken is not checked up front; the storage error comes back as-is.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Article, error) {
	ctx, span := core.StartSpan(ctx, "article.create")
	defer span.End()

	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf(
			"create article: title and content are required: %w",
			core.ErrInvalidInput,
		)
	}

	if in.AuthorID == "" {
		return nil, fmt.Errorf(
			"create article: author is required: %w",
			core.ErrInvalidInput,
		)
	}

	slugSource := title
	if in.Slug != "" {
		slugSource = in.Slug
	}
	slug := DeriveSlug(slugSource)
	if slug == "" {
		return nil, fmt.Errorf(
			"create article: %q does not produce a usable slug: %w",
			slugSource,
			core.ErrInvalidInput,
		)
	}

	a := &Article{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   in.Content,
		Slug:      slug,
		Published: in.Published,
		AuthorID:  in.AuthorID,
	}
	if excerpt := strings.TrimSpace(in.Excerpt); excerpt != "" {
		a.Excerpt = &excerpt
	}

	if err := s.repo.Create(ctx, a); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	core.AddSpanEvent(ctx, "article.created",
		attribute.String("article.id", a.ID),
		attribute.String("article.slug", a.Slug),
	)
	s.logger.InfoContext(ctx, "article created",
		"article_id", a.ID,
		"slug", a.Slug,
		"published", a.Published,
	)

	return a, nil
}

func (s *Service) RenderContent(a *Article) (string, error) {
	return s.renderer.Render(a.Content)
}

// Counts reports how many articles are published and how many are drafts.
func (s *Service) Counts(ctx context.Context) (int, int, error) {
	return s.repo.CountByStatus(ctx)
}
