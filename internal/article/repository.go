// AngelaMos | 2026
// repository.go

package article

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/articlehub/internal/core"
)

type Repository interface {
	ListPublished(ctx context.Context) ([]Article, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*Article, error)
	Create(ctx context.Context, article *Article) error
	InsertOrSkip(ctx context.Context, article *Article) (bool, error)
	CountByStatus(ctx context.Context) (published, drafts int, err error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

type articleRow struct {
	Article
	AuthorName  sql.NullString `db:"author_name"`
	AuthorEmail string         `db:"author_email"`
}

func (row *articleRow) toArticle() Article {
	a := row.Article
	a.Author = &Author{Email: row.AuthorEmail}
	if row.AuthorName.Valid {
		name := row.AuthorName.String
		a.Author.Name = &name
	}
	return a
}

const selectWithAuthor = `
	SELECT a.id, a.title, a.content, a.excerpt, a.slug, a.published,
	       a.author_id, a.created_at, a.updated_at,
	       u.name AS author_name, u.email AS author_email
	FROM articles a
	JOIN users u ON a.author_id = u.id`

func (r *repository) ListPublished(ctx context.Context) ([]Article, error) {
	query := selectWithAuthor + `
		WHERE a.published = true
		ORDER BY a.created_at DESC`

	var rows []articleRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}

	articles := make([]Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, rows[i].toArticle())
	}

	return articles, nil
}

// GetPublishedBySlug treats an unpublished article exactly like a missing
// one.
func (r *repository) GetPublishedBySlug(
	ctx context.Context,
	slug string,
) (*Article, error) {
	query := selectWithAuthor + `
		WHERE a.slug = $1 AND a.published = true`

	var row articleRow
	err := r.db.GetContext(ctx, &row, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}

	a := row.toArticle()
	return &a, nil
}

func (r *repository) Create(ctx context.Context, article *Article) error {
	query := `
		INSERT INTO articles (id, title, content, excerpt, slug, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, article, query,
		article.ID,
		article.Title,
		article.Content,
		article.Excerpt,
		article.Slug,
		article.Published,
		article.AuthorID,
	)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

func (r *repository) InsertOrSkip(
	ctx context.Context,
	article *Article,
) (bool, error) {
	query := `
		INSERT INTO articles (id, title, content, excerpt, slug, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (slug) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.Excerpt,
		article.Slug,
		article.Published,
		article.AuthorID,
	)
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}

	return rows == 1, nil
}

func (r *repository) CountByStatus(
	ctx context.Context,
) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE published = true)  AS published,
			COUNT(*) FILTER (WHERE published = false) AS drafts
		FROM articles`

	var counts struct {
		Published int `db:"published"`
		Drafts    int `db:"drafts"`
	}
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return 0, 0, fmt.Errorf("count articles: %w", err)
	}

	return counts.Published, counts.Drafts, nil
}
