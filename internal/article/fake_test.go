// AngelaMos | 2026
// fake_test.go

package article

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/articlehub/internal/core"
)

// memRepository mimics the storage constraints of the articles table.
type memRepository struct {
	mu       sync.Mutex
	bySlug   map[string]Article
	authors  map[string]Author
	failWith error
}

func newMemRepository() *memRepository {
	name := "Admin User"
	return &memRepository{
		bySlug: make(map[string]Article),
		authors: map[string]Author{
			"author-1": {Name: &name, Email: "admin@example.com"},
		},
	}
}

func (m *memRepository) ListPublished(context.Context) ([]Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	var out []Article
	for _, a := range m.bySlug {
		if a.Published {
			out = append(out, m.withAuthor(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memRepository) GetPublishedBySlug(
	_ context.Context,
	slug string,
) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	a, ok := m.bySlug[slug]
	if !ok || !a.Published {
		return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
	}
	a = m.withAuthor(a)
	return &a, nil
}

func (m *memRepository) Create(_ context.Context, a *Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.bySlug[a.Slug]; taken {
		return fmt.Errorf("create article: %w", core.NewStorageError(
			"get", "INSERT INTO articles", &pgconn.PgError{Code: "23505"},
		))
	}
	if _, ok := m.authors[a.AuthorID]; !ok {
		return fmt.Errorf("create article: %w", core.NewStorageError(
			"get", "INSERT INTO articles", &pgconn.PgError{Code: "23503"},
		))
	}

	now := time.Now().Add(time.Duration(len(m.bySlug)) * time.Second)
	a.CreatedAt, a.UpdatedAt = now, now
	m.bySlug[a.Slug] = *a
	return nil
}

func (m *memRepository) InsertOrSkip(ctx context.Context, a *Article) (bool, error) {
	m.mu.Lock()
	_, taken := m.bySlug[a.Slug]
	m.mu.Unlock()

	if taken {
		return false, nil
	}
	return true, m.Create(ctx, a)
}

func (m *memRepository) CountByStatus(context.Context) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var published, drafts int
	for _, a := range m.bySlug {
		if a.Published {
			published++
		} else {
			drafts++
		}
	}
	return published, drafts, nil
}

func (m *memRepository) withAuthor(a Article) Article {
	author := m.authors[a.AuthorID]
	a.Author = &author
	return a
}
