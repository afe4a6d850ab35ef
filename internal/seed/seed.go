// AngelaMos | 2026
// seed.go

package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/articlehub/internal/article"
	"github.com/carterperez-dev/articlehub/internal/config"
	"github.com/carterperez-dev/articlehub/internal/user"
)

const (
	WelcomeTitle   = "Welcome to Article Hub"
	WelcomeSlug    = "welcome-to-article-hub"
	WelcomeExcerpt = "This is a sample article to get you started with the platform."
)

const codeFence = "```"

var WelcomeContent = `# Welcome to Article Hub

This is a sample article that demonstrates the capabilities of our article platform.

## Features

- **Markdown Support**: Write articles using Markdown syntax
- **Admin Dashboard**: Manage your articles with ease
- **Responsive Design**: Works on all devices
- **Neon Database**: Fast and reliable database backend

## Getting Started

1. Log in to the admin dashboard
2. Create your first article
3. Publish it for the world to see

## Code Example

` + codeFence + `javascript
function hello() {
  console.log('Hello, Article Hub!');
}
` + codeFence + `

Enjoy writing and sharing your articles!`

type AccountEnsurer interface {
	EnsureAccount(
		ctx context.Context,
		email, name, password, role string,
	) (string, bool, error)
}

type ArticleInserter interface {
	InsertOrSkip(ctx context.Context, a *article.Article) (bool, error)
}

// Report says which seed rows this run actually wrote.
type Report struct {
	AdminID        string
	AdminCreated   bool
	ArticleCreated bool
}

type Seeder struct {
	accounts AccountEnsurer
	articles ArticleInserter
	cfg      config.SeedConfig
	logger   *slog.Logger
}

func NewSeeder(
	accounts AccountEnsurer,
	articles ArticleInserter,
	cfg config.SeedConfig,
	logger *slog.Logger,
) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		accounts: accounts,
		articles: articles,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run creates the admin account and the welcome article if they are not
// there yet. Running it again changes nothing.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var report Report

	adminID, created, err := s.accounts.EnsureAccount(
		ctx,
		s.cfg.AdminEmail,
		s.cfg.AdminName,
		s.cfg.AdminPassword,
		user.RoleAdmin,
	)
	if err != nil {
		return report, fmt.Errorf("seed admin: %w", err)
	}
	report.AdminID = adminID
	report.AdminCreated = created

	if created {
		s.logger.InfoContext(ctx, "admin user created",
			"email", s.cfg.AdminEmail,
			"user_id", adminID,
		)
	} else {
		s.logger.InfoContext(ctx, "admin user already present",
			"email", s.cfg.AdminEmail,
		)
	}

	excerpt := WelcomeExcerpt
	welcome := &article.Article{
		ID:        uuid.New().String(),
		Title:     WelcomeTitle,
		Excerpt:   &excerpt,
		Content:   WelcomeContent,
		Slug:      WelcomeSlug,
		Published: true,
		AuthorID:  adminID,
	}

	inserted, err := s.articles.InsertOrSkip(ctx, welcome)
	if err != nil {
		return report, fmt.Errorf("seed article: %w", err)
	}
	report.ArticleCreated = inserted

	s.logger.InfoContext(ctx, "database seeded",
		"admin_created", report.AdminCreated,
		"article_created", report.ArticleCreated,
	)

	return report, nil
}
