// AngelaMos | 2026
// schema.go

package schema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/articlehub/internal/core"
)

// Executor runs a single parameterized statement.
type Executor interface {
	Execute(ctx context.Context, statement string, args ...any) (*core.Result, error)
}

// Step is one idempotent DDL statement. Order matters: users must exist
// before articles references it.
type Step struct {
	Name      string
	Statement string
}

var Steps = []Step{
	{
		Name: "create users table",
		Statement: `
			CREATE TABLE IF NOT EXISTS users (
				id         TEXT PRIMARY KEY,
				email      TEXT UNIQUE NOT NULL,
				name       TEXT,
				password   TEXT NOT NULL,
				role       TEXT DEFAULT 'USER',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
	},
	{
		Name: "create articles table",
		Statement: `
			CREATE TABLE IF NOT EXISTS articles (
				id         TEXT PRIMARY KEY,
				title      TEXT NOT NULL,
				content    TEXT NOT NULL,
				excerpt    TEXT,
				slug       TEXT UNIQUE NOT NULL,
				published  BOOLEAN DEFAULT FALSE,
				author_id  TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		Name:      "create articles slug index",
		Statement: `CREATE INDEX IF NOT EXISTS idx_articles_slug ON articles(slug)`,
	},
	{
		Name:      "create articles published index",
		Statement: `CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published)`,
	},
	{
		Name:      "create articles author index",
		Statement: `CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(author_id)`,
	},
	{
		Name:      "create users email index",
		Statement: `CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	},
}

type Initializer struct {
	db     Executor
	logger *slog.Logger
}

func NewInitializer(db Executor, logger *slog.Logger) *Initializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Initializer{db: db, logger: logger}
}

// Ensure creates whatever part of the schema is missing. It stops at the
// first failing step; nothing already created is rolled back.
func (i *Initializer) Ensure(ctx context.Context) error {
	for _, step := range Steps {
		if _, err := i.db.Execute(ctx, step.Statement); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}

	i.logger.InfoContext(ctx, "database schema ensured",
		"tables", 2,
		"steps", len(Steps),
	)

	return nil
}
