// AngelaMos | 2026
// routes.go

package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/articlehub/internal/admin"
	"github.com/carterperez-dev/articlehub/internal/article"
	"github.com/carterperez-dev/articlehub/internal/auth"
	"github.com/carterperez-dev/articlehub/internal/health"
	"github.com/carterperez-dev/articlehub/internal/middleware"
	"github.com/carterperez-dev/articlehub/internal/user"
)

type handlers struct {
	health   *health.Handler
	auth     *auth.Handler
	articles *article.Handler
	users    *user.Handler
	admin    *admin.Handler
	jwks     http.HandlerFunc
	verifier middleware.TokenVerifier
}

func mountRoutes(router chi.Router, h handlers) {
	h.health.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", h.jwks)

	authenticator := middleware.Authenticator(h.verifier)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		h.auth.RegisterRoutes(r, authenticator)
		h.articles.RegisterRoutes(r)

		h.articles.RegisterAdminRoutes(r, authenticator, adminOnly)
		h.users.RegisterAdminRoutes(r, authenticator, adminOnly)
		h.admin.RegisterRoutes(r, authenticator, adminOnly)
	})
}

func newRoutesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the HTTP route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			router := chi.NewRouter()
			mountRoutes(router, handlers{
				health:   health.NewHandler(),
				auth:     auth.NewHandler(nil),
				articles: article.NewHandler(nil),
				users:    user.NewHandler(nil),
				admin:    admin.NewHandler(admin.HandlerConfig{}),
				jwks:     func(http.ResponseWriter, *http.Request) {},
			})

			switch format {
			case "json":
				fmt.Fprintln(cmd.OutOrStdout(), docgen.JSONRoutesDoc(router))
			case "markdown":
				fmt.Fprintln(cmd.OutOrStdout(), docgen.MarkdownRoutesDoc(
					router,
					docgen.MarkdownOpts{
						ProjectPath: "github.com/carterperez-dev/articlehub",
						Intro:       "Article Hub HTTP routes.",
					},
				))
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "markdown or json")

	return cmd
}
