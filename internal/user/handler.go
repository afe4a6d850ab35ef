// AngelaMos | 2026
// handler.go

package user

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

// RegisterAdminRoutes registers admin-only account management endpoints.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.CreateUser)
		r.Get("/{userID}", h.GetUser)
		r.Delete("/{userID}", h.DeleteUser)
	})
}

// CreateUser registers an account. Unlike seeding, a taken email is
// reported to the caller.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !core.Bind(w, r, &req) {
		return
	}

	id, err := h.service.Create(r.Context(), req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, r, core.DuplicateError("email already in use"))
		case errors.Is(err, core.ErrInvalidInput):
			core.JSONError(w, r, core.ValidationError(err.Error()))
		default:
			core.InternalServerError(w, r, err)
		}
		return
	}

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.Created(w, r, ToUserResponse(u))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	u, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, r, "user")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, r, ToUserResponse(u))
}

// DeleteUser hard deletes an account together with every article it wrote.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	targetID := chi.URLParam(r, "userID")

	if err := h.service.CanDelete(r.Context(), requesterID, targetID); err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, r, "cannot delete your own account")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, r, "user")
		default:
			core.InternalServerError(w, r, err)
		}
		return
	}

	if err := h.service.Delete(r.Context(), targetID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, r, "user")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.NoContent(w)
}
