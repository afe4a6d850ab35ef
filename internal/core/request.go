// AngelaMos | 2026
// request.go

package core

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

const maxRequestBody = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bind decodes a JSON body into dst and validates it. On failure it writes a
// 400 response and returns false.
func Bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	if err := render.DecodeJSON(r.Body, dst); err != nil {
		BadRequest(w, r, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		BadRequest(w, r, FormatValidationError(err))
		return false
	}

	return true
}
