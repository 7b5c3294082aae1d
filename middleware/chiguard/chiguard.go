package chiguard

import (
	"net/http"

	goAuthz "github.com/MrEthical07/goAuthz"
	"github.com/MrEthical07/goAuthz/middleware"
	"github.com/MrEthical07/goAuthz/permission"
	"github.com/go-chi/chi/v5"
)

// Group registers an inline group on r whose routes require authentication
// and every bit of required. An empty required only authenticates.
func Group(r chi.Router, ex *middleware.Extractor, required permission.Set, fn func(chi.Router)) chi.Router {
	return r.Group(func(g chi.Router) {
		use(g, ex, required)
		fn(g)
	})
}

// Route mounts a guarded sub-router at pattern.
func Route(r chi.Router, pattern string, ex *middleware.Extractor, required permission.Set, fn func(chi.Router)) chi.Router {
	return r.Route(pattern, func(sub chi.Router) {
		use(sub, ex, required)
		fn(sub)
	})
}

func use(r chi.Router, ex *middleware.Extractor, required permission.Set) {
	r.Use(ex.Authenticate)
	if !required.IsEmpty() {
		r.Use(ex.RequireAll(required))
	}
}

// RequireSelfOr admits the request when the URL parameter param equals the
// caller's subject. Otherwise the effective permissions must contain p.
// Routes without param always fall back to p.
func RequireSelfOr(ex *middleware.Extractor, param string, p permission.Set) func(http.Handler) http.Handler {
	return ex.Guard(func(r *http.Request, c goAuthz.UserClaims) bool {
		if v := chi.URLParam(r, param); v != "" && v == c.Subject.String() {
			return true
		}
		return c.CanAll(p)
	}, p)
}
