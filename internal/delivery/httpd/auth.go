package httpd

import (
	"context"
	"net/http"
	"strings"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
)

type CallerResolver interface {
	Resolve(token string) (models.Caller, error)
}

type callerKey struct{}

func withCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func callerFrom(ctx context.Context) (models.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(models.Caller)
	return caller, ok
}

// authenticate resolves the bearer token and stores the caller in the request context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			h.handleError(w, r, errs.Unauthenticated("missing bearer token"))
			return
		}

		caller, err := h.resolver.Resolve(token)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), caller)))
	})
}

// mustCaller is only valid behind authenticate.
func mustCaller(r *http.Request) models.Caller {
	caller, _ := callerFrom(r.Context())
	return caller
}
