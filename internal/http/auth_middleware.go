package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Gusdevr/API-cadastrar-usu-rio-protegido/internal/domain"
	jwtpkg "github.com/Gusdevr/API-cadastrar-usu-rio-protegido/pkg/jwt"
)

type authContextKey string

const contextKeyIdentity authContextKey = "userapi-identity"

type contextSetter interface {
	SetContext(context.Context)
}

// requireAuth ensures the request carries a valid bearer token before
// invoking the handler. A missing or garbled Authorization header is a 401;
// a token that fails verification is a 403. The 403 body is the same for
// every failure mode, whatever the verifier reports internally.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx))
	}
}

// ensureAuth validates the Authorization header and enriches the context
// with the decoded identity.
func (r *Router) ensureAuth(w http.ResponseWriter, req *http.Request) (context.Context, domain.Identity, bool) {
	token, err := bearerToken(req.Header.Get("Authorization"))
	if err != nil {
		r.logger.Warn("authorization header invalid", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusUnauthorized, "authentication required")
		return req.Context(), domain.Identity{}, false
	}
	identity, err := r.account.Authorize(token)
	if err != nil {
		reason := "unknown"
		var tokenErr *jwtpkg.TokenError
		if errors.As(err, &tokenErr) {
			reason = string(tokenErr.Reason)
		}
		r.logger.Warn("token validation failed", "reason", reason, "path", req.URL.Path)
		writeError(w, http.StatusForbidden, "invalid token")
		return req.Context(), domain.Identity{}, false
	}
	ctx := context.WithValue(req.Context(), contextKeyIdentity, identity)
	return ctx, identity, true
}

// identityFromContext extracts the authenticated identity from context.
func identityFromContext(ctx context.Context) (domain.Identity, bool) {
	value := ctx.Value(contextKeyIdentity)
	if value == nil {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}
