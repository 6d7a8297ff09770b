package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Phaneesh28/project-backend/internal/http/response"
	"github.com/Phaneesh28/project-backend/pkg/auth"
	"github.com/Phaneesh28/project-backend/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// RequireJWT is the gate in front of protected routes: no Authorization
// header is 401, any header that does not carry a valid bearer token is 403.
func RequireJWT(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Values("Authorization")) == 0 {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(r.Context(), "Rejected authorization header", "reason", "missing bearer scheme")
				response.Forbidden(w, "Not Allowed", response.CodeInvalidToken)
				return
			}

			claims, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				logger.WarnContext(r.Context(), "Rejected bearer token", "reason", err.Error())
				code := response.CodeInvalidToken
				if errors.Is(err, auth.ErrExpired) {
					code = response.CodeExpiredToken
				}
				response.Forbidden(w, "Not Allowed", code)
				return
			}

			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			ctx = context.WithValue(ctx, logger.UsernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Claims returns the verified claims attached by RequireJWT, or nil.
func Claims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(CtxClaims).(*auth.Claims)
	return claims
}
