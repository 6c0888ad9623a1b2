package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/orderflow/payment-service/internal/identity"
)

// Claims is the token payload the service trusts: the caller's internal
// numeric id and role names.
type Claims struct {
	InternalID int64    `json:"internal_id"`
	Roles      []string `json:"roles"`
	jwt.RegisteredClaims
}

// RequireAuth verifies the bearer token and installs the caller's identity
// on the request context. Requests without a valid token never reach the
// handler.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header", "auth_required")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, "invalid authorization scheme", "auth_invalid_scheme")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				writeAuthError(w, "invalid token", "auth_invalid")
				return
			}

			roles := make([]identity.Role, 0, len(claims.Roles))
			for _, r := range claims.Roles {
				roles = append(roles, identity.Role(r))
			}
			ident := identity.Identity{
				InternalID: claims.InternalID,
				Subject:    claims.Subject,
				Roles:      roles,
			}

			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), ident)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"code":  code,
	})
}
