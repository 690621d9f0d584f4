package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/alanya-estates/property-service/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
)

// SubjectKeyType is a dedicated context-key type to avoid collisions.
type SubjectKeyType string

// SubjectKey holds the authenticated subject id in the request context.
const SubjectKey SubjectKeyType = "authenticatedSubject"

// Claims is the token payload expected from the identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTAuth gates mutating routes behind a bearer token: a missing credential
// is 401, a present but invalid one is 403.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("JWTAuth: 'Authorization' header not found", "path", r.URL.Path)
				writeMessage(w, http.StatusUnauthorized, "authorization token is not provided")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("JWTAuth: invalid 'Authorization' header format, expected 'Bearer <token>'", "path", r.URL.Path)
				writeMessage(w, http.StatusUnauthorized, "authorization token format is invalid, expected 'Bearer <token>'")
				return
			}
			tokenString := parts[1]

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				log.Warn("JWTAuth: token parsing or validation failed", "path", r.URL.Path, "error", err.Error())
				if errors.Is(err, jwt.ErrTokenExpired) {
					writeMessage(w, http.StatusForbidden, "token has expired")
					return
				}
				writeMessage(w, http.StatusForbidden, "token is invalid")
				return
			}
			if !token.Valid {
				log.Warn("JWTAuth: token is not valid", "path", r.URL.Path)
				writeMessage(w, http.StatusForbidden, "token is not valid")
				return
			}

			subject := claims.UserID
			if subject == "" {
				subject = claims.Subject
			}
			if subject == "" {
				log.Warn("JWTAuth: no subject found in token claims", "path", r.URL.Path)
				writeMessage(w, http.StatusForbidden, "subject not found in token claims")
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
