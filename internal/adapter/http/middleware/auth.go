package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
	"github.com/golang-jwt/jwt/v5"
)

type actorKeyType string

const actorKey actorKeyType = "authenticatedActor"

// Claims is the JWT payload minted by the user-service.
type Claims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token and stores the resulting Actor in the
// request context. Requests without a valid token are rejected with 401.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("JWTAuth: missing Authorization header", "path", r.URL.Path)
				writeAuthError(w, http.StatusUnauthorized, "authorization token is not provided")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("JWTAuth: invalid Authorization header format", "path", r.URL.Path)
				writeAuthError(w, http.StatusUnauthorized, "authorization token format is invalid, expected 'Bearer <token>'")
				return
			}
			tokenString := parts[1]

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				log.Warn("JWTAuth: token validation failed", "path", r.URL.Path, "error", err.Error())
				if errors.Is(err, jwt.ErrTokenExpired) {
					writeAuthError(w, http.StatusUnauthorized, "token has expired")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "token is invalid")
				return
			}
			if !token.Valid || claims.UserID == "" {
				log.Warn("JWTAuth: token accepted but claims are incomplete", "path", r.URL.Path)
				writeAuthError(w, http.StatusUnauthorized, "token is invalid")
				return
			}

			actor := domain.Actor{UserID: claims.UserID, Roles: claims.Roles}
			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles allows the request through when the actor holds at least one
// of the given roles. Must run after JWTAuth.
func RequireRoles(log *logger.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "user authentication required")
				return
			}
			for _, role := range roles {
				if actor.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Warn("RequireRoles: actor lacks required role",
				"path", r.URL.Path, "actor_id", actor.UserID, "required_roles", strings.Join(roles, ","))
			writeAuthError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// WithActor returns a context carrying the actor. Exposed for handler tests.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
