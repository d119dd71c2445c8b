package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

type principalKey struct{}

// Claims are the bearer token claims the API trusts
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// WithPrincipal stores the authenticated caller in the context
func WithPrincipal(ctx context.Context, principal *entities.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext returns the authenticated caller, or nil
func PrincipalFromContext(ctx context.Context) *entities.Principal {
	principal, _ := ctx.Value(principalKey{}).(*entities.Principal)
	return principal
}

// Authenticator verifies HMAC-signed bearer tokens. Tokens are issued elsewhere.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an authenticator for the shared secret
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// RequireAuth rejects requests without a valid bearer token
func (a *Authenticator) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.authenticate(r)
		if err != nil {
			observability.LoggerFromContext(r.Context()).Debug().Err(err).Msg("Rejected bearer token")
			writeError(w, apperrors.NewUnauthorizedError("could not validate credentials"))
			return
		}
		next(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	}
}

// RequireAdmin rejects requests unless the caller is an admin
func (a *Authenticator) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if !PrincipalFromContext(r.Context()).IsAdmin() {
			writeError(w, apperrors.NewForbiddenError("admin privileges required"))
			return
		}
		next(w, r)
	})
}

func (a *Authenticator) authenticate(r *http.Request) (*entities.Principal, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("no signing secret configured")
	}
	header := r.Header.Get("Authorization")
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" {
		return nil, errors.New("missing bearer token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.UserID <= 0 {
		return nil, errors.New("token has no user_id")
	}

	role := claims.Role
	if role == "" {
		role = entities.RoleUser
	}
	return &entities.Principal{UserID: claims.UserID, Role: role}, nil
}

// writeError mirrors the handlers' error body
func writeError(w http.ResponseWriter, err *apperrors.AppError) {
	status := http.StatusUnauthorized
	if err.Type == apperrors.ErrorTypeForbidden {
		status = http.StatusForbidden
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Message,
		"kind":  string(err.Type),
	})
}
