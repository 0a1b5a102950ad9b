package access

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/logger"
)

// TokenLifetime is how long an issued bearer token stays valid
const TokenLifetime = time.Hour

// tokenClaims is the bearer token payload: the user id plus the
// registered issued-at and expiry claims.
type tokenClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies bearer tokens. It is constructed once at
// process start from explicit configuration and is safe for concurrent use;
// the secret is never mutated afterwards.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service signing with the given shared secret
func NewTokenService(secret string) *TokenService {
	if len(secret) == 0 {
		panic("token secret is missing")
	}
	return &TokenService{secret: []byte(secret)}
}

// Issue creates a signed bearer token for the given user
func (t *TokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry of the given token string and returns
// the user id it was issued for. Expired, tampered or foreign tokens fail
// with a KindUnauthenticated error.
func (t *TokenService) Verify(tokenString string) (int64, error) {
	claims := tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, core.UnauthenticatedError("invalid token")
	}
	if claims.UserID <= 0 {
		return 0, core.UnauthenticatedError("invalid token")
	}
	return claims.UserID, nil
}

// NewBearerMiddleware returns a middleware handler that validates the
// "Authorization: Bearer" header with the given token service.
//
// On success the resolved identity is stored in the request context and
// added to the request logger. A missing header, a malformed header and a
// token that fails verification all short-circuit with
// http.StatusUnauthorized; the reasons are distinguished in the logs only.
func NewBearerMiddleware(tokens *TokenService) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rlog := logger.FromContext(r.Context())

			bearer := r.Header.Get("Authorization")
			if len(bearer) == 0 {
				rlog.Debugln("bearer middleware: no authorization header")
				http.Error(w, "access denied", http.StatusUnauthorized)
				return
			}
			if len(bearer) < 8 || !strings.EqualFold(bearer[:7], "bearer ") {
				rlog.Debugln("bearer middleware: malformed authorization header")
				http.Error(w, "token not provided", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimSpace(bearer[7:])
			if len(tokenString) == 0 {
				rlog.Debugln("bearer middleware: empty token")
				http.Error(w, "token not provided", http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				rlog.WithError(err).Debugln("bearer middleware: verification failed")
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := ContextWithIdentity(r.Context(), Identity{UserID: userID})
			ctx, _ = logger.ContextWithLoggerIdentity(ctx, fmt.Sprintf("user/%d", userID))
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
