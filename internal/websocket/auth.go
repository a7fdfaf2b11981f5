package websocket

import (
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils"
)

type AuthenticatorFunc func(r *http.Request) (*Identity, error)

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// JWTWebSocketAuth verifies the actor token and extracts the identity the
// rest of the engine trusts: user id, role, building.
func JWTWebSocketAuth(publicKey *rsa.PublicKey) AuthenticatorFunc {
	return func(r *http.Request) (*Identity, error) {
		token := getTokenFromRequest(r)
		if token == "" {
			return nil, &AuthError{Message: "missing token"}
		}

		claims, err := utils.ParseAndVerifySign(token, publicKey)
		if err != nil {
			return nil, &AuthError{Message: "invalid or expired token"}
		}

		if claims.Role != "admin" && claims.Role != "resident" {
			return nil, &AuthError{Message: "unknown role"}
		}

		return &Identity{
			UserID:   claims.Sub,
			Role:     claims.Role,
			Building: claims.Building,
		}, nil
	}
}

func getTokenFromRequest(r *http.Request) string {
	// Option 1: Authorization header
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Option 2: Query parameter
	token := r.URL.Query().Get("token")
	if token != "" {
		return token
	}

	// Option 3: Cookie
	cookie, err := r.Cookie("access_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
