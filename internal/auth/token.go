package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "taskdeck"

// Claims binds a user identity to the token's validity window.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"user_id"`
}

// IssueToken creates a signed session token for the given user. The token is
// stateless: nothing is stored server-side and it stays valid until expiry.
func IssueToken(userID uint64, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken returns the user ID embedded in the token when the signature is
// valid and the token has not expired. Any failure yields (0, false); callers
// in the request path treat that as "unauthenticated", never as an error.
func VerifyToken(tokenString, secret string) (uint64, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return 0, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, false
	}

	return claims.UserID, true
}
