// Package auth implements the identity core of the server: password digests
// and issuing/verifying signed session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard-dev/taskboard/internal/common"
)

// Claims carries the registered claims plus the account email, so the token
// payload contains sub, email, iat and exp.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Identity is the verified subject extracted from a valid session token.
type Identity struct {
	UserID string
	Email  string
}

// GenerateToken issues a compact HS256-signed session token for the given
// user. Expiry is issued-at plus validityDuration.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken parses and verifies a session token. The returned error is one
// of common.ErrTokenMalformed, common.ErrTokenSignatureInvalid or
// common.ErrTokenExpired; callers that gate requests must treat all of them
// uniformly as "no valid identity".
func VerifyToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenSignatureInvalid
		default:
			return nil, common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	return &Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
