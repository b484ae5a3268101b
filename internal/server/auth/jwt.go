// Package auth issues and verifies the bearer access tokens handed out on
// signup and signin. Tokens are HS256 JWTs carrying the user id as an
// integer "sub" claim plus the email, and live for AccessTokenTTL.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the fixed lifetime of every access token.
const AccessTokenTTL = 15 * time.Minute

// Claims are the token payload. UserID shadows the string "sub" of the
// embedded registered claims so the id travels as a JSON number.
type Claims struct {
	UserID int64  `json:"sub"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the user, issued at issuedAt and expiring
// AccessTokenTTL later.
func GenerateToken(userID int64, email string, secretKey []byte, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(AccessTokenTTL)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature, algorithm and expiry and returns the claims.
// Expired tokens yield common.ErrTokenExpired, anything else wrong with the
// token yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
