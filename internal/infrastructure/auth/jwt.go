package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingOwner = errors.New("token carries no owner")
)

// Claims identifies the owner a request acts for. Tokens are issued elsewhere;
// this service only verifies them.
type Claims struct {
	OwnerID string `json:"owner_id"`
	jwt.RegisteredClaims
}

// Verifier checks HMAC-signed bearer tokens.
type Verifier struct {
	secretKey []byte
	now       func() time.Time
}

// NewVerifier creates a Verifier for secretKey.
func NewVerifier(secretKey string) *Verifier {
	return &Verifier{secretKey: []byte(secretKey), now: time.Now}
}

// Verify parses tokenString and returns its claims. The owner is taken from
// owner_id, falling back to the standard subject claim.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secretKey, nil
		},
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.OwnerID == "" {
		claims.OwnerID = claims.Subject
	}
	if claims.OwnerID == "" {
		return nil, ErrMissingOwner
	}

	return claims, nil
}

// Sign issues a token for ownerID. The CLI and tests use it; the server never
// issues tokens.
func Sign(secretKey, ownerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}
