// Package auth implements the credential primitives of the server: bcrypt
// password hashing and HS256 bearer tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the lifetime of an issued token.
const DefaultTokenValidity = 24 * time.Hour

// ErrEmptySecret is returned when a TokenManager is built without a key.
var ErrEmptySecret = errors.New("auth: empty signing secret")

// Claims is the token payload: the user's identity plus iat/exp.
type Claims struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies self-contained HS256 tokens. It holds no
// mutable state and is safe for concurrent use.
type TokenManager struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(secretKey []byte, validity time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if len(secretKey) == 0 {
		return nil, ErrEmptySecret
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	m := &TokenManager{secretKey: secretKey, validity: validity, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs a token for the given user valid for the configured duration.
func (m *TokenManager) Issue(userID int64, userName string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
	})

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry and returns the claims. Expired tokens
// yield common.ErrTokenExpired, everything else common.ErrInvalidToken; the
// jwt library error is wrapped alongside for logging.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

func (m *TokenManager) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return m.secretKey, nil
}
