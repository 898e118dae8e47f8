package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieSigner wraps an opaque session id in an HS256 token so a forged or
// edited cookie is rejected before any store lookup.
type CookieSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCookieSigner builds a signer; now supplies issue and validation time.
func NewCookieSigner(secret string, ttl time.Duration, now func() time.Time) *CookieSigner {
	if now == nil {
		now = time.Now
	}
	return &CookieSigner{secret: []byte(secret), ttl: ttl, now: now}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Sign returns the cookie value for the session id.
func (s *CookieSigner) Sign(sessionID string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates the cookie value and returns the session id it carries.
func (s *CookieSigner) Parse(value string) (string, error) {
	if value == "" {
		return "", ErrInvalidCookie
	}
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidCookie
	}
	return claims.SessionID, nil
}

// MaxAge is the cookie lifetime in seconds.
func (s *CookieSigner) MaxAge() int {
	return int(s.ttl / time.Second)
}
