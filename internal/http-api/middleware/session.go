package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieSigner seals a session token into a cookie value. auth.CookieSigner is the production implementation.
type CookieSigner interface {
	Sign(token string) (string, error)
	Parse(value string) (string, error)
	MaxAge() int
}

// SessionCookies reads and writes the signed session cookie.
type SessionCookies struct {
	Name   string
	Secure bool
	Signer CookieSigner
}

// Token returns the session token carried by the request, or "" when the
// cookie is missing, forged or expired.
func (s *SessionCookies) Token(c *gin.Context) string {
	value, err := c.Cookie(s.Name)
	if err != nil {
		return ""
	}
	token, err := s.Signer.Parse(value)
	if err != nil {
		return ""
	}
	return token
}

// Set writes a signed cookie for token.
func (s *SessionCookies) Set(c *gin.Context, token string) error {
	value, err := s.Signer.Sign(token)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, value, s.Signer.MaxAge(), "/", "", s.Secure, true)
	return nil
}

// Clear expires the cookie on the client.
func (s *SessionCookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
}
