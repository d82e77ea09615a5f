package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Manager writes the HTTP-only session cookie.
type Manager struct {
	Name   string
	Domain string
	Secure bool
}

func NewCookie(name, domain string, secure bool) *Manager {
	if name == "" {
		name = "token"
	}
	return &Manager{Name: name, Domain: domain, Secure: secure}
}

func (m *Manager) SetSession(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(m.Name, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(m.Name, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
