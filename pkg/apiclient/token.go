package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-cotizador/pkg/page"
)

// CSRFHeader carries the anti-forgery token on every request.
const CSRFHeader = "X-CSRFToken"

// CSRFCookieName is the cookie Django uses to mirror the anti-forgery token.
const CSRFCookieName = "csrftoken"

// TokenSource supplies the anti-forgery token attached to requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, typically copied from a rendered page.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// PageToken holds the token read from the most recently fetched page. It is
// re-seeded on every refresh so a rotated token is picked up.
type PageToken struct {
	mu    sync.RWMutex
	token string
}

// Token implements TokenSource. An unseeded source yields an empty token,
// which the server rejects with its own error.
func (p *PageToken) Token(context.Context) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, nil
}

// Set replaces the held token.
func (p *PageToken) Set(token string) {
	p.mu.Lock()
	p.token = strings.TrimSpace(token)
	p.mu.Unlock()
}

// Seed reads the token from a parsed page.
func (p *PageToken) Seed(doc *page.Document) error {
	if doc == nil {
		return errors.New("apiclient: page is nil")
	}
	token, err := doc.CSRFToken()
	if err != nil {
		return err
	}
	p.Set(token)
	return nil
}

// CookieToken reads the token from the client's cookie jar.
type CookieToken struct {
	jar  http.CookieJar
	base *url.URL
	name string
}

// Token implements TokenSource.
func (c CookieToken) Token(context.Context) (string, error) {
	if c.jar == nil || c.base == nil {
		return "", errors.New("apiclient: cookie token has no jar")
	}
	name := c.name
	if name == "" {
		name = CSRFCookieName
	}
	for _, cookie := range c.jar.Cookies(c.base) {
		if cookie.Name == name {
			return cookie.Value, nil
		}
	}
	return "", nil
}
