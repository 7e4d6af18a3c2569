package session

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/blake2b"

	"github.com/FACorreiaa/go-photoshare/internal/pkg/config"
)

const tokenKey = "token"

// Provider is the only place the session token is read or written.
type Provider interface {
	Token(c *gin.Context) string
	SetToken(c *gin.Context, token string) error
	Clear(c *gin.Context) error
}

// NewCookieStore returns a store that signs and encrypts the session cookie.
// The encryption key is derived from the secret so one setting covers both.
func NewCookieStore(cfg config.SessionConfig) sessions.Store {
	blockKey := blake2b.Sum256([]byte(cfg.Secret))
	store := cookie.NewStore([]byte(cfg.Secret), blockKey[:])
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Middleware installs the cookie session on every request.
func Middleware(cfg config.SessionConfig) gin.HandlerFunc {
	return sessions.Sessions(cfg.CookieName, NewCookieStore(cfg))
}

// CookieProvider keeps the token in the gin-contrib/sessions cookie.
type CookieProvider struct{}

var _ Provider = CookieProvider{}

func (CookieProvider) Token(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(tokenKey).(string)
	return token
}

func (CookieProvider) SetToken(c *gin.Context, token string) error {
	if token == "" {
		return errors.New("empty session token")
	}
	s := sessions.Default(c)
	s.Set(tokenKey, token)
	return s.Save()
}

func (CookieProvider) Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(tokenKey)
	s.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
	return s.Save()
}
