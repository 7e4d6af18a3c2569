package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"

	tokenContextKey = "session_token"
)

// Forgetter drops data cached for a session.
type Forgetter interface {
	Forget(token string)
}

// Guard gates protected routes on the presence of a session token and owns
// the response to an authorization failure reported by the API.
type Guard struct {
	provider Provider
	forget   Forgetter
	logger   *zap.Logger
	now      func() time.Time
}

func NewGuard(provider Provider, forget Forgetter, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{provider: provider, forget: forget, logger: logger, now: time.Now}
}

// Require redirects to the login screen before the handler runs when there
// is no usable token. Otherwise the token is placed on the gin context.
func (g *Guard) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := g.provider.Token(c)
		if token == "" {
			handleAuthRedirect(c, LoginPath)
			return
		}
		if g.expired(token) {
			g.logger.Debug("Session token expired", zap.String("path", c.Request.URL.Path))
			g.end(c, token)
			handleAuthRedirect(c, LoginPath)
			return
		}
		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// RedirectIfAuthenticated sends visitors that already hold a token to target.
func (g *Guard) RedirectIfAuthenticated(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := g.provider.Token(c)
		if token != "" && !g.expired(token) {
			Redirect(c, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Root sends "/" to the dashboard or the login screen.
func (g *Guard) Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := g.provider.Token(c); token != "" && !g.expired(token) {
			Redirect(c, DashboardPath)
			return
		}
		Redirect(c, LoginPath)
	}
}

// HandleAPIError reports whether err was an authorization failure. If so
// the session has been ended and the response is a redirect to login.
func (g *Guard) HandleAPIError(c *gin.Context, err error) bool {
	if err == nil || !photoapi.IsAuthFailure(err) {
		return false
	}
	g.logger.Info("API rejected session token, signing out",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", photoapi.StatusOf(err)))
	g.end(c, TokenFromContext(c))
	handleAuthRedirect(c, LoginPath)
	return true
}

// SignIn stores a freshly issued token.
func (g *Guard) SignIn(c *gin.Context, token string) error {
	return g.provider.SetToken(c, token)
}

// SignOut clears the token and everything cached for it.
func (g *Guard) SignOut(c *gin.Context) {
	token := TokenFromContext(c)
	if token == "" {
		token = g.provider.Token(c)
	}
	g.end(c, token)
}

func (g *Guard) end(c *gin.Context, token string) {
	if token != "" && g.forget != nil {
		g.forget.Forget(token)
	}
	if err := g.provider.Clear(c); err != nil {
		g.logger.Warn("Failed to clear session", zap.Error(err))
	}
	c.Set(tokenContextKey, "")
}

// expired reports whether token is a JWT whose exp has passed. The API is
// the authority on validity; opaque tokens are never rejected here.
func (g *Guard) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(g.now())
}

// TokenFromContext returns the token placed by Require.
func TokenFromContext(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// Redirect navigates the browser to url, using HX-Redirect for htmx requests.
func Redirect(c *gin.Context, url string) {
	if IsHTMX(c) {
		c.Header("HX-Redirect", url)
		c.Status(http.StatusOK)
		return
	}
	status := http.StatusFound
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		status = http.StatusSeeOther
	}
	c.Redirect(status, url)
}

// handleAuthRedirect handles redirects for both regular and HTMX requests
func handleAuthRedirect(c *gin.Context, redirectURL string) {
	if IsHTMX(c) {
		c.Header("HX-Redirect", redirectURL)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	Redirect(c, redirectURL)
	c.Abort()
}
