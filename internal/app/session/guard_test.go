package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-photoshare/internal/pkg/config"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

// memoryProvider holds a single token for the duration of a test.
type memoryProvider struct {
	token   string
	cleared int
}

func (m *memoryProvider) Token(*gin.Context) string { return m.token }

func (m *memoryProvider) SetToken(_ *gin.Context, token string) error {
	m.token = token
	return nil
}

func (m *memoryProvider) Clear(*gin.Context) error {
	m.token = ""
	m.cleared++
	return nil
}

type recordingForgetter struct{ forgotten []string }

func (r *recordingForgetter) Forget(token string) { r.forgotten = append(r.forgotten, token) }

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardRouter(provider Provider, forget Forgetter, handlerCalls *int) (*gin.Engine, *Guard) {
	guard := NewGuard(provider, forget, nil)
	r := gin.New()
	r.GET("/", guard.Root())
	r.GET("/login", guard.RedirectIfAuthenticated(DashboardPath), func(c *gin.Context) {
		c.String(http.StatusOK, "login")
	})
	protected := r.Group("/", guard.Require())
	protected.GET("/dashboard", func(c *gin.Context) {
		*handlerCalls++
		c.String(http.StatusOK, "token="+TokenFromContext(c))
	})
	protected.GET("/denied", func(c *gin.Context) {
		*handlerCalls++
		if guard.HandleAPIError(c, &photoapi.Error{Op: "AllPhotos", Status: http.StatusUnauthorized, Err: errors.New("expired")}) {
			return
		}
		c.String(http.StatusOK, "unreachable")
	})
	protected.GET("/broken", func(c *gin.Context) {
		*handlerCalls++
		if guard.HandleAPIError(c, &photoapi.Error{Op: "AllPhotos", Status: http.StatusInternalServerError, Err: errors.New("boom")}) {
			return
		}
		c.String(http.StatusOK, "banner")
	})
	return r, guard
}

func serve(r http.Handler, method, target string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "sub": "u1"}).
		SignedString([]byte("irrelevant-for-the-client"))
	require.NoError(t, err)
	return tok
}

func TestRequire(t *testing.T) {
	t.Run("no token redirects before the handler runs", func(t *testing.T) {
		calls := 0
		r, _ := newGuardRouter(&memoryProvider{}, nil, &calls)

		w := serve(r, http.MethodGet, "/dashboard", false)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
		assert.Zero(t, calls)
	})

	t.Run("htmx requests get HX-Redirect", func(t *testing.T) {
		calls := 0
		r, _ := newGuardRouter(&memoryProvider{}, nil, &calls)

		w := serve(r, http.MethodGet, "/dashboard", true)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("HX-Redirect"))
	})

	t.Run("token reaches the handler", func(t *testing.T) {
		calls := 0
		r, _ := newGuardRouter(&memoryProvider{token: "opaque-token"}, nil, &calls)

		w := serve(r, http.MethodGet, "/dashboard", false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "token=opaque-token", w.Body.String())
		assert.Equal(t, 1, calls)
	})

	t.Run("expired jwt is cleared without reaching the handler", func(t *testing.T) {
		calls := 0
		provider := &memoryProvider{token: signedToken(t, time.Now().Add(-time.Hour))}
		forget := &recordingForgetter{}
		r, _ := newGuardRouter(provider, forget, &calls)

		w := serve(r, http.MethodGet, "/dashboard", false)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Zero(t, calls)
		assert.Empty(t, provider.token)
		assert.Len(t, forget.forgotten, 1)
	})

	t.Run("valid jwt passes", func(t *testing.T) {
		calls := 0
		r, _ := newGuardRouter(&memoryProvider{token: signedToken(t, time.Now().Add(time.Hour))}, nil, &calls)

		w := serve(r, http.MethodGet, "/dashboard", false)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRedirectIfAuthenticated(t *testing.T) {
	calls := 0
	r, _ := newGuardRouter(&memoryProvider{token: "tok"}, nil, &calls)

	w := serve(r, http.MethodGet, "/login", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, DashboardPath, w.Header().Get("Location"))

	// The dashboard does not bounce back, so there is no loop.
	w = serve(r, http.MethodGet, DashboardPath, false)
	assert.Equal(t, http.StatusOK, w.Code)

	r, _ = newGuardRouter(&memoryProvider{}, nil, &calls)
	w = serve(r, http.MethodGet, "/login", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoot(t *testing.T) {
	calls := 0
	r, _ := newGuardRouter(&memoryProvider{token: "tok"}, nil, &calls)
	assert.Equal(t, DashboardPath, serve(r, http.MethodGet, "/", false).Header().Get("Location"))

	r, _ = newGuardRouter(&memoryProvider{}, nil, &calls)
	assert.Equal(t, LoginPath, serve(r, http.MethodGet, "/", false).Header().Get("Location"))
}

func TestHandleAPIError(t *testing.T) {
	t.Run("authorization failure ends the session", func(t *testing.T) {
		calls := 0
		provider := &memoryProvider{token: "tok"}
		forget := &recordingForgetter{}
		r, _ := newGuardRouter(provider, forget, &calls)

		w := serve(r, http.MethodGet, "/denied", false)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
		assert.Empty(t, provider.token)
		assert.Equal(t, []string{"tok"}, forget.forgotten)
	})

	t.Run("other failures are left to the screen", func(t *testing.T) {
		calls := 0
		provider := &memoryProvider{token: "tok"}
		r, _ := newGuardRouter(provider, nil, &calls)

		w := serve(r, http.MethodGet, "/broken", false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "banner", w.Body.String())
		assert.Equal(t, "tok", provider.token)
	})
}

func TestCookieProviderRoundTrip(t *testing.T) {
	cfg := config.SessionConfig{
		CookieName: "photoshare_session",
		Secret:     "0123456789abcdef0123456789abcdef",
		MaxAge:     3600,
	}
	provider := CookieProvider{}
	r := gin.New()
	r.Use(Middleware(cfg))
	r.POST("/set", func(c *gin.Context) {
		require.NoError(t, provider.SetToken(c, "tok-1"))
		c.Status(http.StatusNoContent)
	})
	r.GET("/get", func(c *gin.Context) {
		c.String(http.StatusOK, provider.Token(c))
	})
	r.POST("/clear", func(c *gin.Context) {
		require.NoError(t, provider.Clear(c))
		c.Status(http.StatusNoContent)
	})

	w := serve(r, http.MethodPost, "/set", false)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "photoshare_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, cookies[0].Value, "tok-1")

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "tok-1", w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/clear", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)

	w = serve(r, http.MethodGet, "/get", false)
	assert.Empty(t, w.Body.String())
}
