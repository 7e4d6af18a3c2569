// Package apptest wires the application against an in-memory API for handler tests.
package apptest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/common"
	"github.com/FACorreiaa/go-photoshare/internal/app/domain"
	"github.com/FACorreiaa/go-photoshare/internal/app/services"
	"github.com/FACorreiaa/go-photoshare/internal/app/session"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/cache"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/config"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

// Env wires the real client, cache, services and guard against a FakeAPI.
type Env struct {
	API    *common.FakeAPI
	Config *config.Config
	Client *photoapi.Client
	Cache  *cache.QueryCache
	Data   *services.DataService
	Guard  *session.Guard
	Base   *domain.BaseHandler
}

func NewEnv(t testing.TB) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := common.NewFakeAPI(t)
	cfg := config.Default()
	cfg.API.BaseURL = api.URL()
	cfg.Session.Secret = testSecret

	client, err := photoapi.New(cfg.API.BaseURL, photoapi.Options{Timeout: cfg.API.Timeout})
	if err != nil {
		t.Fatalf("photoapi.New: %v", err)
	}
	qc := cache.NewQueryCache(cfg.Cache.TTL, "test", zap.NewNop())
	data := services.NewDataService(client, qc, zap.NewNop())
	guard := session.NewGuard(session.CookieProvider{}, data, zap.NewNop())

	return &Env{
		API:    api,
		Config: cfg,
		Client: client,
		Cache:  qc,
		Data:   data,
		Guard:  guard,
		Base:   domain.NewBaseHandler(zap.NewNop(), data, guard, client),
	}
}

// Engine returns a gin engine with the session cookie installed and the
// routes added by register.
func (e *Env) Engine(register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(session.Middleware(e.Config.Session))
	register(r)
	return r
}

// Cookie returns a session cookie holding token.
func (e *Env) Cookie(t testing.TB, token string) *http.Cookie {
	t.Helper()
	r := e.Engine(func(r *gin.Engine) {
		r.GET("/signin", func(c *gin.Context) {
			if err := (session.CookieProvider{}).SetToken(c, token); err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.Status(http.StatusNoContent)
		})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signin", nil))
	for _, ck := range w.Result().Cookies() {
		if ck.Name == e.Config.Session.CookieName {
			return ck
		}
	}
	t.Fatalf("no session cookie issued")
	return nil
}

// SessionCookie extracts the session cookie set by a response, if any.
func (e *Env) SessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == e.Config.Session.CookieName {
			return ck
		}
	}
	return nil
}
