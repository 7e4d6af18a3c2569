package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/apptest"
	"github.com/FACorreiaa/go-photoshare/internal/app/components"
	"github.com/FACorreiaa/go-photoshare/internal/app/domain"
	"github.com/FACorreiaa/go-photoshare/internal/app/domain/auth"
	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/app/session"
	"github.com/FACorreiaa/go-photoshare/internal/app/uploads"
)

func renderDoc(t *testing.T, html string, err error) *goquery.Document {
	t.Helper()
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestLoginPage(t *testing.T) {
	html, err := components.Render(context.Background(), auth.LoginPage(auth.LoginForm{Email: "asha@example.com"}))
	doc := renderDoc(t, html, err)

	form := doc.Find("form#login-form")
	require.Equal(t, 1, form.Length())
	hxPost, _ := form.Attr("hx-post")
	assert.Equal(t, "/login", hxPost)
	hxTarget, _ := form.Attr("hx-target")
	assert.Equal(t, "#content", hxTarget)

	email, _ := form.Find(`input[name="email"][type="email"]`).Attr("value")
	assert.Equal(t, "asha@example.com", email)
	_, required := form.Find(`input[name="password"]`).Attr("required")
	assert.True(t, required)
	assert.Equal(t, 1, doc.Find(`a[href="/register"]`).Length())
}

func TestRegisterPage(t *testing.T) {
	html, err := components.Render(context.Background(), auth.RegisterPage(auth.RegisterForm{Name: "Asha", CollegeYear: "3"}))
	doc := renderDoc(t, html, err)

	form := doc.Find("form#register-form")
	require.Equal(t, 1, form.Length())
	enctype, _ := form.Attr("enctype")
	assert.Equal(t, "multipart/form-data", enctype)
	hxEncoding, _ := form.Attr("hx-encoding")
	assert.Equal(t, "multipart/form-data", hxEncoding)

	for _, name := range []string{"name", "course", "collegeYear", "email", "password", "profilePhoto"} {
		assert.Equal(t, 1, form.Find(`input[name="`+name+`"]`).Length(), name)
	}
	name, _ := form.Find(`input[name="name"]`).Attr("value")
	assert.Equal(t, "Asha", name)
	accept, _ := form.Find(`input[name="profilePhoto"]`).Attr("accept")
	assert.Equal(t, "image/*", accept)
}

type authFixture struct {
	env    *apptest.Env
	router *gin.Engine
}

func newAuthFixture(t *testing.T) *authFixture {
	env := apptest.NewEnv(t)
	env.API.AddUser("tok-asha", "hunter2", models.User{Name: "Asha", Email: "asha@example.com"})

	h := auth.NewAuthHandlers(env.Base, auth.NewAuthService(env.Client, zap.NewNop()), env.Config.Upload.MaxProfilePhotoBytes)
	router := env.Engine(func(r *gin.Engine) {
		public := r.Group("/", env.Guard.RedirectIfAuthenticated(session.DashboardPath))
		public.GET("/login", h.ShowLogin)
		public.POST("/login", h.Login)
		public.GET("/register", h.ShowRegister)
		public.POST("/register", uploads.LimitBody(env.Config.Upload.MaxProfilePhotoBytes), h.Register)
		r.POST("/logout", env.Guard.Require(), h.Logout)
	})
	return &authFixture{env: env, router: router}
}

func TestLogin(t *testing.T) {
	t.Run("shows the registration notice", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.Form(http.MethodGet, "/login?registered=1", nil), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Registration successful!"}, apptest.Notices(apptest.Doc(t, w)))
	})

	t.Run("empty fields never reach the API", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.Form(http.MethodPost, "/login", url.Values{"email": {"asha@example.com"}}), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"Email and password are required"}, apptest.Alerts(apptest.Doc(t, w)))
		assert.Zero(t, f.env.API.Count(http.MethodPost, "/api/auth/login"))
	})

	t.Run("wrong credentials keep the email", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.Form(http.MethodPost, "/login", url.Values{
			"email": {"asha@example.com"}, "password": {"nope"},
		}), nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		doc := apptest.Doc(t, w)
		assert.Equal(t, []string{"Invalid email or password"}, apptest.Alerts(doc))
		email, _ := doc.Find(`input[name="email"]`).Attr("value")
		assert.Equal(t, "asha@example.com", email)
		assert.Nil(t, f.env.SessionCookie(w))
	})

	t.Run("htmx failures are swapped in place", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.HTMX(apptest.Form(http.MethodPost, "/login", url.Values{
			"email": {"asha@example.com"}, "password": {"nope"},
		})), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		doc := apptest.Doc(t, w)
		assert.Zero(t, doc.Find("title").Length())
		assert.Equal(t, []string{"Invalid email or password"}, apptest.Alerts(doc))
	})

	t.Run("success stores the token and goes to the dashboard", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.Form(http.MethodPost, "/login", url.Values{
			"email": {"asha@example.com"}, "password": {"hunter2"},
		}), nil)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, session.DashboardPath, w.Header().Get("Location"))
		cookie := f.env.SessionCookie(w)
		require.NotNil(t, cookie)

		again := apptest.Serve(f.router, apptest.Form(http.MethodGet, "/login", nil), cookie)
		assert.Equal(t, http.StatusFound, again.Code)
		assert.Equal(t, session.DashboardPath, again.Header().Get("Location"))
	})

	t.Run("htmx success uses HX-Redirect", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.HTMX(apptest.Form(http.MethodPost, "/login", url.Values{
			"email": {"asha@example.com"}, "password": {"hunter2"},
		})), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, session.DashboardPath, w.Header().Get("HX-Redirect"))
	})
}

// brokenStore accepts no tokens.
type brokenStore struct{ session.CookieProvider }

func (brokenStore) SetToken(*gin.Context, string) error { return errors.New("cookie store unavailable") }

func TestLoginSessionFailure(t *testing.T) {
	env := apptest.NewEnv(t)
	env.API.AddUser("tok-asha", "hunter2", models.User{Name: "Asha", Email: "asha@example.com"})
	guard := session.NewGuard(brokenStore{}, env.Data, zap.NewNop())
	base := domain.NewBaseHandler(zap.NewNop(), env.Data, guard, env.Client)
	h := auth.NewAuthHandlers(base, auth.NewAuthService(env.Client, zap.NewNop()), env.Config.Upload.MaxProfilePhotoBytes)
	router := env.Engine(func(r *gin.Engine) { r.POST("/login", h.Login) })

	w := apptest.Serve(router, apptest.Form(http.MethodPost, "/login", url.Values{
		"email": {"asha@example.com"}, "password": {"hunter2"},
	}), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	alerts := apptest.Alerts(apptest.Doc(t, w))
	assert.Equal(t, []string{"Something went wrong, please try again."}, alerts)
	assert.NotContains(t, alerts, "Invalid email or password")
	assert.Nil(t, env.SessionCookie(w))
}

func TestRegister(t *testing.T) {
	fields := map[string]string{
		"name":        "Ravi",
		"course":      "Physics",
		"collegeYear": "2",
		"email":       "ravi@example.com",
		"password":    "secret",
	}

	t.Run("success sends the visitor to login", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.Multipart(t, http.MethodPost, "/register", fields,
			apptest.FilePart{Field: "profilePhoto", Filename: "me.png", Content: apptest.PNG}), nil)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login?registered=1", w.Header().Get("Location"))
		assert.Equal(t, 1, f.env.API.Count(http.MethodPost, "/api/auth/register"))
		assert.Nil(t, f.env.SessionCookie(w))
	})

	t.Run("the profile photo is optional", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.Multipart(t, http.MethodPost, "/register", fields), nil)

		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("API failure keeps the entered values", func(t *testing.T) {
		f := newAuthFixture(t)
		dup := map[string]string{"name": "Asha", "email": "asha@example.com", "password": "x", "course": "Art"}

		w := apptest.Serve(f.router, apptest.Multipart(t, http.MethodPost, "/register", dup), nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		doc := apptest.Doc(t, w)
		assert.Equal(t, []string{"Registration failed. Please try again."}, apptest.Alerts(doc))
		course, _ := doc.Find(`input[name="course"]`).Attr("value")
		assert.Equal(t, "Art", course)
		_, hasPassword := doc.Find(`input[name="password"]`).Attr("value")
		assert.False(t, hasPassword)
	})

	t.Run("an oversized body is cut off before parsing finishes", func(t *testing.T) {
		f := newAuthFixture(t)
		huge := append(append([]byte{}, apptest.PNG...), make([]byte, 8<<20)...)

		w := apptest.Serve(f.router, apptest.Multipart(t, http.MethodPost, "/register", fields,
			apptest.FilePart{Field: "profilePhoto", Filename: "me.png", Content: huge}), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"File size should be less than 5MB"}, apptest.Alerts(apptest.Doc(t, w)))
		assert.Zero(t, f.env.API.Count(http.MethodPost, "/api/auth/register"))
	})

	t.Run("a non image profile photo is rejected locally", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.Multipart(t, http.MethodPost, "/register", fields,
			apptest.FilePart{Field: "profilePhoto", Filename: "me.png", Content: []byte("plain text")}), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"Please select an image file (JPEG, PNG, etc.)"}, apptest.Alerts(apptest.Doc(t, w)))
		assert.Zero(t, f.env.API.Count(http.MethodPost, "/api/auth/register"))
	})
}

func TestLogout(t *testing.T) {
	t.Run("clears the session", func(t *testing.T) {
		f := newAuthFixture(t)
		cookie := f.env.Cookie(t, "tok-asha")

		w := apptest.Serve(f.router, apptest.Form(http.MethodPost, "/logout", nil), cookie)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, session.LoginPath, w.Header().Get("Location"))
		assert.Equal(t, 1, f.env.API.Count(http.MethodPost, "/api/auth/logout"))
		cleared := f.env.SessionCookie(w)
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)
	})

	t.Run("a rejected token counts as logged out", func(t *testing.T) {
		f := newAuthFixture(t)
		f.env.API.Fail(http.MethodPost, "/api/auth/logout", http.StatusUnauthorized)

		w := apptest.Serve(f.router, apptest.Form(http.MethodPost, "/logout", nil), f.env.Cookie(t, "tok-asha"))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, session.LoginPath, w.Header().Get("Location"))
	})

	t.Run("other failures keep the user signed in", func(t *testing.T) {
		f := newAuthFixture(t)
		f.env.API.Fail(http.MethodPost, "/api/auth/logout", http.StatusInternalServerError)

		w := apptest.Serve(f.router, apptest.Form(http.MethodPost, "/logout", nil), f.env.Cookie(t, "tok-asha"))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		doc := apptest.Doc(t, w)
		assert.Equal(t, []string{"Failed to logout."}, apptest.Alerts(doc))
		assert.Equal(t, "Asha", doc.Find("#nav-user span").Text())
		assert.Nil(t, f.env.SessionCookie(w))
	})

	t.Run("without a session it goes to login", func(t *testing.T) {
		f := newAuthFixture(t)

		w := apptest.Serve(f.router, apptest.Form(http.MethodPost, "/logout", nil), nil)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Zero(t, f.env.API.Count(http.MethodPost, "/api/auth/logout"))
	})
}
