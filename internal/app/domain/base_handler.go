package domain

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-photoshare/internal/app/components"
	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/app/renderer"
	"github.com/FACorreiaa/go-photoshare/internal/app/services"
	"github.com/FACorreiaa/go-photoshare/internal/app/session"
)

const userDataErrorMessage = "Failed to load user data."

// AssetResolver maps image references returned by the API to browser URLs.
type AssetResolver interface {
	AssetURL(ref string) string
	ProfilePhotoURL(ref string) string
}

// Chrome is the navigation data a protected screen loads next to its own.
type Chrome struct {
	User *models.NavUser
	Err  error
}

type BaseHandler struct {
	Logger *zap.Logger
	Data   services.PhotoService
	Guard  *session.Guard
	Assets AssetResolver
}

func NewBaseHandler(logger *zap.Logger, data services.PhotoService, guard *session.Guard, assets AssetResolver) *BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseHandler{Logger: logger, Data: data, Guard: guard, Assets: assets}
}

// LoadWithChrome runs load and the current-user fetch concurrently. Neither
// failure cancels the other; the chrome error is reported separately.
func (h *BaseHandler) LoadWithChrome(c *gin.Context, load func(ctx context.Context) error) (Chrome, error) {
	token := session.TokenFromContext(c)
	var (
		chrome  Chrome
		loadErr error
		g       errgroup.Group
	)
	ctx := c.Request.Context()

	g.Go(func() error {
		user, err := h.Data.CurrentUser(ctx, token)
		if err != nil {
			chrome.Err = err
			return nil
		}
		chrome.User = h.NavUser(user)
		return nil
	})
	if load != nil {
		g.Go(func() error {
			loadErr = load(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return chrome, loadErr
}

// Chrome loads only the navigation data.
func (h *BaseHandler) Chrome(c *gin.Context) Chrome {
	chrome, _ := h.LoadWithChrome(c, nil)
	return chrome
}

// HandleAuth ends the session and redirects when any err is an
// authorization failure. It reports whether the response was written.
func (h *BaseHandler) HandleAuth(c *gin.Context, errs ...error) bool {
	for _, err := range errs {
		if h.Guard.HandleAPIError(c, err) {
			return true
		}
	}
	return false
}

func (h *BaseHandler) NavUser(u *models.User) *models.NavUser {
	if u == nil {
		return nil
	}
	return &models.NavUser{Name: u.Name, PhotoURL: h.Assets.ProfilePhotoURL(u.ProfilePhoto)}
}

func (h *BaseHandler) NewLayoutData(title, activeNav string, chrome *Chrome, flashes []models.Flash, content templ.Component) models.LayoutTempl {
	data := models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       models.OfflineNav,
		ActiveNav: activeNav,
		Flashes:   flashes,
	}
	if chrome != nil {
		data.Nav = models.MainNav
		data.User = chrome.User
		if chrome.Err != nil {
			data.Flashes = append([]models.Flash{{Kind: models.FlashError, Message: userDataErrorMessage}}, flashes...)
		}
	}
	return data
}

func (h *BaseHandler) Render(c *gin.Context, status int, name string, component templ.Component) {
	c.Render(status, renderer.New(c.Request.Context(), -1, name, component))
}

// RenderPage renders a protected screen. Non-boosted htmx requests receive
// the content and banners only.
func (h *BaseHandler) RenderPage(c *gin.Context, status int, title, activeNav string, chrome Chrome, flashes []models.Flash, content templ.Component) {
	layout := h.NewLayoutData(title, activeNav, &chrome, flashes, content)
	h.renderLayout(c, status, layout)
}

// RenderPublic renders a screen for signed-out visitors.
func (h *BaseHandler) RenderPublic(c *gin.Context, status int, title, activeNav string, flashes []models.Flash, content templ.Component) {
	layout := h.NewLayoutData(title, activeNav, nil, flashes, content)
	h.renderLayout(c, status, layout)
}

func (h *BaseHandler) renderLayout(c *gin.Context, status int, layout models.LayoutTempl) {
	if IsFragmentRequest(c) {
		h.Render(c, status, layout.Title, components.Func(func(out *components.HTML) {
			out.Component(components.Banners(layout.Flashes))
			out.Component(layout.Content)
		}))
		return
	}
	h.Render(c, status, layout.Title, components.LayoutPage(layout))
}

// IsFragmentRequest reports whether the request wants a partial swap.
func IsFragmentRequest(c *gin.Context) bool {
	return session.IsHTMX(c) && c.GetHeader("HX-Boosted") != "true"
}

// ErrorFlash is a generic failure banner. The underlying error is logged, not shown.
func (h *BaseHandler) ErrorFlash(c *gin.Context, message string, err error) models.Flash {
	if err != nil && !errors.Is(err, context.Canceled) {
		h.Logger.Warn(message,
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	return models.Flash{Kind: models.FlashError, Message: message}
}

func SuccessFlash(message string) models.Flash {
	return models.Flash{Kind: models.FlashSuccess, Message: message}
}

// FormStatus is the status for a re-rendered form. htmx does not swap 4xx
// responses, so its requests always get 200.
func FormStatus(c *gin.Context, status int) int {
	if session.IsHTMX(c) {
		return http.StatusOK
	}
	return status
}
