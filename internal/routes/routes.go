package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/domain"
	"github.com/FACorreiaa/go-photoshare/internal/app/domain/auth"
	"github.com/FACorreiaa/go-photoshare/internal/app/domain/photos"
	"github.com/FACorreiaa/go-photoshare/internal/app/domain/profile"
	"github.com/FACorreiaa/go-photoshare/internal/app/renderer"
	"github.com/FACorreiaa/go-photoshare/internal/app/services"
	"github.com/FACorreiaa/go-photoshare/internal/app/session"
	"github.com/FACorreiaa/go-photoshare/internal/app/uploads"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/cache"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/config"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

type AppHandlers struct {
	Guard   *session.Guard
	Auth    *auth.AuthHandlers
	Photos  *photos.PhotoHandlers
	Profile *profile.ProfileHandlers

	MaxPhotoBytes        int64
	MaxProfilePhotoBytes int64
}

// Setup installs the templ renderer and every application route on r.
func Setup(r *gin.Engine, cfg *config.Config, log *zap.Logger) error {
	ginHTMLRenderer := r.HTMLRender
	r.HTMLRender = &renderer.HTMLTemplRenderer{FallbackHtmlRenderer: ginHTMLRenderer}

	handlers, err := setupDependencies(cfg, log)
	if err != nil {
		return err
	}
	setupRouter(r, handlers)
	return nil
}

func setupDependencies(cfg *config.Config, log *zap.Logger) (*AppHandlers, error) {
	client, err := photoapi.New(cfg.API.BaseURL, photoapi.Options{
		Timeout: cfg.API.Timeout,
		Logger:  log.Named("photoapi"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create photo API client: %w", err)
	}

	queryCache := cache.NewQueryCache(cfg.Cache.TTL, "queries", log.Named("cache"))
	dataService := services.NewDataService(client, queryCache, log.Named("data"))
	guard := session.NewGuard(session.CookieProvider{}, dataService, log.Named("session"))
	baseHandler := domain.NewBaseHandler(log, dataService, guard, client)
	authService := auth.NewAuthService(client, log.Named("auth"))

	return &AppHandlers{
		Guard:   guard,
		Auth:    auth.NewAuthHandlers(baseHandler, authService, cfg.Upload.MaxProfilePhotoBytes),
		Photos:  photos.NewPhotoHandlers(baseHandler, cfg.Gallery.PageSize, cfg.Upload.MaxPhotoBytes),
		Profile: profile.NewProfileHandlers(baseHandler, cfg.Upload.MaxProfilePhotoBytes),

		MaxPhotoBytes:        cfg.Upload.MaxPhotoBytes,
		MaxProfilePhotoBytes: cfg.Upload.MaxProfilePhotoBytes,
	}, nil
}

func setupRouter(r *gin.Engine, h *AppHandlers) {
	r.GET("/", h.Guard.Root())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Signed-in users never see the login or register screens.
	public := r.Group("/", h.Guard.RedirectIfAuthenticated(session.DashboardPath))
	{
		public.GET("/login", h.Auth.ShowLogin)
		public.POST("/login", h.Auth.Login)
		public.GET("/register", h.Auth.ShowRegister)
		public.POST("/register", uploads.LimitBody(h.MaxProfilePhotoBytes), h.Auth.Register)
	}

	protected := r.Group("/", h.Guard.Require())
	{
		protected.POST("/logout", h.Auth.Logout)

		protected.GET("/dashboard", h.Photos.Gallery)
		protected.GET("/photos", h.Photos.Gallery)

		protected.GET("/view", h.Photos.MyPhotos)
		protected.GET("/view/:id/edit", h.Photos.EditPhoto)
		protected.POST("/view/:id", h.Photos.UpdatePhoto)
		protected.PUT("/view/:id", h.Photos.UpdatePhoto)
		protected.GET("/view/:id/delete", h.Photos.ConfirmDelete)
		protected.POST("/view/:id/delete", h.Photos.DeletePhoto)
		protected.DELETE("/view/:id/delete", h.Photos.DeletePhoto)

		protected.GET("/photoDetails", h.Photos.Detail)
		protected.GET("/photoDetails/:id", h.Photos.Detail)

		protected.GET("/upload", h.Photos.ShowUpload)
		protected.POST("/upload", uploads.LimitBody(h.MaxPhotoBytes), h.Photos.Upload)

		protected.GET("/profile", h.Profile.Show)
		protected.POST("/profile/photo", uploads.LimitBody(h.MaxProfilePhotoBytes), h.Profile.UpdatePhoto)
		protected.PUT("/profile/photo", uploads.LimitBody(h.MaxProfilePhotoBytes), h.Profile.UpdatePhoto)
		protected.GET("/profile/photo/delete", h.Profile.ConfirmDeletePhoto)
		protected.POST("/profile/photo/delete", h.Profile.DeletePhoto)
		protected.DELETE("/profile/photo/delete", h.Profile.DeletePhoto)
	}
}
