package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/domain"
	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/app/session"
	"github.com/FACorreiaa/go-photoshare/internal/app/uploads"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

const (
	msgCredentialsRequired = "Email and password are required"
	msgInvalidCredentials  = "Invalid email or password"
	msgRegistered          = "Registration successful!"
	msgRegisterRequired    = "Name, email and password are required"
	msgRegisterFailed      = "Registration failed. Please try again."
	msgLogoutFailed        = "Failed to logout."
	msgSessionFailed       = "Something went wrong, please try again."
)

type AuthHandlers struct {
	*domain.BaseHandler
	authService          AuthService
	maxProfilePhotoBytes int64
}

func NewAuthHandlers(base *domain.BaseHandler, authService AuthService, maxProfilePhotoBytes int64) *AuthHandlers {
	return &AuthHandlers{
		BaseHandler:          base,
		authService:          authService,
		maxProfilePhotoBytes: maxProfilePhotoBytes,
	}
}

// ShowLogin renders the sign in form.
func (h *AuthHandlers) ShowLogin(c *gin.Context) {
	var flashes []models.Flash
	if c.Query("registered") == "1" {
		flashes = append(flashes, domain.SuccessFlash(msgRegistered))
	}
	h.RenderPublic(c, http.StatusOK, "Login - PhotoShare", "Login", flashes, LoginPage(LoginForm{}))
}

// Login submits credentials. Only a successful response writes the session.
func (h *AuthHandlers) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	form := LoginForm{Email: email}

	if email == "" || password == "" {
		h.renderLogin(c, http.StatusBadRequest, form, h.ErrorFlash(c, msgCredentialsRequired, nil))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		h.renderLogin(c, http.StatusUnauthorized, form, h.ErrorFlash(c, msgInvalidCredentials, nil))
		return
	}

	if err := h.Guard.SignIn(c, token); err != nil {
		h.Logger.Error("Failed to persist session", zap.Error(err))
		h.renderLogin(c, http.StatusInternalServerError, form, h.ErrorFlash(c, msgSessionFailed, err))
		return
	}
	session.Redirect(c, session.DashboardPath)
}

// ShowRegister renders the registration form.
func (h *AuthHandlers) ShowRegister(c *gin.Context) {
	h.RenderPublic(c, http.StatusOK, "Register - PhotoShare", "Register", nil, RegisterPage(RegisterForm{}))
}

// Register forwards the form to the API and sends the visitor to login.
func (h *AuthHandlers) Register(c *gin.Context) {
	form := RegisterForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Course:      strings.TrimSpace(c.PostForm("course")),
		CollegeYear: strings.TrimSpace(c.PostForm("collegeYear")),
		Email:       strings.TrimSpace(c.PostForm("email")),
	}
	password := c.PostForm("password")

	if uploads.BodyTooLarge(c) {
		h.renderRegister(c, http.StatusBadRequest, form,
			h.ErrorFlash(c, uploads.Message(models.ErrFileTooLarge, h.maxProfilePhotoBytes), nil))
		return
	}
	if form.Name == "" || form.Email == "" || password == "" {
		h.renderRegister(c, http.StatusBadRequest, form, h.ErrorFlash(c, msgRegisterRequired, nil))
		return
	}

	photo, err := uploads.OpenOptional(c, "profilePhoto", h.maxProfilePhotoBytes)
	if err != nil {
		h.renderRegister(c, http.StatusBadRequest, form, h.ErrorFlash(c, uploads.Message(err, h.maxProfilePhotoBytes), nil))
		return
	}
	defer photo.Close()

	req := photoapi.RegisterRequest{
		Name:        form.Name,
		Course:      form.Course,
		CollegeYear: form.CollegeYear,
		Email:       form.Email,
		Password:    password,
	}
	if photo != nil {
		req.ProfilePhoto = &photo.Upload
	}

	if err := h.authService.Register(c.Request.Context(), req); err != nil {
		h.renderRegister(c, http.StatusBadGateway, form, h.ErrorFlash(c, msgRegisterFailed, err))
		return
	}
	session.Redirect(c, session.LoginPath+"?registered=1")
}

// Logout revokes the token. A rejected token counts as logged out.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := session.TokenFromContext(c)
	err := h.authService.Logout(c.Request.Context(), token)
	if err != nil && !photoapi.IsAuthFailure(err) && !errors.Is(err, models.ErrUnauthenticated) {
		chrome := h.Chrome(c)
		h.RenderPage(c, domain.FormStatus(c, http.StatusBadGateway), "Logout - PhotoShare", "", chrome,
			[]models.Flash{h.ErrorFlash(c, msgLogoutFailed, err)}, LogoutFailed())
		return
	}
	h.Guard.SignOut(c)
	session.Redirect(c, session.LoginPath)
}

func (h *AuthHandlers) renderLogin(c *gin.Context, status int, form LoginForm, flash models.Flash) {
	h.RenderPublic(c, domain.FormStatus(c, status), "Login - PhotoShare", "Login", []models.Flash{flash}, LoginPage(form))
}

func (h *AuthHandlers) renderRegister(c *gin.Context, status int, form RegisterForm, flash models.Flash) {
	h.RenderPublic(c, domain.FormStatus(c, status), "Register - PhotoShare", "Register", []models.Flash{flash}, RegisterPage(form))
}
