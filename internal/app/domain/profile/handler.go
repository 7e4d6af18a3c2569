package profile

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/domain"
	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/app/session"
	"github.com/FACorreiaa/go-photoshare/internal/app/uploads"
)

const (
	msgPhotoUploaded = "Profile photo uploaded successfully."
	msgUploadFailed  = "Failed to upload photo."
	msgPhotoRemoved  = "Profile photo removed successfully."
	msgRemoveFailed  = "Failed to remove photo."

	profileTitle = "Profile - PhotoShare"
	navProfile   = "Profile"
)

type ProfileHandlers struct {
	*domain.BaseHandler
	maxProfilePhotoBytes int64
}

func NewProfileHandlers(base *domain.BaseHandler, maxProfilePhotoBytes int64) *ProfileHandlers {
	return &ProfileHandlers{BaseHandler: base, maxProfilePhotoBytes: maxProfilePhotoBytes}
}

// Show renders the current user's details.
func (h *ProfileHandlers) Show(c *gin.Context) {
	h.render(c, http.StatusOK, false)
}

// UpdatePhoto replaces the profile photo after checking the file locally.
func (h *ProfileHandlers) UpdatePhoto(c *gin.Context) {
	file, err := uploads.Open(c, "profilePhoto", h.maxProfilePhotoBytes)
	if err != nil {
		h.render(c, domain.FormStatus(c, http.StatusBadRequest), false,
			h.ErrorFlash(c, uploads.Message(err, h.maxProfilePhotoBytes), nil))
		return
	}
	defer file.Close()

	_, err = h.Data.UpdateProfilePhoto(c.Request.Context(), session.TokenFromContext(c), file.Upload)
	if h.HandleAuth(c, err) {
		return
	}
	if err != nil {
		h.render(c, domain.FormStatus(c, http.StatusBadGateway), false, h.ErrorFlash(c, msgUploadFailed, err))
		return
	}
	h.render(c, http.StatusOK, false, domain.SuccessFlash(msgPhotoUploaded))
}

// ConfirmDeletePhoto asks before removing the photo. No request is made.
func (h *ProfileHandlers) ConfirmDeletePhoto(c *gin.Context) {
	h.render(c, http.StatusOK, true)
}

// DeletePhoto removes the profile photo once confirmed.
func (h *ProfileHandlers) DeletePhoto(c *gin.Context) {
	confirm, ok := c.GetPostForm("confirm")
	if !ok {
		confirm = c.Query("confirm")
	}
	if confirm != "yes" {
		h.render(c, http.StatusOK, true)
		return
	}

	err := h.Data.DeleteProfilePhoto(c.Request.Context(), session.TokenFromContext(c))
	if h.HandleAuth(c, err) {
		return
	}
	if err != nil {
		h.render(c, domain.FormStatus(c, http.StatusBadGateway), false, h.ErrorFlash(c, msgRemoveFailed, err))
		return
	}
	h.render(c, http.StatusOK, false, domain.SuccessFlash(msgPhotoRemoved))
}

// render fetches the user once; the same record feeds the navigation.
func (h *ProfileHandlers) render(c *gin.Context, status int, confirmDelete bool, flashes ...models.Flash) {
	user, err := h.Data.CurrentUser(c.Request.Context(), session.TokenFromContext(c))
	if h.HandleAuth(c, err) {
		return
	}
	chrome := domain.Chrome{User: h.NavUser(user), Err: err}
	view := ProfileView{MaxMB: h.maxProfilePhotoBytes >> 20}
	if err != nil {
		h.Logger.Warn("Failed to load profile", zap.Error(err))
		status = domain.FormStatus(c, http.StatusBadGateway)
	} else {
		view.Loaded = true
		view.Name = user.Name
		view.Email = user.Email
		view.Course = user.Course
		view.CollegeYear = user.CollegeYear.String()
		view.HasPhoto = strings.TrimSpace(user.ProfilePhoto) != ""
		view.PhotoURL = h.Assets.ProfilePhotoURL(user.ProfilePhoto)
		view.ConfirmDelete = confirmDelete && view.HasPhoto
	}
	h.RenderPage(c, status, profileTitle, navProfile, chrome, flashes, ProfilePage(view))
}
