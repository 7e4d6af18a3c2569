package photos

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-photoshare/internal/app/components"
	"github.com/FACorreiaa/go-photoshare/internal/app/domain"
	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/app/session"
	"github.com/FACorreiaa/go-photoshare/internal/app/uploads"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

const (
	msgLoadPhotos   = "Failed to load photos."
	msgLoadMine     = "Failed to load your photos."
	msgUpdateFailed = "Failed to update the description."
	msgUpdated      = "Description updated."
	msgDeleteFailed = "Failed to delete the photo."
	msgDeleted      = "Photo deleted."
	msgNoPhotoID    = "No photo ID provided in URL"
	msgLoadDetail   = "Failed to load photo details."
	msgUploadFields = "Please enter a category and a description."
	msgUploadFailed = "Failed to upload photo. Please try again."
	msgUploaded     = "Photo uploaded successfully!"
)

const (
	galleryTitle  = "Gallery - PhotoShare"
	myPhotosTitle = "My Photos - PhotoShare"
	uploadTitle   = "Upload - PhotoShare"
	detailTitle   = "Photo - PhotoShare"

	navGallery = "Gallery"
	navMine    = "My Photos"
	navUpload  = "Upload"

	defaultGalleryPage = 1
	confirmValue       = "yes"
)

type PhotoHandlers struct {
	*domain.BaseHandler
	pageSize      int
	maxPhotoBytes int64
}

func NewPhotoHandlers(base *domain.BaseHandler, pageSize int, maxPhotoBytes int64) *PhotoHandlers {
	return &PhotoHandlers{BaseHandler: base, pageSize: pageSize, maxPhotoBytes: maxPhotoBytes}
}

// Gallery serves the all-photos screen. Requests from the filter form get
// only the results fragment and skip the navigation fetch.
func (h *PhotoHandlers) Gallery(c *gin.Context) {
	token := session.TokenFromContext(c)
	filter := Filter{Query: c.Query("q"), Category: c.Query("category")}
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = defaultGalleryPage
	}

	if domain.IsFragmentRequest(c) && c.GetHeader("HX-Target") == galleryResultsID {
		all, err := h.Data.AllPhotos(c.Request.Context(), token)
		if h.HandleAuth(c, err) {
			return
		}
		var flashes []models.Flash
		if err != nil {
			flashes = append(flashes, h.ErrorFlash(c, msgLoadPhotos, err))
		}
		view := galleryView(h.Assets, all, filter, page, h.pageSize, err == nil)
		h.Render(c, http.StatusOK, galleryTitle, components.Func(func(out *components.HTML) {
			out.Component(components.Banners(flashes))
			out.Component(GalleryResults(view))
		}))
		return
	}

	var all []models.Photo
	chrome, err := h.LoadWithChrome(c, func(ctx context.Context) error {
		var err error
		all, err = h.Data.AllPhotos(ctx, token)
		return err
	})
	if h.HandleAuth(c, err, chrome.Err) {
		return
	}

	status := http.StatusOK
	var flashes []models.Flash
	if err != nil {
		status = domain.FormStatus(c, http.StatusBadGateway)
		flashes = append(flashes, h.ErrorFlash(c, msgLoadPhotos, err))
	}
	view := galleryView(h.Assets, all, filter, page, h.pageSize, err == nil)
	h.RenderPage(c, status, galleryTitle, navGallery, chrome, flashes, GalleryPage(view))
}

type mineState struct {
	editing       string
	draft         string
	draftFromList bool
	deleting      string
}

// MyPhotos lists the current user's photos.
func (h *PhotoHandlers) MyPhotos(c *gin.Context) {
	h.renderMine(c, http.StatusOK, mineState{})
}

// EditPhoto opens the inline editor with the stored description as draft.
func (h *PhotoHandlers) EditPhoto(c *gin.Context) {
	h.renderMine(c, http.StatusOK, mineState{editing: c.Param("id"), draftFromList: true})
}

// UpdatePhoto saves a new description and re-renders the list.
func (h *PhotoHandlers) UpdatePhoto(c *gin.Context) {
	id := c.Param("id")
	description := strings.TrimSpace(formValue(c, "description"))

	err := h.Data.UpdateDescription(c.Request.Context(), session.TokenFromContext(c), id, description)
	if h.HandleAuth(c, err) {
		return
	}
	if err != nil {
		h.renderMine(c, domain.FormStatus(c, http.StatusBadGateway),
			mineState{editing: id, draft: description},
			h.ErrorFlash(c, msgUpdateFailed, err))
		return
	}
	h.renderMine(c, http.StatusOK, mineState{}, domain.SuccessFlash(msgUpdated))
}

// ConfirmDelete asks before deleting. No request is made.
func (h *PhotoHandlers) ConfirmDelete(c *gin.Context) {
	h.renderMine(c, http.StatusOK, mineState{deleting: c.Param("id")})
}

// DeletePhoto deletes once the prompt has been answered.
func (h *PhotoHandlers) DeletePhoto(c *gin.Context) {
	id := c.Param("id")
	if formValue(c, "confirm") != confirmValue {
		h.renderMine(c, http.StatusOK, mineState{deleting: id})
		return
	}

	err := h.Data.DeletePhoto(c.Request.Context(), session.TokenFromContext(c), id)
	if h.HandleAuth(c, err) {
		return
	}
	if err != nil {
		h.renderMine(c, domain.FormStatus(c, http.StatusBadGateway), mineState{}, h.ErrorFlash(c, msgDeleteFailed, err))
		return
	}
	h.renderMine(c, http.StatusOK, mineState{}, domain.SuccessFlash(msgDeleted))
}

func (h *PhotoHandlers) renderMine(c *gin.Context, status int, state mineState, flashes ...models.Flash) {
	token := session.TokenFromContext(c)
	var mine []models.Photo
	chrome, err := h.LoadWithChrome(c, func(ctx context.Context) error {
		var err error
		mine, err = h.Data.MyPhotos(ctx, token)
		return err
	})
	if h.HandleAuth(c, err, chrome.Err) {
		return
	}
	if err != nil {
		status = domain.FormStatus(c, http.StatusBadGateway)
		flashes = append(flashes, h.ErrorFlash(c, msgLoadMine, err))
	}

	view := MyPhotosView{
		Photos:   myPhotos(h.Assets, mine),
		Editing:  state.editing,
		Draft:    state.draft,
		Deleting: state.deleting,
		Loaded:   err == nil,
	}
	if state.draftFromList {
		for _, p := range view.Photos {
			if p.Card.ID == state.editing {
				view.Draft = p.Description
			}
		}
	}
	h.RenderPage(c, status, myPhotosTitle, navMine, chrome, flashes, MyPhotosPage(view))
}

// Detail shows one photo, addressed by path or by the id query parameter.
func (h *PhotoHandlers) Detail(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		id = strings.TrimSpace(c.Query("id"))
	}
	token := session.TokenFromContext(c)

	if id == "" {
		chrome := h.Chrome(c)
		if h.HandleAuth(c, chrome.Err) {
			return
		}
		h.RenderPage(c, domain.FormStatus(c, http.StatusBadRequest), detailTitle, "", chrome,
			[]models.Flash{h.ErrorFlash(c, msgNoPhotoID, nil)}, DetailPage(nil))
		return
	}

	var photo *models.Photo
	chrome, err := h.LoadWithChrome(c, func(ctx context.Context) error {
		var err error
		photo, err = h.Data.Photo(ctx, token, id)
		return err
	})
	if h.HandleAuth(c, err, chrome.Err) {
		return
	}
	if err != nil || photo == nil {
		status := http.StatusBadGateway
		if photoapi.StatusOf(err) == http.StatusNotFound {
			status = http.StatusNotFound
		}
		h.RenderPage(c, domain.FormStatus(c, status), detailTitle, "", chrome,
			[]models.Flash{h.ErrorFlash(c, msgLoadDetail, err)}, DetailPage(nil))
		return
	}
	h.RenderPage(c, http.StatusOK, detailTitle, "", chrome, nil, DetailPage(detailView(h.Assets, photo)))
}

// ShowUpload renders an empty upload form.
func (h *PhotoHandlers) ShowUpload(c *gin.Context) {
	chrome := h.Chrome(c)
	if h.HandleAuth(c, chrome.Err) {
		return
	}
	h.RenderPage(c, http.StatusOK, uploadTitle, navUpload, chrome, nil, UploadPage(h.uploadForm("", "")))
}

// Upload validates the file locally, then sends it while the navigation
// data loads alongside.
func (h *PhotoHandlers) Upload(c *gin.Context) {
	token := session.TokenFromContext(c)
	form := h.uploadForm(strings.TrimSpace(c.PostForm("category")), strings.TrimSpace(c.PostForm("description")))

	file, err := uploads.Open(c, "photo", h.maxPhotoBytes)
	if err != nil {
		h.rejectUpload(c, form, uploads.Message(err, h.maxPhotoBytes))
		return
	}
	defer file.Close()
	if form.Category == "" || form.Description == "" {
		h.rejectUpload(c, form, msgUploadFields)
		return
	}

	chrome, err := h.LoadWithChrome(c, func(ctx context.Context) error {
		return h.Data.UploadPhoto(ctx, token, photoapi.UploadPhotoRequest{
			Photo:       file.Upload,
			Category:    form.Category,
			Description: form.Description,
		})
	})
	if h.HandleAuth(c, err, chrome.Err) {
		return
	}
	if err != nil {
		h.RenderPage(c, domain.FormStatus(c, http.StatusBadGateway), uploadTitle, navUpload, chrome,
			[]models.Flash{h.ErrorFlash(c, msgUploadFailed, err)}, UploadPage(form))
		return
	}
	h.RenderPage(c, http.StatusOK, uploadTitle, navUpload, chrome,
		[]models.Flash{domain.SuccessFlash(msgUploaded)}, UploadPage(h.uploadForm("", "")))
}

func (h *PhotoHandlers) rejectUpload(c *gin.Context, form UploadForm, message string) {
	chrome := h.Chrome(c)
	if h.HandleAuth(c, chrome.Err) {
		return
	}
	h.RenderPage(c, domain.FormStatus(c, http.StatusBadRequest), uploadTitle, navUpload, chrome,
		[]models.Flash{h.ErrorFlash(c, message, nil)}, UploadPage(form))
}

func (h *PhotoHandlers) uploadForm(category, description string) UploadForm {
	return UploadForm{Category: category, Description: description, MaxMB: h.maxPhotoBytes >> 20}
}

// formValue reads a body field, falling back to the query string where
// htmx puts the parameters of DELETE requests.
func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}
