package photoapi

import (
	"io"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

// FileUpload is a file part forwarded to the API inside a multipart body.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Name         string
	Course       string
	CollegeYear  string
	Email        string
	Password     string
	ProfilePhoto *FileUpload
}

type UploadPhotoRequest struct {
	Photo       FileUpload
	Category    string
	Description string
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

type photoListResponse struct {
	Photos []models.Photo `json:"photos"`
}

type photoResponse struct {
	Photo *models.Photo `json:"photo"`
}

type profilePhotoResponse struct {
	ProfilePhoto string `json:"profilePhoto"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
