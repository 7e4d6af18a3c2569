package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/cache"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

// PhotoAPI is the subset of the remote API the data layer reads and mutates.
type PhotoAPI interface {
	Me(ctx context.Context, token string) (*models.User, error)
	UpdateProfilePhoto(ctx context.Context, token string, file photoapi.FileUpload) (string, error)
	DeleteProfilePhoto(ctx context.Context, token string) error
	UploadPhoto(ctx context.Context, token string, req photoapi.UploadPhotoRequest) (*models.Photo, error)
	AllPhotos(ctx context.Context, token string) ([]models.Photo, error)
	MyPhotos(ctx context.Context, token string) ([]models.Photo, error)
	Photo(ctx context.Context, token, id string) (*models.Photo, error)
	UpdatePhotoDescription(ctx context.Context, token, id, description string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, token, id string) error
}

// Ensure implementation satisfies the interface
var _ PhotoService = (*DataService)(nil)

// PhotoService is the shared data-fetching layer every screen reads through.
// Returned slices and records are shared with other requests and must not be
// modified.
type PhotoService interface {
	AllPhotos(ctx context.Context, token string) ([]models.Photo, error)
	MyPhotos(ctx context.Context, token string) ([]models.Photo, error)
	Photo(ctx context.Context, token, id string) (*models.Photo, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)

	UploadPhoto(ctx context.Context, token string, req photoapi.UploadPhotoRequest) error
	UpdateDescription(ctx context.Context, token, id, description string) error
	DeletePhoto(ctx context.Context, token, id string) error
	UpdateProfilePhoto(ctx context.Context, token string, file photoapi.FileUpload) (string, error)
	DeleteProfilePhoto(ctx context.Context, token string) error

	// Forget drops everything cached for the session owning token.
	Forget(token string)
}

// DataService caches API reads per session and invalidates them after the
// mutations that change them.
type DataService struct {
	api    PhotoAPI
	cache  *cache.QueryCache
	logger *zap.Logger
}

// NewDataService creates the shared data layer.
func NewDataService(api PhotoAPI, c *cache.QueryCache, logger *zap.Logger) *DataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataService{api: api, cache: c, logger: logger}
}

func allPhotosKey(token string) string { return cache.NewKeyBuilder(token).Add("photos").Add("all").Build() }
func myPhotosKey(token string) string { return cache.NewKeyBuilder(token).Add("photos").Add("mine").Build() }
func meKey(token string) string { return cache.NewKeyBuilder(token).Add("me").Build() }

func photoKey(token, id string) string {
	return cache.NewKeyBuilder(token).Add("photos").Add("detail").Add(id).Build()
}

func photoDetailPrefix(token string) string {
	return cache.NewKeyBuilder(token).Add("photos").Add("detail").Build() + ":"
}

func (s *DataService) AllPhotos(ctx context.Context, token string) ([]models.Photo, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.AllPhotos")
	defer span.End()

	photos, err := cache.Fetch(ctx, s.cache, allPhotosKey(token), func(ctx context.Context) ([]models.Photo, error) {
		return s.api.AllPhotos(ctx, token)
	})
	if err != nil {
		s.fail(span, "AllPhotos", err)
		return nil, fmt.Errorf("load all photos: %w", err)
	}
	span.SetAttributes(attribute.Int("photos.count", len(photos)))
	return photos, nil
}

func (s *DataService) MyPhotos(ctx context.Context, token string) ([]models.Photo, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.MyPhotos")
	defer span.End()

	photos, err := cache.Fetch(ctx, s.cache, myPhotosKey(token), func(ctx context.Context) ([]models.Photo, error) {
		return s.api.MyPhotos(ctx, token)
	})
	if err != nil {
		s.fail(span, "MyPhotos", err)
		return nil, fmt.Errorf("load own photos: %w", err)
	}
	span.SetAttributes(attribute.Int("photos.count", len(photos)))
	return photos, nil
}

func (s *DataService) Photo(ctx context.Context, token, id string) (*models.Photo, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.Photo", trace.WithAttributes(
		attribute.String("photo.id", id),
	))
	defer span.End()

	if id == "" {
		return nil, models.ErrMissingPhotoID
	}
	photo, err := cache.Fetch(ctx, s.cache, photoKey(token, id), func(ctx context.Context) (*models.Photo, error) {
		return s.api.Photo(ctx, token, id)
	})
	if err != nil {
		s.fail(span, "Photo", err)
		return nil, fmt.Errorf("load photo %s: %w", id, err)
	}
	return photo, nil
}

func (s *DataService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.CurrentUser")
	defer span.End()

	user, err := cache.Fetch(ctx, s.cache, meKey(token), func(ctx context.Context) (*models.User, error) {
		return s.api.Me(ctx, token)
	})
	if err != nil {
		s.fail(span, "CurrentUser", err)
		return nil, fmt.Errorf("load current user: %w", err)
	}
	return user, nil
}

func (s *DataService) UploadPhoto(ctx context.Context, token string, req photoapi.UploadPhotoRequest) error {
	l := s.logger.With(zap.String("method", "UploadPhoto"), zap.String("category", req.Category))
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.UploadPhoto", trace.WithAttributes(
		attribute.String("photo.category", req.Category),
		attribute.String("photo.filename", req.Photo.Filename),
	))
	defer span.End()

	if _, err := s.api.UploadPhoto(ctx, token, req); err != nil {
		l.Warn("Upload failed", zap.Error(err))
		s.fail(span, "UploadPhoto", err)
		return fmt.Errorf("upload photo: %w", err)
	}
	s.cache.Invalidate(allPhotosKey(token), myPhotosKey(token))
	l.Info("Photo uploaded")
	span.SetStatus(codes.Ok, "Photo uploaded")
	return nil
}

func (s *DataService) UpdateDescription(ctx context.Context, token, id, description string) error {
	l := s.logger.With(zap.String("method", "UpdateDescription"), zap.String("photoID", id))
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.UpdateDescription", trace.WithAttributes(
		attribute.String("photo.id", id),
	))
	defer span.End()

	if _, err := s.api.UpdatePhotoDescription(ctx, token, id, description); err != nil {
		l.Warn("Description update failed", zap.Error(err))
		s.fail(span, "UpdateDescription", err)
		return fmt.Errorf("update description: %w", err)
	}
	s.cache.Invalidate(allPhotosKey(token), myPhotosKey(token), photoKey(token, id))
	l.Info("Description updated")
	span.SetStatus(codes.Ok, "Description updated")
	return nil
}

func (s *DataService) DeletePhoto(ctx context.Context, token, id string) error {
	l := s.logger.With(zap.String("method", "DeletePhoto"), zap.String("photoID", id))
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.DeletePhoto", trace.WithAttributes(
		attribute.String("photo.id", id),
	))
	defer span.End()

	if err := s.api.DeletePhoto(ctx, token, id); err != nil {
		l.Warn("Delete failed", zap.Error(err))
		s.fail(span, "DeletePhoto", err)
		return fmt.Errorf("delete photo: %w", err)
	}
	s.cache.Invalidate(allPhotosKey(token), myPhotosKey(token), photoKey(token, id))
	l.Info("Photo deleted")
	span.SetStatus(codes.Ok, "Photo deleted")
	return nil
}

func (s *DataService) UpdateProfilePhoto(ctx context.Context, token string, file photoapi.FileUpload) (string, error) {
	l := s.logger.With(zap.String("method", "UpdateProfilePhoto"))
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.UpdateProfilePhoto")
	defer span.End()

	ref, err := s.api.UpdateProfilePhoto(ctx, token, file)
	if err != nil {
		l.Warn("Profile photo update failed", zap.Error(err))
		s.fail(span, "UpdateProfilePhoto", err)
		return "", fmt.Errorf("update profile photo: %w", err)
	}
	s.setProfilePhoto(token, ref)
	l.Info("Profile photo updated")
	span.SetStatus(codes.Ok, "Profile photo updated")
	return ref, nil
}

func (s *DataService) DeleteProfilePhoto(ctx context.Context, token string) error {
	l := s.logger.With(zap.String("method", "DeleteProfilePhoto"))
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "PhotoService.DeleteProfilePhoto")
	defer span.End()

	if err := s.api.DeleteProfilePhoto(ctx, token); err != nil {
		l.Warn("Profile photo removal failed", zap.Error(err))
		s.fail(span, "DeleteProfilePhoto", err)
		return fmt.Errorf("delete profile photo: %w", err)
	}
	s.setProfilePhoto(token, "")
	l.Info("Profile photo removed")
	span.SetStatus(codes.Ok, "Profile photo removed")
	return nil
}

func (s *DataService) Forget(token string) {
	s.cache.InvalidatePrefix(cache.Partition(token))
}

// setProfilePhoto patches the cached user instead of re-fetching it. Photo
// records embed the uploader's photo, so lists and details are dropped.
func (s *DataService) setProfilePhoto(token, ref string) {
	cache.Patch(s.cache, meKey(token), func(u *models.User) *models.User {
		if u == nil {
			return nil
		}
		updated := *u
		updated.ProfilePhoto = ref
		return &updated
	})
	s.cache.Invalidate(allPhotosKey(token))
	s.cache.InvalidatePrefix(photoDetailPrefix(token))
}

func (s *DataService) fail(span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
}
