// Package uploads checks files submitted by the browser before they are
// forwarded to the photo API.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

// FormOverhead is the room left next to the file for the other fields and
// the multipart framing.
const FormOverhead int64 = 1 << 20

// limitedBody remembers whether the request body hit its cap.
type limitedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		b.exceeded = true
	}
	return n, err
}

// LimitBody caps the request body at maxBytes plus FormOverhead. An oversized
// upload is cut off while it is read instead of after it has been parsed.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = &limitedBody{
				ReadCloser: http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+FormOverhead),
			}
		}
		c.Next()
	}
}

// BodyTooLarge reports whether the request body was cut off by LimitBody.
func BodyTooLarge(c *gin.Context) bool {
	b, ok := c.Request.Body.(*limitedBody)
	return ok && b.exceeded
}

// File is a validated upload. Close must be called once it has been sent.
type File struct {
	Upload photoapi.FileUpload
	Size   int64
	closer io.Closer
}

func (f *File) Close() error {
	if f == nil || f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Open reads the form file named field and checks it is an image of at most
// maxBytes. The content type is sniffed from the bytes, not taken from the
// browser.
func Open(c *gin.Context, field string, maxBytes int64) (*File, error) {
	fh, err := c.FormFile(field)
	if BodyTooLarge(c) {
		reject(c.Request.Context(), field, "too_large")
		return nil, models.ErrFileTooLarge
	}
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			reject(c.Request.Context(), field, "missing")
			return nil, models.ErrFileRequired
		}
		reject(c.Request.Context(), field, "unreadable")
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}
	return Validate(c.Request.Context(), field, fh, maxBytes)
}

// OpenOptional is Open for fields the user may leave empty.
func OpenOptional(c *gin.Context, field string, maxBytes int64) (*File, error) {
	f, err := Open(c, field, maxBytes)
	if errors.Is(err, models.ErrFileRequired) {
		return nil, nil
	}
	return f, err
}

// Validate checks an already parsed file header.
func Validate(ctx context.Context, field string, fh *multipart.FileHeader, maxBytes int64) (*File, error) {
	if fh == nil || fh.Size == 0 {
		reject(ctx, field, "missing")
		return nil, models.ErrFileRequired
	}
	if fh.Size > maxBytes {
		reject(ctx, field, "too_large")
		return nil, models.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		_ = f.Close()
		reject(ctx, field, "not_image")
		return nil, models.ErrNotAnImage
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	return &File{
		Upload: photoapi.FileUpload{
			Filename:    fh.Filename,
			ContentType: mtype.String(),
			Content:     f,
		},
		Size:   fh.Size,
		closer: f,
	}, nil
}

// Message returns the text shown to the user for a validation error.
func Message(err error, maxBytes int64) string {
	switch {
	case errors.Is(err, models.ErrFileRequired):
		return "Please select a photo to upload."
	case errors.Is(err, models.ErrNotAnImage):
		return "Please select an image file (JPEG, PNG, etc.)"
	case errors.Is(err, models.ErrFileTooLarge):
		return fmt.Sprintf("File size should be less than %dMB", maxBytes>>20)
	default:
		return "The selected file could not be read."
	}
}

func reject(ctx context.Context, field, reason string) {
	metrics.Get().UploadRejectionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("field", field),
		attribute.String("reason", reason),
	))
}
