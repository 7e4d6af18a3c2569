package uploads

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

func formContext(t *testing.T, field, filename string, content []byte) *gin.Context {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("category", "nature"))
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/upload", body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	return c
}

func TestOpen(t *testing.T) {
	t.Run("accepts an image and sniffs its type", func(t *testing.T) {
		c := formContext(t, "photo", "holiday.bin", pngBytes)

		f, err := Open(c, "photo", 1<<20)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, "image/png", f.Upload.ContentType)
		assert.Equal(t, "holiday.bin", f.Upload.Filename)
		got, err := io.ReadAll(f.Upload.Content)
		require.NoError(t, err)
		assert.Equal(t, pngBytes, got)
	})

	t.Run("rejects non images", func(t *testing.T) {
		c := formContext(t, "photo", "notes.png", []byte("just some text, not an image"))

		_, err := Open(c, "photo", 1<<20)
		assert.ErrorIs(t, err, models.ErrNotAnImage)
		assert.Equal(t, "Please select an image file (JPEG, PNG, etc.)", Message(err, 10<<20))
	})

	t.Run("rejects files over the limit", func(t *testing.T) {
		c := formContext(t, "photo", "big.png", pngBytes)

		_, err := Open(c, "photo", 16)
		assert.ErrorIs(t, err, models.ErrFileTooLarge)
		assert.Equal(t, "File size should be less than 10MB", Message(err, 10<<20))
	})

	t.Run("missing file", func(t *testing.T) {
		c := formContext(t, "", "", nil)

		_, err := Open(c, "photo", 1<<20)
		assert.ErrorIs(t, err, models.ErrFileRequired)
	})

	t.Run("optional field may be empty", func(t *testing.T) {
		c := formContext(t, "", "", nil)

		f, err := OpenOptional(c, "profilePhoto", 1<<20)
		assert.NoError(t, err)
		assert.Nil(t, f)
	})
}

type countingReader struct {
	r    io.Reader
	read int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	return n, err
}

func TestLimitBody(t *testing.T) {
	const maxBytes = 1 << 20

	serve := func(t *testing.T, content []byte) (*countingReader, bool, error) {
		t.Helper()
		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		require.NoError(t, mw.WriteField("category", "nature"))
		part, err := mw.CreateFormFile("photo", "big.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		counter := &countingReader{r: body}
		req := httptest.NewRequest(http.MethodPost, "/upload", counter)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		var openErr error
		var tooLarge bool
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/upload", LimitBody(maxBytes), func(c *gin.Context) {
			f, err := Open(c, "photo", maxBytes)
			openErr = err
			tooLarge = BodyTooLarge(c)
			_ = f.Close()
			c.Status(http.StatusNoContent)
		})
		r.ServeHTTP(httptest.NewRecorder(), req)
		return counter, tooLarge, openErr
	}

	t.Run("stops reading an oversized body", func(t *testing.T) {
		huge := append(append([]byte{}, pngBytes...), make([]byte, 32<<20)...)

		counter, tooLarge, err := serve(t, huge)

		assert.ErrorIs(t, err, models.ErrFileTooLarge)
		assert.True(t, tooLarge)
		assert.LessOrEqual(t, counter.read, int64(maxBytes+FormOverhead+1))
	})

	t.Run("bodies within the cap are untouched", func(t *testing.T) {
		counter, tooLarge, err := serve(t, pngBytes)

		assert.NoError(t, err)
		assert.False(t, tooLarge)
		assert.Positive(t, counter.read)
	})
}
