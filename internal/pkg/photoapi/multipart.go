package photoapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// multipartForm buffers a multipart body. The first error sticks and is
// reported by close.
type multipartForm struct {
	buf    *bytes.Buffer
	writer *multipart.Writer
	err    error
}

func newMultipartForm() *multipartForm {
	buf := &bytes.Buffer{}
	return &multipartForm{buf: buf, writer: multipart.NewWriter(buf)}
}

func (f *multipartForm) field(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.writer.WriteField(name, value)
}

// file writes a file part with an explicit Content-Type; CreateFormFile would
// label every part application/octet-stream and the API filters on image types.
func (f *multipartForm) file(name string, upload FileUpload) {
	if f.err != nil {
		return
	}
	if upload.Content == nil {
		f.err = fmt.Errorf("file %q has no content", name)
		return
	}
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(name), escapeQuotes(upload.Filename)))
	header.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(header)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = io.Copy(part, upload.Content)
}

func (f *multipartForm) close() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.writer.Close(); err != nil {
		return nil, "", err
	}
	return f.buf, f.writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
