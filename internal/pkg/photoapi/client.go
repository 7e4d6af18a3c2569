package photoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/app/observability/metrics"
)

const defaultProfilePhotoPath = "default-profile-photo.jpg"

// Client wraps every call the frontend makes to the remote photo API.
// Authenticated calls take the session token explicitly; the client never
// stores it.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// Options allows overriding the client's dependencies.
type Options struct {
	HTTPClient *http.Client
	// Timeout bounds a single request when HTTPClient is nil. Zero disables it.
	Timeout time.Duration
	Logger  *zap.Logger
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("baseURL %q is not absolute", baseURL)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: parsed, httpClient: client, logger: logger}, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// Register submits the registration form as multipart.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	const op = "Register"
	form := newMultipartForm()
	form.field("name", req.Name)
	form.field("course", req.Course)
	form.field("collegeYear", req.CollegeYear)
	form.field("email", req.Email)
	form.field("password", req.Password)
	if req.ProfilePhoto != nil {
		form.file("profilePhoto", *req.ProfilePhoto)
	}
	body, contentType, err := form.close()
	if err != nil {
		return wrapError(op, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, "api/auth/register", "", body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(op, resp)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	const op = "Login"
	resp, err := c.doJSON(ctx, op, http.MethodPost, "api/auth/login", "", LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return "", err
	}
	var body LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", wrapError(op, err)
	}
	if strings.TrimSpace(body.Token) == "" {
		return "", &Error{Op: op, Status: resp.StatusCode, Err: errors.New("empty token")}
	}
	return body.Token, nil
}

// Logout ends the server-side session for token.
func (c *Client) Logout(ctx context.Context, token string) error {
	const op = "Logout"
	resp, err := c.doJSON(ctx, op, http.MethodPost, "api/auth/logout", token, struct{}{})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(op, resp)
}

// Me returns the account that owns token.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	const op = "Me"
	resp, err := c.do(ctx, op, http.MethodGet, "api/users/me", token, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(op, err)
	}
	// Some deployments wrap the record as {"user": {...}}.
	var wrapped struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, wrapError(op, err)
	}
	return &user, nil
}

// UpdateProfilePhoto replaces the caller's profile photo and returns the new reference.
func (c *Client) UpdateProfilePhoto(ctx context.Context, token string, file FileUpload) (string, error) {
	const op = "UpdateProfilePhoto"
	form := newMultipartForm()
	form.file("profilePhoto", file)
	body, contentType, err := form.close()
	if err != nil {
		return "", wrapError(op, err)
	}
	resp, err := c.do(ctx, op, http.MethodPut, "api/users/profile-photo", token, body, contentType)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return "", err
	}
	var payload profilePhotoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", wrapError(op, err)
	}
	return payload.ProfilePhoto, nil
}

// DeleteProfilePhoto removes the caller's profile photo.
func (c *Client) DeleteProfilePhoto(ctx context.Context, token string) error {
	const op = "DeleteProfilePhoto"
	resp, err := c.do(ctx, op, http.MethodDelete, "api/users/profile-photo", token, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(op, resp)
}

// UploadPhoto creates a photo record from the file and its metadata.
func (c *Client) UploadPhoto(ctx context.Context, token string, req UploadPhotoRequest) (*models.Photo, error) {
	const op = "UploadPhoto"
	form := newMultipartForm()
	form.file("photo", req.Photo)
	form.field("category", req.Category)
	form.field("description", req.Description)
	body, contentType, err := form.close()
	if err != nil {
		return nil, wrapError(op, err)
	}
	resp, err := c.do(ctx, op, http.MethodPost, "api/photos/upload", token, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}
	return decodeOptionalPhoto(resp.Body), nil
}

// AllPhotos returns the community feed.
func (c *Client) AllPhotos(ctx context.Context, token string) ([]models.Photo, error) {
	return c.listPhotos(ctx, "AllPhotos", "api/photos/all", token)
}

// MyPhotos returns the photos uploaded by the owner of token.
func (c *Client) MyPhotos(ctx context.Context, token string) ([]models.Photo, error) {
	return c.listPhotos(ctx, "MyPhotos", "api/photos/yourPhotos", token)
}

// Photo returns a single photo with its uploader populated.
func (c *Client) Photo(ctx context.Context, token, id string) (*models.Photo, error) {
	const op = "Photo"
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, wrapError(op, models.ErrMissingPhotoID)
	}
	resp, err := c.do(ctx, op, http.MethodGet, "api/photos/"+url.PathEscape(id), token, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}
	var payload photoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, wrapError(op, err)
	}
	if payload.Photo == nil {
		return nil, &Error{Op: op, Status: resp.StatusCode, Err: models.ErrNotFound}
	}
	return payload.Photo, nil
}

// UpdatePhotoDescription replaces the description of one of the caller's photos.
func (c *Client) UpdatePhotoDescription(ctx context.Context, token, id, description string) (*models.Photo, error) {
	const op = "UpdatePhotoDescription"
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, wrapError(op, models.ErrMissingPhotoID)
	}
	resp, err := c.doJSON(ctx, op, http.MethodPut, "api/photos/update/"+url.PathEscape(id), token, updateDescriptionRequest{Description: description})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}
	return decodeOptionalPhoto(resp.Body), nil
}

// DeletePhoto removes one of the caller's photos.
func (c *Client) DeletePhoto(ctx context.Context, token, id string) error {
	const op = "DeletePhoto"
	id = strings.TrimSpace(id)
	if id == "" {
		return wrapError(op, models.ErrMissingPhotoID)
	}
	resp, err := c.do(ctx, op, http.MethodDelete, "api/photos/delete/"+url.PathEscape(id), token, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(op, resp)
}

func (c *Client) listPhotos(ctx context.Context, op, path, token string) ([]models.Photo, error) {
	resp, err := c.do(ctx, op, http.MethodGet, path, token, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}
	var payload photoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, wrapError(op, err)
	}
	if payload.Photos == nil {
		return []models.Photo{}, nil
	}
	return payload.Photos, nil
}

// authRequired lists operations that must carry a session token.
var authRequired = map[string]bool{
	"Logout": true, "Me": true, "UpdateProfilePhoto": true, "DeleteProfilePhoto": true,
	"UploadPhoto": true, "AllPhotos": true, "MyPhotos": true, "Photo": true,
	"UpdatePhotoDescription": true, "DeletePhoto": true,
}

func (c *Client) do(ctx context.Context, op, method, path, token string, body io.Reader, contentType string) (*http.Response, error) {
	if authRequired[op] && token == "" {
		return nil, &Error{Op: op, Err: models.ErrUnauthenticated}
	}
	rel, err := url.Parse(path)
	if err != nil {
		return nil, wrapError(op, err)
	}
	full := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, full.String(), body)
	if err != nil {
		return nil, wrapError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.record(ctx, op, method, status, time.Since(start))
	if err != nil {
		c.logger.Warn("Photo API request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", full.Path),
			zap.Error(err))
		return nil, wrapError(op, err)
	}
	c.logger.Debug("Photo API request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", full.Path),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)))
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path, token string, payload any) (*http.Response, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, wrapError(op, err)
	}
	return c.do(ctx, op, method, path, token, buf, "application/json")
}

func (c *Client) record(ctx context.Context, op, method string, status int, elapsed time.Duration) {
	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.UpstreamRequestsTotal.Add(ctx, 1, attrs)
	m.UpstreamRequestDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("op", op)))
}

func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := fmt.Sprintf("unexpected status %d", resp.StatusCode)
	var payload errorResponse
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil && len(raw) > 0 {
		if json.Unmarshal(raw, &payload) == nil {
			if payload.Message != "" {
				msg = payload.Message
			} else if payload.Error != "" {
				msg = payload.Error
			}
		}
	}
	return &Error{Op: op, Status: resp.StatusCode, Err: errors.New(msg)}
}

// decodeOptionalPhoto reads {"photo": {...}} when the API returns it; mutation
// endpoints are not consistent about echoing the record.
func decodeOptionalPhoto(r io.Reader) *models.Photo {
	var payload photoResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil
	}
	return payload.Photo
}
