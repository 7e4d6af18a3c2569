// Package common holds test doubles shared by the handler packages.
package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

// Request is one call received by FakeAPI.
type Request struct {
	Method string
	Path   string
	Token  string
}

type account struct {
	user     models.User
	password string
	token    string
}

// FakeAPI is an in-memory photo API served over httptest. It records every
// request so tests can assert how many upstream calls a screen made.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []Request
	accounts map[string]*account // by token
	photos   []models.Photo
	owners   map[string]string // photo id -> token
	failures map[string]int    // "METHOD /path" -> status
}

// NewFakeAPI starts a fake API that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		accounts: make(map[string]*account),
		owners:   make(map[string]string),
		failures: make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the API base URL.
func (f *FakeAPI) URL() string { return f.Server.URL }

// AddUser registers an account reachable by email/password or directly by token.
func (f *FakeAPI) AddUser(token, password string, user models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.accounts[token] = &account{user: user, password: password, token: token}
}

// AddPhoto stores a photo owned by the account holding token and returns its id.
func (f *FakeAPI) AddPhoto(token string, photo models.Photo) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	f.photos = append(f.photos, photo)
	f.owners[photo.ID] = token
	return photo.ID
}

// Fail makes every call to method+path answer with status.
func (f *FakeAPI) Fail(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = status
}

// Reset clears configured failures and the request log.
func (f *FakeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = make(map[string]int)
	f.requests = nil
}

// Requests returns a copy of the request log.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Count returns how many requests matched method and path.
func (f *FakeAPI) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Photo returns the stored photo with id.
func (f *FakeAPI) Photo(id string) (models.Photo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.photos {
		if p.ID == id {
			return p, true
		}
	}
	return models.Photo{}, false
}

// User returns the account holding token.
func (f *FakeAPI) User(token string) (models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[token]
	if !ok {
		return models.User{}, false
	}
	return a.user, true
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	f.mu.Lock()
	f.requests = append(f.requests, Request{Method: r.Method, Path: r.URL.Path, Token: token})
	status, failing := f.failures[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if failing {
		writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
		f.login(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/register":
		f.register(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/logout":
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	default:
		f.mu.Lock()
		acc, ok := f.accounts[token]
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		f.authenticated(w, r, acc)
	}
}

func (f *FakeAPI) authenticated(w http.ResponseWriter, r *http.Request, acc *account) {
	path := r.URL.Path
	switch {
	case r.Method == http.MethodGet && path == "/api/users/me":
		f.mu.Lock()
		user := acc.user
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, user)

	case r.Method == http.MethodPut && path == "/api/users/profile-photo":
		_, fh, err := r.FormFile("profilePhoto")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No file uploaded"})
			return
		}
		ref := `uploads\` + fh.Filename
		f.mu.Lock()
		acc.user.ProfilePhoto = ref
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"profilePhoto": ref})

	case r.Method == http.MethodDelete && path == "/api/users/profile-photo":
		f.mu.Lock()
		acc.user.ProfilePhoto = ""
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "removed"})

	case r.Method == http.MethodPost && path == "/api/photos/upload":
		_, fh, err := r.FormFile("photo")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No file uploaded"})
			return
		}
		f.AddPhoto(acc.token, models.Photo{
			URL:         `uploads\` + fh.Filename,
			Category:    r.FormValue("category"),
			Description: r.FormValue("description"),
			Date:        "2024-05-01T12:00:00Z",
		})
		writeJSON(w, http.StatusCreated, map[string]string{"message": "uploaded"})

	case r.Method == http.MethodGet && path == "/api/photos/all":
		writeJSON(w, http.StatusOK, map[string]any{"photos": f.list("")})

	case r.Method == http.MethodGet && path == "/api/photos/yourPhotos":
		writeJSON(w, http.StatusOK, map[string]any{"photos": f.list(acc.token)})

	case r.Method == http.MethodPut && strings.HasPrefix(path, "/api/photos/update/"):
		id := strings.TrimPrefix(path, "/api/photos/update/")
		var body struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad body"})
			return
		}
		if !f.mutate(acc.token, id, func(p *models.Photo) { p.Description = body.Description }) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Photo not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})

	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/api/photos/delete/"):
		id := strings.TrimPrefix(path, "/api/photos/delete/")
		if !f.remove(acc.token, id) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Photo not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/api/photos/"):
		id := strings.TrimPrefix(path, "/api/photos/")
		photo, ok := f.detail(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Photo not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"photo": photo})

	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("no route %s %s", r.Method, path)})
	}
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad body"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.user.Email == body.Email && acc.password == body.Password {
			writeJSON(w, http.StatusOK, map[string]string{"token": acc.token})
			return
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
}

func (f *FakeAPI) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad form"})
		return
	}
	email := r.FormValue("email")
	f.mu.Lock()
	for _, acc := range f.accounts {
		if acc.user.Email == email {
			f.mu.Unlock()
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User already exists"})
			return
		}
	}
	f.mu.Unlock()
	f.AddUser(uuid.NewString(), r.FormValue("password"), models.User{
		Name:        r.FormValue("name"),
		Email:       email,
		Course:      r.FormValue("course"),
		CollegeYear: models.FlexString(r.FormValue("collegeYear")),
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "registered"})
}

type wirePhoto struct {
	models.Photo
	User   *models.Uploader `json:"user,omitempty"`
	UserID *models.Uploader `json:"userId,omitempty"`
}

func (f *FakeAPI) list(ownerToken string) []wirePhoto {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]wirePhoto, 0, len(f.photos))
	for _, p := range f.photos {
		token := f.owners[p.ID]
		if ownerToken != "" && token != ownerToken {
			continue
		}
		p.User = nil
		out = append(out, wirePhoto{Photo: p, User: f.uploaderLocked(token)})
	}
	return out
}

func (f *FakeAPI) detail(id string) (wirePhoto, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.photos {
		if p.ID == id {
			p.User = nil
			return wirePhoto{Photo: p, UserID: f.uploaderLocked(f.owners[id])}, true
		}
	}
	return wirePhoto{}, false
}

func (f *FakeAPI) uploaderLocked(token string) *models.Uploader {
	acc, ok := f.accounts[token]
	if !ok {
		return nil
	}
	return &models.Uploader{
		ID:           acc.user.ID,
		Name:         acc.user.Name,
		Course:       acc.user.Course,
		CollegeYear:  acc.user.CollegeYear,
		ProfilePhoto: acc.user.ProfilePhoto,
	}
}

func (f *FakeAPI) mutate(token, id string, apply func(*models.Photo)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.owners[id] != token {
		return false
	}
	for i := range f.photos {
		if f.photos[i].ID == id {
			apply(&f.photos[i])
			return true
		}
	}
	return false
}

func (f *FakeAPI) remove(token, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.owners[id] != token {
		return false
	}
	for i := range f.photos {
		if f.photos[i].ID == id {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			delete(f.owners, id)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
