package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Uploader is the user summary the API embeds in photo records.
type Uploader struct {
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	Course       string     `json:"course"`
	CollegeYear  FlexString `json:"collegeYear"`
	ProfilePhoto string     `json:"profilePhoto"`
}

// Photo is a server-owned photo record.
type Photo struct {
	ID          string    `json:"_id"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   string    `json:"createdAt"`
	User        *Uploader `json:"user,omitempty"`
}

// The list endpoints embed the uploader under "user" while the detail endpoint
// populates "userId", which may also arrive as a bare identifier.
func (p *Photo) UnmarshalJSON(data []byte) error {
	type photoAlias Photo
	var raw struct {
		photoAlias
		AltID  string          `json:"id"`
		User   json.RawMessage `json:"user"`
		UserID json.RawMessage `json:"userId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Photo(raw.photoAlias)
	if p.ID == "" {
		p.ID = raw.AltID
	}

	uploader, err := decodeUploader(raw.User)
	if err != nil {
		return fmt.Errorf("decode photo user: %w", err)
	}
	if uploader == nil {
		if uploader, err = decodeUploader(raw.UserID); err != nil {
			return fmt.Errorf("decode photo userId: %w", err)
		}
	}
	p.User = uploader
	return nil
}

func decodeUploader(raw json.RawMessage) (*Uploader, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, err
		}
		return &Uploader{ID: id}, nil
	}
	var u Uploader
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UploaderName returns the embedded uploader's name, if any.
func (p Photo) UploaderName() string {
	if p.User == nil {
		return ""
	}
	return p.User.Name
}

// UploadDate formats the upload date for display.
func (p Photo) UploadDate() string {
	raw := p.Date
	if raw == "" {
		raw = p.CreatedAt
	}
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}
