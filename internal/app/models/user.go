package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// User is the server-owned account record returned by /api/users/me.
type User struct {
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Course       string     `json:"course"`
	CollegeYear  FlexString `json:"collegeYear"`
	ProfilePhoto string     `json:"profilePhoto"`
}

// FlexString accepts a JSON string or number; the API is not consistent
// about how it stores the college year.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return strings.TrimSpace(string(f)) }
