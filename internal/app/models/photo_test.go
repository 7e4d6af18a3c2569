package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoUnmarshal(t *testing.T) {
	t.Run("list record embeds the uploader under user", func(t *testing.T) {
		var p Photo
		err := json.Unmarshal([]byte(`{"_id":"p1","url":"uploads\\a.jpg","category":"nature","description":"lake","user":{"_id":"u1","name":"Asha","profilePhoto":"uploads\\asha.png"}}`), &p)
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		require.NotNil(t, p.User)
		assert.Equal(t, "Asha", p.UploaderName())
		assert.Equal(t, `uploads\asha.png`, p.User.ProfilePhoto)
	})

	t.Run("detail record populates userId", func(t *testing.T) {
		var p Photo
		err := json.Unmarshal([]byte(`{"_id":"p2","userId":{"_id":"u2","name":"Ravi","course":"CSE","collegeYear":3},"date":"2024-03-05T10:00:00Z"}`), &p)
		require.NoError(t, err)
		require.NotNil(t, p.User)
		assert.Equal(t, "Ravi", p.User.Name)
		assert.Equal(t, "3", p.User.CollegeYear.String())
		assert.Equal(t, "Mar 5, 2024", p.UploadDate())
	})

	t.Run("userId may be a bare identifier", func(t *testing.T) {
		var p Photo
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"p3","userId":"u3"}`), &p))
		require.NotNil(t, p.User)
		assert.Equal(t, "u3", p.User.ID)
		assert.Empty(t, p.UploaderName())
	})

	t.Run("unparseable dates are shown verbatim", func(t *testing.T) {
		p := Photo{Date: "yesterday"}
		assert.Equal(t, "yesterday", p.UploadDate())
		assert.Empty(t, Photo{}.UploadDate())
	})
}
