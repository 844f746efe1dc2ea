package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name:    "valid post",
			post:    &Post{Email: "a@x.com", Content: "hi"},
			wantErr: false,
		},
		{
			name:    "empty content is allowed",
			post:    &Post{Email: "a@x.com"},
			wantErr: false,
		},
		{
			name:    "missing owner",
			post:    &Post{Content: "hi"},
			wantErr: true,
		},
		{
			name:    "malformed owner",
			post:    &Post{Email: "nobody", Content: "hi"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeSave(t *testing.T) {
	post := &Post{Email: "a@x.com"}
	post.BeforeSave()
	assert.Equal(t, []Comment{}, post.Comments)

	data, err := json.Marshal(post)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"comments":[]`)
	assert.NotContains(t, string(data), `"_id"`)
}

func TestPostOwnedBy(t *testing.T) {
	post := &Post{Email: "a@x.com"}
	assert.True(t, post.OwnedBy("a@x.com"))
	assert.False(t, post.OwnedBy("b@x.com"))
}

func TestPostJSONShape(t *testing.T) {
	payload := `{
		"email": "a@x.com",
		"content": "hi",
		"image": "pic.png",
		"user": {"name": "Ann", "profilePicture": "ann.png"},
		"comments": [{"content": "nice", "user": "Bob", "createdAt": "2024-01-01T00:00:00Z"}],
		"createdAt": "2024-01-01T00:00:00Z"
	}`

	var post Post
	assert.NoError(t, json.Unmarshal([]byte(payload), &post))
	assert.Equal(t, "Ann", post.User.Name)
	assert.Equal(t, "ann.png", post.User.ProfilePicture)
	assert.Len(t, post.Comments, 1)
	assert.Equal(t, "Bob", post.Comments[0].User)
	assert.Equal(t, "2024-01-01T00:00:00Z", post.CreatedAt)
}
