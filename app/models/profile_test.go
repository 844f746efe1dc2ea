package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileValidation(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		wantErr bool
	}{
		{
			name:    "email only",
			profile: &Profile{Email: "a@x.com"},
			wantErr: false,
		},
		{
			name: "full profile",
			profile: &Profile{
				Email:       "ann@example.com",
				Name:        "Ann",
				Picture:     "data:image/png;base64,AAAA",
				Description: "hello",
				Status:      "online",
				Gallery:     []string{"one.png", "two.png"},
			},
			wantErr: false,
		},
		{
			name:    "missing email",
			profile: &Profile{Name: "Ann"},
			wantErr: true,
		},
		{
			name:    "malformed email",
			profile: &Profile{Email: "not-an-email"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileValidationReportsJSONNames(t *testing.T) {
	err := (&Profile{}).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "'email'")
}

func TestNewProfile(t *testing.T) {
	profile := NewProfile("a@x.com")
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Empty(t, profile.Name)
	assert.NotNil(t, profile.Gallery)
	assert.Empty(t, profile.Gallery)
}

func TestProfileBeforeSave(t *testing.T) {
	profile := &Profile{Email: "a@x.com"}
	assert.Nil(t, profile.Gallery)
	profile.BeforeSave()
	assert.Equal(t, []string{}, profile.Gallery)

	profile = &Profile{Email: "a@x.com", Gallery: []string{"x"}}
	profile.BeforeSave()
	assert.Equal(t, []string{"x"}, profile.Gallery)
}
