package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports field errors under their JSON names so that the
// details returned to clients match the request payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Profile is the user identity document, keyed by email.
type Profile struct {
	Email       string   `json:"email" bson:"email" validate:"required,email"`
	Name        string   `json:"name" bson:"name"`
	Picture     string   `json:"picture" bson:"picture"`
	Description string   `json:"description" bson:"description"`
	Status      string   `json:"status" bson:"status"`
	Gallery     []string `json:"gallery" bson:"gallery"`
}

// PostUser is the author snapshot embedded in a post when it is written.
type PostUser struct {
	Name           string `json:"name" bson:"name"`
	ProfilePicture string `json:"profilePicture" bson:"profilePicture"`
}

// Comment is embedded in its post; it has no identity of its own.
type Comment struct {
	Content   string `json:"content" bson:"content"`
	User      string `json:"user" bson:"user"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

// Post is a social post owned by one email.
type Post struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Content   string    `json:"content" bson:"content"`
	Image     string    `json:"image" bson:"image"`
	User      PostUser  `json:"user" bson:"user"`
	Comments  []Comment `json:"comments" bson:"comments"`
	CreatedAt string    `json:"createdAt" bson:"createdAt"`
}
