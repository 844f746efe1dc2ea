package models

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeSave normalizes fields before the post is written or served.
func (p *Post) BeforeSave() {
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// OwnedBy reports whether the post belongs to email.
func (p *Post) OwnedBy(email string) bool {
	return p.Email == email
}
