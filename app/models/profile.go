package models

// NewProfile returns the empty profile for email, the shape served when
// nothing has been stored yet.
func NewProfile(email string) *Profile {
	return &Profile{
		Email:   email,
		Gallery: []string{},
	}
}

// Validate checks if the profile meets all validation requirements
func (p *Profile) Validate() error {
	return validate.Struct(p)
}

// BeforeSave normalizes fields before the profile is written or served.
func (p *Profile) BeforeSave() {
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
}
