package models

// ProfileUpdate holds the fields the backend lets a user change. Empty
// fields are left out of the request and never overwrite cached values.
type ProfileUpdate struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Address  string `json:"address,omitempty"`
	Username string `json:"username,omitempty" validate:"omitempty,min=5,max=20"`
}

// Fields returns the non-empty fields as a partial profile.
func (u ProfileUpdate) Fields() Profile {
	p := Profile{}
	for k, v := range map[string]string{
		FieldPhone:    u.Phone,
		FieldEmail:    u.Email,
		FieldAddress:  u.Address,
		FieldUsername: u.Username,
	} {
		if v != "" {
			p[k] = v
		}
	}
	return p
}

func (u ProfileUpdate) Empty() bool {
	return len(u.Fields()) == 0
}
