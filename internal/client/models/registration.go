package models

// Registration is the account sign-up form. It is sent as the "data" part
// of a multipart request next to the three document attachments.
type Registration struct {
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required,min=2,max=50"`
	Lastname       string `json:"lastname" validate:"required,min=2,max=50"`
	Identification string `json:"identification" validate:"required,min=2,max=15"`
	Phone          string `json:"phone" validate:"required"`
	Address        string `json:"address" validate:"required"`
	Username       string `json:"username" validate:"required,min=5,max=20"`
	Password       string `json:"password" validate:"required,min=8,max=20"`

	IdentityDocument Attachment `json:"-"`
	Certificate      Attachment `json:"-"`
	SignedDocument   Attachment `json:"-"`
}

// Attachment is one uploaded file.
type Attachment struct {
	Filename string
	Content  []byte
}

// Parts returns the attachments keyed by their multipart field name.
func (r Registration) Parts() []NamedAttachment {
	return []NamedAttachment{
		{Field: "identityDocument", Label: "identity document", Attachment: r.IdentityDocument},
		{Field: "certificate", Label: "municipal certificate", Attachment: r.Certificate},
		{Field: "signedDocument", Label: "signed agreement", Attachment: r.SignedDocument},
	}
}

type NamedAttachment struct {
	Field string
	Label string
	Attachment
}
