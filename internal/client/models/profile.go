package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Known profile fields. The server may return more; they are kept as is.
const (
	FieldName     = "name"
	FieldLastname = "lastname"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldAddress  = "address"
	FieldBusiness = "business"
	FieldUsername = "username"
)

// KnownProfileFields lists the fields the UI shows, in display order.
var KnownProfileFields = []string{
	FieldName, FieldLastname, FieldEmail, FieldPhone, FieldAddress, FieldBusiness, FieldUsername,
}

// Profile is the cached user-data snapshot: the JSON object returned by the
// server, kept verbatim so unknown fields survive a round trip.
type Profile map[string]any

// DecodeProfile parses a JSON object. Numbers are kept as json.Number so ids
// are not rounded through float64.
func DecodeProfile(data []byte) (Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// String returns the field rendered as text, or "" when it is missing or null.
func (p Profile) String(field string) string {
	switch v := p[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Clone returns a shallow copy.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a copy of p in which every field of partial that is present
// and non-empty overwrites the current value. Missing, null and "" values in
// partial never clear an existing field.
func (p Profile) Merge(partial Profile) Profile {
	out := p.Clone()
	if out == nil {
		out = Profile{}
	}
	for k, v := range partial {
		if isEmptyValue(v) {
			continue
		}
		out[k] = v
	}
	return out
}

// DisplayName picks the friendliest name available for greetings.
func (p Profile) DisplayName() string {
	for _, f := range []string{"nombre", FieldName, FieldUsername, FieldEmail} {
		if s := p.String(f); s != "" {
			return s
		}
	}
	return "user"
}

func isEmptyValue(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return s == ""
	default:
		return false
	}
}
