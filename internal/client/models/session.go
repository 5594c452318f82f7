package models

// Session is the persisted proof of authentication plus the cached profile.
// An empty Token means logged out; Profile is nil in that case.
type Session struct {
	Token   string
	Profile Profile
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
