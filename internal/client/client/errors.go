package client

import (
	"errors"
)

// Kind classifies why an auth-related call failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindNetworkUnavailable
	KindEmailNotRegistered
	KindInvalidFormat
	KindCodeInvalidOrExpired
	KindCodeNotFound
	KindWeakPassword
	KindUserNotFound
	KindServerError
)

var kindNames = map[Kind]string{
	KindUnknown:              "Unknown",
	KindInvalidCredentials:   "InvalidCredentials",
	KindNetworkUnavailable:   "NetworkUnavailable",
	KindEmailNotRegistered:   "EmailNotRegistered",
	KindInvalidFormat:        "InvalidFormat",
	KindCodeInvalidOrExpired: "CodeInvalidOrExpired",
	KindCodeNotFound:         "CodeNotFound",
	KindWeakPassword:         "WeakPassword",
	KindUserNotFound:         "UserNotFound",
	KindServerError:          "ServerError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// AuthError is the only error type the gateway returns. Message is meant for
// the user; Status is the HTTP status when a response was received; Err is
// the underlying transport error, if any.
type AuthError struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return defaultMessages[e.Kind]
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is reports kind equality, so errors.Is(err, client.ErrCodeNotFound) holds
// for any AuthError of that kind regardless of message.
func (e *AuthError) Is(target error) bool {
	var t *AuthError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds an AuthError with the default message for kind when msg
// is empty.
func NewError(kind Kind, msg string) *AuthError {
	if msg == "" {
		msg = defaultMessages[kind]
	}
	return &AuthError{Kind: kind, Message: msg}
}

// KindOf returns the kind of the first AuthError in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

var defaultMessages = map[Kind]string{
	KindUnknown:              "unknown error",
	KindInvalidCredentials:   "invalid credentials",
	KindNetworkUnavailable:   "no connection to the server",
	KindEmailNotRegistered:   "the email address is not registered",
	KindInvalidFormat:        "invalid format",
	KindCodeInvalidOrExpired: "invalid or expired code",
	KindCodeNotFound:         "code not found",
	KindWeakPassword:         "the password does not meet the minimum requirements",
	KindUserNotFound:         "user not found or session expired",
	KindServerError:          "internal server error, try again",
}

// Sentinels for errors.Is.
var (
	ErrUnknown              = &AuthError{Kind: KindUnknown}
	ErrInvalidCredentials   = &AuthError{Kind: KindInvalidCredentials}
	ErrNetworkUnavailable   = &AuthError{Kind: KindNetworkUnavailable}
	ErrEmailNotRegistered   = &AuthError{Kind: KindEmailNotRegistered}
	ErrInvalidFormat        = &AuthError{Kind: KindInvalidFormat}
	ErrCodeInvalidOrExpired = &AuthError{Kind: KindCodeInvalidOrExpired}
	ErrCodeNotFound         = &AuthError{Kind: KindCodeNotFound}
	ErrWeakPassword         = &AuthError{Kind: KindWeakPassword}
	ErrUserNotFound         = &AuthError{Kind: KindUserNotFound}
	ErrServerError          = &AuthError{Kind: KindServerError}
)
