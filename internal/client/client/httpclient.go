package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/common"
	"github.com/dmitrijs2005/emprende/internal/logging"
	"github.com/google/uuid"
)

// RecoveryIDFields is the ordered list of response fields probed for the
// user id after OTP validation. The first present, non-null value wins.
var RecoveryIDFields = []string{"idUsuario", "validatedId", "userId", "id", "user_id", "userID", "ID"}

// operation describes how one endpoint's failures map onto the taxonomy.
type operation struct {
	name     string
	statuses map[int]*AuthError
	fallback string
}

var (
	opLogin = operation{
		name: "login",
		statuses: map[int]*AuthError{
			http.StatusUnauthorized: NewError(KindInvalidCredentials, "invalid credentials"),
		},
		fallback: "unknown error",
	}
	opEmailRecovery = operation{
		name: "email recovery",
		statuses: map[int]*AuthError{
			http.StatusNotFound:   NewError(KindEmailNotRegistered, "the email address is not registered"),
			http.StatusBadRequest: NewError(KindInvalidFormat, "invalid email format"),
		},
		fallback: "could not validate the email address",
	}
	opValidateCode = operation{
		name: "otp validation",
		statuses: map[int]*AuthError{
			http.StatusBadRequest: NewError(KindCodeInvalidOrExpired, "invalid or expired code"),
			http.StatusNotFound:   NewError(KindCodeNotFound, "code not found"),
		},
		fallback: "could not validate the code",
	}
	opResetPassword = operation{
		name: "password reset",
		statuses: map[int]*AuthError{
			http.StatusBadRequest:          NewError(KindWeakPassword, "the password does not meet the minimum requirements"),
			http.StatusNotFound:            NewError(KindUserNotFound, "user not found or session expired"),
			http.StatusInternalServerError: NewError(KindServerError, "internal server error, try again"),
		},
		fallback: "could not change the password",
	}
	opWhoAmI = operation{
		name: "whoami",
		statuses: map[int]*AuthError{
			http.StatusUnauthorized: NewError(KindInvalidCredentials, "not authenticated"),
			http.StatusForbidden:    NewError(KindInvalidCredentials, "not allowed to read the profile"),
		},
		fallback: "could not load the profile",
	}
	opUpdateProfile = operation{
		name: "update profile",
		statuses: map[int]*AuthError{
			http.StatusUnauthorized: NewError(KindInvalidCredentials, "not authenticated"),
			http.StatusBadRequest:   NewError(KindInvalidFormat, "invalid profile data"),
		},
		fallback: "could not update the profile",
	}
	opDocument = operation{
		name: "document",
		statuses: map[int]*AuthError{
			http.StatusUnauthorized: NewError(KindInvalidCredentials, "not authenticated"),
			http.StatusNotFound:     NewError(KindUserNotFound, "document not found"),
		},
		fallback: "could not fetch the document",
	}
	opRegister = operation{
		name: "register",
		statuses: map[int]*AuthError{
			http.StatusRequestEntityTooLarge: NewError(KindInvalidFormat, "a file exceeds the maximum allowed size of 2 MB"),
		},
		fallback: "server error",
	}
)

// HTTPClient talks to the REST backend. It is safe for concurrent use.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	log       logging.Logger
	requestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests, proxies).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTPClient) { h.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// NewHTTPClient returns a client for the backend at baseURL. timeout bounds
// each request; zero means no client-side timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(u.String(), "/"),
		http:      &http.Client{Timeout: timeout},
		log:       logging.Discard(),
		requestID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	body, err := c.doJSON(ctx, opLogin, http.MethodPost, "/auth/login", map[string]string{
		"username": identifier,
		"password": password,
	}, false)
	if err != nil {
		return LoginResult{}, err
	}

	profile, err := models.DecodeProfile(body)
	if err != nil {
		return LoginResult{}, &AuthError{Kind: KindUnknown, Message: "unexpected login response", Err: err}
	}

	token := profile.String("jwt")
	if token == "" {
		token = profile.String("token")
	}
	if token == "" {
		return LoginResult{}, NewError(KindUnknown, "login response carried no token")
	}

	return LoginResult{Token: token, Profile: profile}, nil
}

func (c *HTTPClient) RequestEmailRecovery(ctx context.Context, email string) (string, error) {
	body, err := c.doJSON(ctx, opEmailRecovery, http.MethodPost, "/recovery/email/validation", map[string]string{
		"email": email,
	}, false)
	if err != nil {
		return "", err
	}

	var resp struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &AuthError{Kind: KindUnknown, Message: "unexpected email recovery response", Err: err}
	}
	return resp.UUID, nil
}

// ValidateRecoveryCode returns the identifier to use for the password reset:
// the first RecoveryIDFields entry present in the response, or recoveryUUID
// when none is.
func (c *HTTPClient) ValidateRecoveryCode(ctx context.Context, code, recoveryUUID string) (string, error) {
	body, err := c.doJSON(ctx, opValidateCode, http.MethodPost, "/recovery/otp/validation", map[string]string{
		"otp":  code,
		"uuid": recoveryUUID,
	}, false)
	if err != nil {
		return "", err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", NewError(KindUnknown, "no response from server")
	}

	resp, err := models.DecodeProfile(trimmed)
	if err != nil {
		c.log.Debug(ctx, "otp validation response is not an object, using recovery uuid")
		return recoveryUUID, nil
	}

	for _, field := range RecoveryIDFields {
		if v, ok := resp[field]; ok && v != nil {
			c.log.Debug(ctx, "recovery id found", "field", field)
			return resp.String(field), nil
		}
	}

	c.log.Debug(ctx, "no recovery id field in response, using recovery uuid")
	return recoveryUUID, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, validatedID, newPassword string) error {
	_, err := c.doJSON(ctx, opResetPassword, http.MethodPut, "/recovery/password/"+url.PathEscape(validatedID), map[string]string{
		"newPassword": newPassword,
	}, false)
	return err
}

func (c *HTTPClient) WhoAmI(ctx context.Context) (models.Profile, error) {
	body, err := c.doJSON(ctx, opWhoAmI, http.MethodGet, "/auth/whoami", nil, true)
	if err != nil {
		return nil, err
	}

	p, err := models.DecodeProfile(body)
	if err != nil {
		return nil, &AuthError{Kind: KindUnknown, Message: "unexpected profile response", Err: err}
	}
	return p, nil
}

// UpdateProfile sends only the non-empty fields of update. The returned
// profile holds whatever the server echoed back, possibly nothing.
func (c *HTTPClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	body, err := c.doJSON(ctx, opUpdateProfile, http.MethodPut, "/users/updateUser", update, true)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return models.Profile{}, nil
	}
	p, err := models.DecodeProfile(body)
	if err != nil {
		return models.Profile{}, nil
	}
	return p, nil
}

func (c *HTTPClient) GetDocument(ctx context.Context, kind models.DocumentKind) ([]byte, error) {
	if kind.Endpoint() == "" {
		return nil, NewError(KindInvalidFormat, fmt.Sprintf("unknown document kind %q", kind))
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/users/"+kind.Endpoint(), nil, "", true)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, opDocument, req)
}

// Register uploads the sign-up form as multipart/form-data: one part per
// attachment plus a "data" part holding the JSON form.
func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, part := range reg.Parts() {
		fw, err := mw.CreateFormFile(part.Field, part.Filename)
		if err != nil {
			return &AuthError{Kind: KindUnknown, Message: "could not build the request", Err: err}
		}
		if _, err := fw.Write(part.Content); err != nil {
			return &AuthError{Kind: KindUnknown, Message: "could not build the request", Err: err}
		}
	}

	data, err := json.Marshal(reg)
	if err != nil {
		return &AuthError{Kind: KindUnknown, Message: "could not build the request", Err: err}
	}
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="data"; filename="blob"`)
	hdr.Set("Content-Type", "application/json")
	dw, err := mw.CreatePart(hdr)
	if err != nil {
		return &AuthError{Kind: KindUnknown, Message: "could not build the request", Err: err}
	}
	if _, err := dw.Write(data); err != nil {
		return &AuthError{Kind: KindUnknown, Message: "could not build the request", Err: err}
	}
	if err := mw.Close(); err != nil {
		return &AuthError{Kind: KindUnknown, Message: "could not build the request", Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/users/register", &buf, mw.FormDataContentType(), false)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, opRegister, req)
	return err
}

func (c *HTTPClient) doJSON(ctx context.Context, op operation, method, path string, payload any, auth bool) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, &AuthError{Kind: KindUnknown, Message: "could not build the request", Err: err}
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType, auth)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, op, req)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string, auth bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &AuthError{Kind: KindUnknown, Message: "could not build the request", Err: err}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, c.requestID())

	if auth && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, &AuthError{Kind: KindUnknown, Message: "could not read the session", Err: err}
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}
	return req, nil
}

// do sends req once and converts every failure into an *AuthError.
func (c *HTTPClient) do(ctx context.Context, op operation, req *http.Request) ([]byte, error) {
	start := time.Now()
	log := c.log.With(
		"op", op.name,
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(common.RequestIDHeaderName),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err.Error())
		return nil, &AuthError{Kind: KindNetworkUnavailable, Message: defaultMessages[KindNetworkUnavailable], Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err.Error())
		return nil, &AuthError{Kind: KindNetworkUnavailable, Message: defaultMessages[KindNetworkUnavailable], Status: resp.StatusCode, Err: err}
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, op.mapStatus(resp.StatusCode, body)
	}
	return body, nil
}

func (op operation) mapStatus(status int, body []byte) *AuthError {
	if tmpl, ok := op.statuses[status]; ok {
		return &AuthError{Kind: tmpl.Kind, Message: tmpl.Message, Status: status}
	}

	kind := KindUnknown
	if status >= 500 {
		kind = KindServerError
	}
	msg := op.fallback
	if m := serverMessage(body); m != "" && op.name == opRegister.name {
		msg = m
	}
	return &AuthError{Kind: kind, Message: msg, Status: status}
}

// serverMessage extracts {"message": "..."} from an error body, if present.
func serverMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.Message
}
