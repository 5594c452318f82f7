// Package session owns the persisted authentication state: the session
// token, the cached profile snapshot and the pending-destination slot.
// It also broadcasts the authenticated flag to interested views.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/emprende/internal/logging"
)

// Storage keys.
const (
	KeyToken        = "jwt_token"
	KeyProfile      = "user_data"
	KeyPendingRoute = "pending_route"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyToken       = errors.New("empty session token")
)

// Store is the session store. All methods are safe for concurrent use.
type Store struct {
	repo metadata.Repository
	log  logging.Logger

	mu            sync.Mutex
	authenticated bool
	subs          map[int]chan bool
	nextSub       int
}

// Open binds a store to repo and computes the initial authenticated flag
// from whether a token is already persisted.
func Open(ctx context.Context, repo metadata.Repository, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Discard()
	}
	s := &Store{repo: repo, log: log, subs: make(map[int]chan bool)}

	token, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}
	s.authenticated = len(token) > 0
	return s, nil
}

// Save persists token and profile in one write and notifies subscribers.
func (s *Store) Save(ctx context.Context, token string, profile models.Profile) error {
	if token == "" {
		return ErrEmptyToken
	}
	if profile == nil {
		profile = models.Profile{}
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SetAll(ctx, map[string][]byte{
		KeyToken:   []byte(token),
		KeyProfile: data,
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.publish(true)
	return nil
}

// Load returns the persisted session. Without a token the session is
// unauthenticated and any stray profile is ignored.
func (s *Store) Load(ctx context.Context) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Token implements client.TokenSource.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	return string(token), nil
}

// MergeProfile overwrites the stored profile fields that are present and
// non-empty in partial and returns the result.
func (s *Store) MergeProfile(ctx context.Context, partial models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	merged := sess.Profile.Merge(partial)
	if err := s.writeProfile(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// ReplaceProfile stores a fresh server snapshot as the cached profile.
func (s *Store) ReplaceProfile(ctx context.Context, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	return s.writeProfile(ctx, profile)
}

// Clear removes token and profile and notifies subscribers.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteAll(ctx, KeyToken, KeyProfile); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.publish(false)
	return nil
}

// Authenticated returns the last broadcast value.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Subscribe returns a channel that immediately holds the current flag and
// then receives every change. Only the latest value is buffered, so a slow
// reader skips intermediate states. cancel closes the channel.
func (s *Store) Subscribe() (<-chan bool, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan bool, 1)
	ch <- s.authenticated
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// SetPendingDestination records where navigation was headed when the guard
// sent the user to log in. A later call overwrites it.
func (s *Store) SetPendingDestination(ctx context.Context, path string) error {
	if err := s.repo.Set(ctx, KeyPendingRoute, []byte(path)); err != nil {
		return fmt.Errorf("save pending destination: %w", err)
	}
	return nil
}

// TakePendingDestination returns the recorded destination and clears it, so
// it is consumed at most once. It returns "" when nothing is pending.
func (s *Store) TakePendingDestination(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.repo.Get(ctx, KeyPendingRoute)
	if err != nil {
		return "", fmt.Errorf("read pending destination: %w", err)
	}
	if len(v) == 0 {
		return "", nil
	}
	if err := s.repo.Delete(ctx, KeyPendingRoute); err != nil {
		return "", fmt.Errorf("clear pending destination: %w", err)
	}
	return string(v), nil
}

func (s *Store) load(ctx context.Context) (models.Session, error) {
	token, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("read session token: %w", err)
	}
	if len(token) == 0 {
		return models.Session{}, nil
	}

	sess := models.Session{Token: string(token)}

	raw, err := s.repo.Get(ctx, KeyProfile)
	if err != nil {
		return models.Session{}, fmt.Errorf("read profile: %w", err)
	}
	if len(raw) == 0 {
		return sess, nil
	}

	p, err := models.DecodeProfile(raw)
	if err != nil {
		s.log.Warn(ctx, "cached profile is unreadable, ignoring it", "error", err.Error())
		return sess, nil
	}
	sess.Profile = p
	return sess, nil
}

func (s *Store) writeProfile(ctx context.Context, p models.Profile) error {
	if p == nil {
		p = models.Profile{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.repo.Set(ctx, KeyProfile, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// publish must be called with s.mu held.
func (s *Store) publish(v bool) {
	s.authenticated = v
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}
