package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

type userState struct {
	User    *models.User   `json:"user,omitempty"`
	Session models.Session `json:"session"`
}

// UserStore holds the signed-in user and their session.
type UserStore struct {
	mu        sync.RWMutex
	state     userState
	persister *Persister[userState]
	seq       uint64
	now       func() time.Time
	logger    *logger.Logger
}

func NewUserStore(repo store.StateRepository, log *logger.Logger) *UserStore {
	return &UserStore{
		persister: NewPersister[userState](repo, KeyUser),
		now:       time.Now,
		logger:    log,
	}
}

// SignIn replaces the current user and session.
func (s *UserStore) SignIn(ctx context.Context, user models.User, session models.Session) {
	u := cloneUser(user)
	_ = s.mutate(ctx, func() error {
		s.state = userState{User: &u, Session: session}
		return nil
	})
}

// SignInWithToken signs in with the profile carried by a session token.
func (s *UserStore) SignInWithToken(ctx context.Context, token string) (models.User, error) {
	claims, err := utils.ParseSessionClaims(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	user := models.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}
	s.SignIn(ctx, user, models.Session{Token: token, ExpiresAt: claims.ExpiresAt})
	return user, nil
}

// UpdateUser merges the non-zero fields of update into the current user.
func (s *UserStore) UpdateUser(ctx context.Context, update models.UserUpdate) error {
	src := cloneUser(models.User{
		Email:       update.Email,
		Name:        update.Name,
		AvatarURL:   update.AvatarURL,
		Preferences: update.Preferences,
	})

	return s.mutate(ctx, func() error {
		if s.state.User == nil {
			return ErrNotSignedIn
		}

		merged := cloneUser(*s.state.User)
		if err := mergo.Merge(&merged, src, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return fmt.Errorf("merge user update: %w", err)
		}

		s.state.User = &merged
		return nil
	})
}

// UpdatePreferences merges the set fields of prefs into the current
// preferences.
func (s *UserStore) UpdatePreferences(ctx context.Context, prefs models.Preferences) error {
	return s.UpdateUser(ctx, models.UserUpdate{Preferences: prefs})
}

// SignOut forgets the user and session.
func (s *UserStore) SignOut(ctx context.Context) {
	_ = s.mutate(ctx, func() error {
		s.state = userState{}
		return nil
	})
}

// User returns a copy of the signed-in user.
func (s *UserStore) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.User == nil {
		return models.User{}, false
	}
	return cloneUser(*s.state.User), true
}

// Token returns the bearer token of a live session, or "".
func (s *UserStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.User == nil || s.state.Session.Expired(s.now()) {
		return ""
	}
	return s.state.Session.Token
}

// IsAuthenticated reports whether a user is signed in with a live session.
func (s *UserStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// Restore loads the persisted user, dropping it when the session expired.
func (s *UserStore) Restore(ctx context.Context) error {
	st, ok, err := s.persister.Load(ctx)
	if err != nil || !ok {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st.User == nil || st.Session.Expired(s.now()) {
		s.state = userState{}
		return nil
	}
	s.state = st
	return nil
}

// Flush writes the current user to persistence.
func (s *UserStore) Flush(ctx context.Context) error {
	s.mu.RLock()
	st := s.snapshotLocked()
	s.mu.RUnlock()

	if st.User == nil {
		return s.persister.Clear(ctx)
	}
	return s.persister.Save(ctx, st)
}

func (s *UserStore) snapshotLocked() userState {
	st := s.state
	if st.User != nil {
		u := cloneUser(*st.User)
		st.User = &u
	}
	return st
}

// mutate applies fn under the lock. On success the state is mirrored after
// the lock is released; a signed-out state clears the stored copy.
func (s *UserStore) mutate(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.seq++
	seq, st := s.seq, s.snapshotLocked()
	s.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	var err error
	if st.User == nil {
		err = s.persister.MirrorClear(ctx, seq)
	} else {
		err = s.persister.Mirror(ctx, seq, st)
	}
	if err != nil {
		s.logger.Err(err).Str("func", "UserStore.mutate").Msg("failed to persist user")
	}
	return nil
}

// cloneUser detaches the preference pointers from the caller's values.
func cloneUser(u models.User) models.User {
	u.Preferences.Notifications = cloneBool(u.Preferences.Notifications)
	u.Preferences.Marketing = cloneBool(u.Preferences.Marketing)
	return u
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
