package state

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

const invalidEntryMessage = "Please check your input and try again."

// WaitlistState is a snapshot of the waitlist store.
type WaitlistState struct {
	Entries         []models.WaitlistEntry `json:"entries"`
	SubmissionCount int                    `json:"submission_count"`
	Status          models.WaitlistStatus  `json:"-"`
	Error           string                 `json:"-"`
}

// WaitlistStore tracks waitlist submissions. It is the only store whose
// mutation performs network I/O.
type WaitlistStore struct {
	mu        sync.RWMutex
	state     WaitlistState
	api       WaitlistSubmitter
	validate  *validator.Validate
	persister *Persister[WaitlistState]
	seq       uint64
	now       func() time.Time
	logger    *logger.Logger
}

func NewWaitlistStore(api WaitlistSubmitter, repo store.StateRepository, log *logger.Logger) *WaitlistStore {
	return &WaitlistStore{
		state:     WaitlistState{Entries: []models.WaitlistEntry{}, Status: models.WaitlistIdle},
		api:       api,
		validate:  newValidator(),
		persister: NewPersister[WaitlistState](repo, KeyWaitlist),
		now:       time.Now,
		logger:    log,
	}
}

// AddEntry validates and submits entry. On success the entry is appended and
// the submission counter incremented. On failure the status becomes error,
// Error holds a user-facing message, entries stay untouched and the error is
// returned.
func (s *WaitlistStore) AddEntry(ctx context.Context, entry models.WaitlistEntry) error {
	log := logger.FromContext(ctx)

	if err := validateStruct(s.validate, entry); err != nil {
		s.setError(invalidEntryMessage)
		return err
	}
	if entry.SubmittedAt.IsZero() {
		entry.SubmittedAt = s.now()
	}

	s.mu.Lock()
	s.state.Status = models.WaitlistLoading
	s.state.Error = ""
	s.mu.Unlock()

	if err := s.api.SubmitWaitlist(ctx, entry); err != nil {
		log.Err(err).Str("func", "WaitlistStore.AddEntry").Msg("waitlist submission failed")
		s.setError(adapter.UserMessage(err))
		return err
	}

	s.mu.Lock()
	s.state.Entries = append(s.state.Entries, entry)
	s.state.SubmissionCount++
	s.state.Status = models.WaitlistSuccess
	s.state.Error = ""
	s.seq++
	seq, snapshot := s.seq, s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persister.Mirror(context.WithoutCancel(ctx), seq, snapshot); err != nil {
		s.logger.Err(err).Str("func", "WaitlistStore.AddEntry").Msg("failed to persist waitlist")
	}
	return nil
}

// Reset returns the status to idle and clears the error.
func (s *WaitlistStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = models.WaitlistIdle
	s.state.Error = ""
}

// State returns a snapshot of the store.
func (s *WaitlistStore) State() WaitlistState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Restore loads persisted entries and the submission counter.
func (s *WaitlistStore) Restore(ctx context.Context) error {
	st, ok, err := s.persister.Load(ctx)
	if err != nil || !ok {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st.Entries == nil {
		st.Entries = []models.WaitlistEntry{}
	}
	s.state.Entries = st.Entries
	s.state.SubmissionCount = st.SubmissionCount
	return nil
}

// Flush writes entries and the counter to persistence.
func (s *WaitlistStore) Flush(ctx context.Context) error {
	return s.persister.Save(ctx, s.State())
}

func (s *WaitlistStore) setError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = models.WaitlistError
	s.state.Error = message
}

func (s *WaitlistStore) snapshotLocked() WaitlistState {
	st := s.state
	st.Entries = slices.Clone(s.state.Entries)
	return st
}
