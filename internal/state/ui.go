package state

import (
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-storefront/models"
)

// UIStore holds ephemeral UI state: open modals, toasts, the mobile menu and
// the search overlay. It is never persisted.
type UIStore struct {
	mu sync.Mutex

	// open is the visibility map; order lists open modals by opening time,
	// the last one being active.
	open  map[models.ModalID]bool
	order []models.ModalID

	toasts []models.Toast
	timers map[string]*time.Timer

	mobileMenuOpen bool
	searchOpen     bool

	toastDuration time.Duration
	ids           IDGenerator
	now           func() time.Time
}

// NewUIStore returns a UI store whose toasts default to toastDuration.
func NewUIStore(toastDuration time.Duration, ids IDGenerator) *UIStore {
	return &UIStore{
		open:          make(map[models.ModalID]bool),
		timers:        make(map[string]*time.Timer),
		toastDuration: toastDuration,
		ids:           ids,
		now:           time.Now,
	}
}

// OpenModal opens id and makes it the active modal.
func (s *UIStore) OpenModal(id models.ModalID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.openLocked(id)
}

// CloseModal closes id. The previously opened modal still open becomes
// active.
func (s *UIStore) CloseModal(id models.ModalID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeLocked(id)
}

// ToggleModal flips id and returns its new visibility.
func (s *UIStore) ToggleModal(id models.ModalID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open[id] {
		s.closeLocked(id)
		return false
	}
	s.openLocked(id)
	return true
}

func (s *UIStore) IsModalOpen(id models.ModalID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[id]
}

// ActiveModal returns the most recently opened modal that is still open.
func (s *UIStore) ActiveModal() (models.ModalID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return "", false
	}
	return s.order[len(s.order)-1], true
}

// OpenModals lists open modals in opening order.
func (s *UIStore) OpenModals() []models.ModalID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

func (s *UIStore) CloseAllModals() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.open)
	s.order = nil
}

func (s *UIStore) openLocked(id models.ModalID) {
	s.order = slices.DeleteFunc(s.order, func(m models.ModalID) bool { return m == id })
	s.order = append(s.order, id)
	s.open[id] = true
}

func (s *UIStore) closeLocked(id models.ModalID) {
	delete(s.open, id)
	s.order = slices.DeleteFunc(s.order, func(m models.ModalID) bool { return m == id })
}

// AddToast queues t and schedules its removal after t.Duration (or the
// default duration). It returns the toast id.
func (s *UIStore) AddToast(t models.Toast) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = s.ids.Generate()
	}
	if t.Kind == "" {
		t.Kind = models.ToastInfo
	}
	if t.Duration <= 0 {
		t.Duration = s.toastDuration
	}
	t.CreatedAt = s.now()

	// re-adding an id replaces the old toast and its timer
	s.removeToastLocked(t.ID)
	s.toasts = append(s.toasts, t)

	id := t.ID
	var timer *time.Timer
	timer = time.AfterFunc(t.Duration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// a re-added id owns a newer timer
		if s.timers[id] == timer {
			s.removeToastLocked(id)
		}
	})
	s.timers[id] = timer
	return id
}

// RemoveToast drops the toast with id and reports whether it was queued.
func (s *UIStore) RemoveToast(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeToastLocked(id)
}

// ClearToasts drops every toast and cancels their timers.
func (s *UIStore) ClearToasts() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
}

// Toasts returns the queued toasts, oldest first.
func (s *UIStore) Toasts() []models.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.toasts)
}

func (s *UIStore) removeToastLocked(id string) bool {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	before := len(s.toasts)
	s.toasts = slices.DeleteFunc(s.toasts, func(t models.Toast) bool { return t.ID == id })
	return len(s.toasts) != before
}

func (s *UIStore) SetMobileMenuOpen(open bool) {
	s.mu.Lock()
	s.mobileMenuOpen = open
	s.mu.Unlock()
}

// ToggleMobileMenu flips the mobile menu and returns its new state.
func (s *UIStore) ToggleMobileMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mobileMenuOpen = !s.mobileMenuOpen
	return s.mobileMenuOpen
}

func (s *UIStore) MobileMenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mobileMenuOpen
}

func (s *UIStore) SetSearchOpen(open bool) {
	s.mu.Lock()
	s.searchOpen = open
	s.mu.Unlock()
}

func (s *UIStore) SearchOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchOpen
}

// Close cancels pending toast timers.
func (s *UIStore) Close() {
	s.ClearToasts()
}
