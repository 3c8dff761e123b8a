// Package session holds the per-identity view state machine that gates the
// report pipeline. All state lives behind named transition methods; there
// are no other mutation paths.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"shiftwrite/models"
	"shiftwrite/prompt"
)

// View is the active surface of the application.
type View string

const (
	ViewLoading         View = "loading"
	ViewUnauthenticated View = "unauthenticated"
	ViewEditing         View = "editing"
	ViewHistory         View = "history"
)

var (
	// ErrNotSignedIn rejects transitions that require an identity.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrGenerationInFlight rejects a second generation while one is
	// outstanding.
	ErrGenerationInFlight = errors.New("a generation is already in progress")
	// ErrAuthInFlight rejects a second sign-in or sign-up attempt while one
	// is outstanding.
	ErrAuthInFlight = errors.New("an authentication attempt is already in progress")
	// ErrNoPendingReport rejects report actions before a successful
	// generation.
	ErrNoPendingReport = errors.New("no report has been generated")
)

// Session is one identity's view state, field store and in-flight guards.
type Session struct {
	mu sync.Mutex

	view     View
	identity string

	record   models.ShiftRecord
	pending  *models.GeneratedReport
	selected *models.HistoryEntry

	authInFlight     bool
	generateInFlight bool
}

// New creates a session in the loading view with today's date pre-filled,
// matching a fresh editing form.
func New() *Session {
	return &Session{
		view: ViewLoading,
		record: models.ShiftRecord{
			Date: time.Now().Format("2006-01-02"),
		},
	}
}

// ResolveIdentity is the only path out of loading: a present identity lands
// in editing, an absent one in unauthenticated. Resolving again with the
// same outcome is a no-op.
func (s *Session) ResolveIdentity(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity == "" {
		if s.view == ViewLoading {
			s.view = ViewUnauthenticated
		}
		return
	}
	s.identity = identity
	if s.view == ViewLoading || s.view == ViewUnauthenticated {
		s.view = ViewEditing
	}
}

// BeginAuth marks a sign-in/sign-up attempt as outstanding.
func (s *Session) BeginAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authInFlight {
		return ErrAuthInFlight
	}
	s.authInFlight = true
	return nil
}

// EndAuth resolves an outstanding attempt. A non-empty identity means the
// attempt succeeded and moves the session to editing.
func (s *Session) EndAuth(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authInFlight = false
	if identity != "" {
		s.identity = identity
		s.view = ViewEditing
	}
}

// SignOut clears the in-memory session artifacts (identity, form, pending
// report, selection) and returns to unauthenticated. Persisted history is
// untouched. Always succeeds, from any authenticated state.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = ""
	s.pending = nil
	s.selected = nil
	s.record = models.ShiftRecord{Date: time.Now().Format("2006-01-02")}
	s.view = ViewUnauthenticated
}

// OpenHistory moves editing → history. Identity is preserved.
func (s *Session) OpenHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == "" {
		return ErrNotSignedIn
	}
	s.view = ViewHistory
	return nil
}

// CloseHistory moves history → editing, dropping any selection.
func (s *Session) CloseHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == "" {
		return ErrNotSignedIn
	}
	s.selected = nil
	s.view = ViewEditing
	return nil
}

// SelectEntry marks one owned history entry for review.
func (s *Session) SelectEntry(entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == "" {
		return ErrNotSignedIn
	}
	s.selected = &entry
	return nil
}

// UpdateRecord replaces the field store content.
func (s *Session) UpdateRecord(rec models.ShiftRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == "" {
		return ErrNotSignedIn
	}
	s.record = rec
	return nil
}

// Record returns a snapshot of the field store.
func (s *Session) Record() models.ShiftRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// BeginGenerate validates the form and claims the single generation slot,
// returning the record snapshot the pipeline must use. Exactly one of
// CompleteGenerate or FailGenerate must follow. A successful generation does
// not change the view.
func (s *Session) BeginGenerate() (models.ShiftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == "" {
		return models.ShiftRecord{}, ErrNotSignedIn
	}
	if s.generateInFlight {
		return models.ShiftRecord{}, ErrGenerationInFlight
	}
	if err := prompt.Validate(s.record); err != nil {
		return models.ShiftRecord{}, err
	}

	s.generateInFlight = true
	s.pending = nil
	return s.record, nil
}

// CompleteGenerate installs the report produced by a successful generation
// and releases the slot.
func (s *Session) CompleteGenerate(report models.GeneratedReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generateInFlight = false
	s.pending = &report
}

// FailGenerate releases the slot after a failed attempt. The user must
// re-trigger generation; nothing is retried.
func (s *Session) FailGenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generateInFlight = false
}

// Pending returns the current generated report, if any.
func (s *Session) Pending() (models.GeneratedReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return models.GeneratedReport{}, false
	}
	return *s.pending, true
}

// Selected returns the history entry under review, if any.
func (s *Session) Selected() (models.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return models.HistoryEntry{}, false
	}
	return *s.selected, true
}

// View reports the active surface.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Identity reports the owning identity, empty when absent.
func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Manager hands out one session per identity.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// For returns the identity's session, creating and resolving it on first
// touch.
func (m *Manager) For(identity string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[identity]
	if !ok {
		s = New()
		s.ResolveIdentity(identity)
		m.sessions[identity] = s
	}
	return s
}

// Anonymous returns the session for a not-yet-authenticated principal,
// keyed by the credential email so an outstanding sign-in or sign-up
// attempt for the same account can be detected.
func (m *Manager) Anonymous(email string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := anonKey(email)
	s, ok := m.sessions[key]
	if !ok {
		s = New()
		s.ResolveIdentity("")
		m.sessions[key] = s
	}
	return s
}

// ForgetAnonymous discards the anonymous session once the principal has an
// identity of its own.
func (m *Manager) ForgetAnonymous(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, anonKey(email))
}

func anonKey(email string) string {
	return "anon\x00" + strings.ToLower(email)
}

// Count reports the number of tracked sessions, anonymous ones included.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Drop signs the identity's session out and forgets it.
func (m *Manager) Drop(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[identity]; ok {
		s.SignOut()
		delete(m.sessions, identity)
	}
}
