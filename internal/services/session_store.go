package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"shivansh.dev/internal/models"
)

// ErrSessionNotFound is returned for unknown or evicted session ids
var ErrSessionNotFound = errors.New("session not found")

// ShowcaseDefaults configures the carousel of new sessions
type ShowcaseDefaults struct {
	Autoplay bool
	Delay    time.Duration
	Loop     bool
}

// Session is one visitor's UI state: preferences, filter and carousel.
// Every autoplay stream of a session shares one ticker.
type Session struct {
	ID string

	mu       sync.Mutex
	prefs    models.Preferences
	filter   CategoryFilter
	carousel Carousel
	lastSeen time.Time

	// playMu serializes ticker restarts. mu is only held briefly under it,
	// never while waiting on the ticker goroutine.
	playMu  sync.Mutex
	player  *Autoplayer
	playing autoplayKey
}

// autoplayKey is what the running ticker was started for. Any change to it
// restarts the ticker, so a resume waits a full delay before advancing.
type autoplayKey struct {
	delay time.Duration
	n     int
	loop  bool
}

// SessionView is a consistent snapshot of a session for rendering
type SessionView struct {
	ID              string             `json:"id"`
	Preferences     models.Preferences `json:"preferences"`
	Filter          CategoryFilter     `json:"filter"`
	Carousel        Carousel           `json:"carousel"`
	AutoplayDelayMs int64              `json:"autoplay_delay_ms"`
	Paused          bool               `json:"paused"`
	Categories      []string           `json:"categories"`
	Projects        []models.Project   `json:"projects"`
}

func newSession(id string, carousel Carousel, now time.Time) *Session {
	s := &Session{
		ID:       id,
		prefs:    models.DefaultPreferences(),
		carousel: carousel,
		lastSeen: now,
	}
	s.player = NewAutoplayer(s.Step)
	return s
}

// Update runs fn with exclusive access to the carousel and preferences
func (s *Session) Update(fn func(c *Carousel, p *models.Preferences)) {
	s.mu.Lock()
	fn(&s.carousel, &s.prefs)
	s.mu.Unlock()

	s.syncAutoplay()
}

// ToggleCategory flips the category filter and restarts the carousel on the
// new visible set.
func (s *Session) ToggleCategory(ps *ProjectService, category string) {
	s.mu.Lock()
	s.filter.Toggle(category)
	s.carousel.Reset(len(s.filter.Apply(ps.GetAll())))
	s.mu.Unlock()

	s.syncAutoplay()
}

// Subscribe attaches an autoplay stream to the session and returns its
// updates with a func to detach it. The session's ticker runs only while
// at least one stream is attached and autoplay is not paused.
func (s *Session) Subscribe() (<-chan int, func()) {
	updates, unsubscribe := s.player.Subscribe()
	s.syncAutoplay()
	return updates, func() {
		unsubscribe()
		s.syncAutoplay()
	}
}

// Streaming reports whether any autoplay stream is attached
func (s *Session) Streaming() bool {
	return s.player.Subscribers() > 0
}

// syncAutoplay starts, stops or restarts the shared ticker to match the
// current carousel, preferences and attached streams.
func (s *Session) syncAutoplay() {
	s.playMu.Lock()
	defer s.playMu.Unlock()

	s.mu.Lock()
	var key autoplayKey
	if !s.carousel.Paused() {
		key = autoplayKey{delay: s.autoplayDelayLocked(), n: s.carousel.Len, loop: s.carousel.Loop}
	}
	s.mu.Unlock()

	if key.delay <= 0 || !s.Streaming() {
		key = autoplayKey{}
	}
	if key == s.playing {
		return
	}
	s.playing = key
	s.player.Restart(context.Background(), key.delay)
}

// Step is the autoplay StepFunc for this session
func (s *Session) Step() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.carousel.Tick()
	return s.carousel.Index, moved
}

// AutoplayDelay returns the interval autoplay should tick at, or 0 when off
func (s *Session) AutoplayDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoplayDelayLocked()
}

func (s *Session) autoplayDelayLocked() time.Duration {
	if !s.carousel.Autoplay || s.prefs.ReducedMotion {
		return 0
	}
	return s.carousel.Delay
}

// View snapshots the session together with its visible projects
func (s *Session) View(ps *ProjectService) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionView{
		ID:              s.ID,
		Preferences:     s.prefs,
		Filter:          s.filter,
		Carousel:        s.carousel,
		AutoplayDelayMs: s.carousel.Delay.Milliseconds(),
		Paused:          s.carousel.Paused(),
		Categories:      ps.Categories(),
		Projects:        s.filter.Apply(ps.GetAll()),
	}
}

// SessionStore keeps sessions in memory, keyed by id
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	projects *ProjectService
	defaults ShowcaseDefaults
	now      func() time.Time
}

// NewSessionStore creates an empty store
func NewSessionStore(ps *ProjectService, defaults ShowcaseDefaults) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		projects: ps,
		defaults: defaults,
		now:      time.Now,
	}
}

// Create starts a session showing every project
func (st *SessionStore) Create() *Session {
	carousel := NewCarousel(len(st.projects.GetAll()),
		st.defaults.Loop, st.defaults.Autoplay, st.defaults.Delay)
	s := newSession(uuid.NewString(), *carousel, st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with id and marks it as recently used
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.mu.Lock()
	s.lastSeen = st.now()
	s.mu.Unlock()
	return s, nil
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// empty or unknown. created reports which happened.
func (st *SessionStore) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, err := st.Get(id); err == nil {
			return s, false
		}
	}
	return st.Create(), true
}

// Sweep evicts sessions idle for longer than idle and returns how many went.
// A session with an open autoplay stream counts as seen now.
func (st *SessionStore) Sweep(idle time.Duration) int {
	now := st.now()
	cutoff := now.Add(-idle)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		streaming := s.Streaming()
		s.mu.Lock()
		if streaming {
			s.lastSeen = now
		}
		stale := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
