package session

import (
	"sync"
	"time"
)

// Session holds one visitor's in-memory journaling state. It lives for the
// browser session and is never persisted: XP and streak reset when the
// process restarts. The daily question is fixed at creation so it does not
// change mid-session even when the wall-clock date ticks over.
type Session struct {
	Token     string
	CreatedAt time.Time

	mu           sync.Mutex
	question     string
	theme        string
	started      bool
	startTime    time.Time
	draftAnswer  string
	xpTotal      int
	streak       int
	lastFeedback string
	lastXP       int
	submitted    bool
}

// State is a copy-out snapshot for rendering.
type State struct {
	Question     string
	Theme        string
	Started      bool
	StartTime    time.Time
	DraftAnswer  string
	XPTotal      int
	Streak       int
	LastFeedback string
	LastXP       int
	Submitted    bool
}

// Start moves the session into the started state and arms the timer. Once
// started, a session stays started; calling Start again is a no-op.
func (s *Session) Start(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.startTime = now
	s.draftAnswer = ""
}

// SetDraft stores the latest edit of the answer box.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draftAnswer = text
}

// ApplySubmission credits a completed submission: XP accumulates and the
// streak counts one more completed answer. A zero xp (failed evaluation)
// still counts when the caller decides it should. Returns the streak after
// the increment, which is what gets recorded.
func (s *Session) ApplySubmission(xp int, feedback string) (streak int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xpTotal += xp
	s.streak++
	s.lastFeedback = feedback
	s.lastXP = xp
	s.submitted = true
	return s.streak
}

// SetLastResult surfaces an evaluation outcome without counting it as a
// completed submission. Used when failed evaluations are configured not to
// count.
func (s *Session) SetLastResult(feedback string, xp int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFeedback = feedback
	s.lastXP = xp
	s.submitted = true
}

// Remaining reports the countdown left on the advisory timer. Before Start
// has run it reports the full duration. It never goes negative; at zero the
// answer stays submittable, the timer does not enforce anything.
func (s *Session) Remaining(now time.Time, duration time.Duration) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startTime.IsZero() {
		return duration
	}
	remaining := duration - now.Sub(s.startTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Question:     s.question,
		Theme:        s.theme,
		Started:      s.started,
		StartTime:    s.startTime,
		DraftAnswer:  s.draftAnswer,
		XPTotal:      s.xpTotal,
		Streak:       s.streak,
		LastFeedback: s.lastFeedback,
		LastXP:       s.lastXP,
		Submitted:    s.submitted,
	}
}
