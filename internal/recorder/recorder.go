package recorder

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Row is one submission, appended to the log in this exact column order.
type Row struct {
	Timestamp time.Time
	UserID    string
	Question  string
	Answer    string
	XP        int
	Feedback  string
	Streak    int
}

func (r Row) columns() []string {
	return []string{
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.UserID,
		r.Question,
		r.Answer,
		strconv.Itoa(r.XP),
		r.Feedback,
		strconv.Itoa(r.Streak),
	}
}

// Recorder appends submission rows to an external, append-only store.
// Disabled returns a non-empty reason when recording is off; callers skip
// Record in that case and surface the reason instead.
type Recorder interface {
	Record(ctx context.Context, row Row) error
	Disabled() string
}

type disabled struct{ reason string }

// NewDisabled returns a no-op recorder carrying the reason recording is
// unavailable, so the UI can say so once instead of failing every submit.
func NewDisabled(reason string) Recorder {
	return disabled{reason: reason}
}

func (d disabled) Record(context.Context, Row) error { return nil }
func (d disabled) Disabled() string                  { return d.reason }

// Gate wraps a recorder and trips permanently on the first append failure:
// the error is kept as the disabled reason and later rows are skipped rather
// than retried.
type Gate struct {
	mu     sync.Mutex
	inner  Recorder
	reason string
}

func NewGate(inner Recorder) *Gate {
	return &Gate{inner: inner}
}

func (g *Gate) Record(ctx context.Context, row Row) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reason != "" {
		return nil
	}
	if err := g.inner.Record(ctx, row); err != nil {
		g.reason = "Recording failed: " + err.Error()
		return err
	}
	return nil
}

func (g *Gate) Disabled() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reason != "" {
		return g.reason
	}
	return g.inner.Disabled()
}
