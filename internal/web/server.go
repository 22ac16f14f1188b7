package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/thinkle/thinkle/internal/feedback"
	"github.com/thinkle/thinkle/internal/questions"
	"github.com/thinkle/thinkle/internal/recorder"
	"github.com/thinkle/thinkle/internal/session"
)

//go:embed templates
var templateFS embed.FS

const sessionCookie = "thinkle_session"

// Evaluator is what the submit handler needs from the feedback client.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string) feedback.Result
}

type Options struct {
	UserID        string
	TimerDuration time.Duration
	// CountFailedEvaluations keeps the historical behavior where a failed
	// evaluation (xp=0) still increments the streak and appends a row.
	CountFailedEvaluations bool
	// Now is overridable for tests.
	Now func() time.Time
}

// Server renders the journaling page and dispatches its three user actions:
// Start, Submit, and the periodic timer poll.
type Server struct {
	sessions  *session.Manager
	questions *questions.Set
	evaluator Evaluator
	recorder  recorder.Recorder
	opts      Options
}

func NewServer(qs *questions.Set, ev Evaluator, rec recorder.Recorder, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TimerDuration <= 0 {
		opts.TimerDuration = 5 * time.Minute
	}
	if opts.UserID == "" {
		opts.UserID = "user_1"
	}
	return &Server{
		sessions:  session.NewManager(),
		questions: qs,
		evaluator: ev,
		recorder:  rec,
		opts:      opts,
	}
}

func (s *Server) Sessions() *session.Manager { return s.sessions }

func (s *Server) Register(r *gin.Engine) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)
	r.GET("/", s.handleIndex)
	r.POST("/start", s.handleStart)
	r.POST("/submit", s.handleSubmit)
	r.GET("/api/timer", s.handleTimer)
}

// session resolves the visitor's session from the cookie, creating one (and
// selecting today's question, once) on first contact.
func (s *Server) session(c *gin.Context) *session.Session {
	if token, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(token); ok {
			return sess
		}
	}
	q, theme := s.questions.SelectDaily(s.opts.Now())
	sess := s.sessions.Create(q, theme)
	c.SetCookie(sessionCookie, sess.Token, 0, "/", "", false, true)
	return sess
}

type pageView struct {
	Theme          string
	Question       string
	Started        bool
	TimerDisplay   string
	TimeUp         bool
	Refresh        bool
	Draft          string
	Warning        string
	Feedback       string
	LastXP         int
	XPPercent      int
	Failed         bool
	Submitted      bool
	XPTotal        int
	Streak         int
	RecorderNotice string
}

func (s *Server) handleIndex(c *gin.Context) {
	sess := s.session(c)
	snap := sess.Snapshot()
	remaining := sess.Remaining(s.opts.Now(), s.opts.TimerDuration)
	secs := int(remaining.Seconds())

	view := pageView{
		Theme:          snap.Theme,
		Question:       snap.Question,
		Started:        snap.Started,
		TimerDisplay:   fmt.Sprintf("%02d:%02d", secs/60, secs%60),
		TimeUp:         snap.Started && secs == 0,
		Refresh:        snap.Started && secs > 0,
		Draft:          snap.DraftAnswer,
		Feedback:       snap.LastFeedback,
		LastXP:         snap.LastXP,
		XPPercent:      snap.LastXP * 100 / 20,
		Failed:         snap.Submitted && snap.LastXP == 0,
		Submitted:      snap.Submitted,
		XPTotal:        snap.XPTotal,
		Streak:         snap.Streak,
		RecorderNotice: s.recorder.Disabled(),
	}
	if c.Query("warn") == "empty" {
		view.Warning = "Please write something before submitting."
	}
	c.HTML(http.StatusOK, "index.html", view)
}

func (s *Server) handleStart(c *gin.Context) {
	sess := s.session(c)
	sess.Start(s.opts.Now())
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleSubmit(c *gin.Context) {
	sess := s.session(c)
	answer := c.PostForm("answer")
	sess.SetDraft(answer)

	// Local validation only: no state change, no API call, no record.
	if strings.TrimSpace(answer) == "" {
		c.Redirect(http.StatusSeeOther, "/?warn=empty")
		return
	}

	snap := sess.Snapshot()
	res := s.evaluator.Evaluate(c.Request.Context(), snap.Question, answer)

	if res.XP == 0 && !s.opts.CountFailedEvaluations {
		sess.SetLastResult(res.Feedback, 0)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	streak := sess.ApplySubmission(res.XP, res.Feedback)

	if s.recorder.Disabled() == "" {
		row := recorder.Row{
			Timestamp: s.opts.Now(),
			UserID:    s.opts.UserID,
			Question:  snap.Question,
			Answer:    answer,
			XP:        res.XP,
			Feedback:  res.Feedback,
			Streak:    streak,
		}
		if err := s.recorder.Record(c.Request.Context(), row); err != nil {
			zerologlog.Error().Err(err).Msg("record submission")
		}
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleTimer(c *gin.Context) {
	sess := s.session(c)
	snap := sess.Snapshot()
	remaining := sess.Remaining(s.opts.Now(), s.opts.TimerDuration)
	c.JSON(http.StatusOK, gin.H{
		"started":   snap.Started,
		"remaining": int(remaining.Seconds()),
	})
}
