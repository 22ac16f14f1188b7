package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/thinkle/thinkle/internal/ai/openai"
	"github.com/thinkle/thinkle/internal/config"
	"github.com/thinkle/thinkle/internal/feedback"
	"github.com/thinkle/thinkle/internal/questions"
	"github.com/thinkle/thinkle/internal/recorder"
	"github.com/thinkle/thinkle/internal/web"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`Thinkle - Daily deep thinking journal

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                            Port to listen on (default: 8080)
  OPENAI_API_KEY                  OpenAI API key (required for answer evaluation)
  OPENAI_BASE_URL                 Custom OpenAI API base URL (optional)
  OPENAI_MODEL                    Model used for evaluation (default: gpt-4o-mini)
  QUESTIONS_PATH                  Question dataset file (default: questions.json)
  SHEET_ID                        Google Sheet ID to record submissions to
  GOOGLE_APPLICATION_CREDENTIALS  Service account credentials JSON file
  RECORD_FILE                     Local file to record submissions to (fallback)
  USER_ID                         User identifier column value (default: user_1)
  TIMER_SECONDS                   Countdown duration (default: 300)
  COUNT_FAILED_EVALUATIONS        Count xp=0 evaluations toward streak/record (default: true)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000

Visit http://localhost:8080 after starting the server.
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("Thinkle %s\n", version)
		return
	}

	// Determine port
	port := *portFlag
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Gin setup with custom logger (skip timer-poll noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/timer") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	cfg := config.FromEnv()

	// Question dataset; a broken file degrades to error text on the page.
	qs := questions.Load(cfg.QuestionsPath)

	// Evaluation; a missing key degrades to error results per submission.
	if cfg.OpenAIKey == "" {
		zerologlog.Warn().Msg("OPENAI_API_KEY not set, answer evaluation will return errors")
	}
	provider := openai.New(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	evaluator := feedback.New(provider, cfg.Model)

	// Recording; a connect/auth failure disables it for the whole session.
	var rec recorder.Recorder
	switch {
	case cfg.SheetID != "":
		sheetsRec, err := recorder.NewSheets(context.Background(), cfg.CredentialsFile, cfg.SheetID)
		if err != nil {
			zerologlog.Error().Err(err).Msg("google sheets unavailable, recording disabled")
			rec = recorder.NewDisabled("Failed to connect to Google Sheets: " + err.Error())
		} else {
			rec = sheetsRec
		}
	case cfg.RecordFile != "":
		rec = recorder.NewFile(cfg.RecordFile)
	default:
		zerologlog.Warn().Msg("no SHEET_ID or RECORD_FILE configured, recording disabled")
		rec = recorder.NewDisabled("Recording is not configured; submissions will not be saved.")
	}

	srv := web.NewServer(qs, evaluator, recorder.NewGate(rec), web.Options{
		UserID:                 cfg.UserID,
		TimerDuration:          time.Duration(cfg.TimerSeconds) * time.Second,
		CountFailedEvaluations: cfg.CountFailedEvaluations,
	})
	srv.Register(r)

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC(), "sessions": srv.Sessions().Count()})
	})

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
