package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	OpenAIKey       string
	OpenAIBaseURL   string
	Model           string
	QuestionsPath   string
	SheetID         string
	CredentialsFile string
	RecordFile      string
	UserID          string
	TimerSeconds    int
	// CountFailedEvaluations controls whether a failed evaluation (xp=0)
	// still counts as a completed submission: streak increments and a row
	// is recorded. Defaults to true, matching the historical behavior.
	CountFailedEvaluations bool
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	c.Model = getenv("OPENAI_MODEL", "gpt-4o-mini")
	c.QuestionsPath = getenv("QUESTIONS_PATH", "questions.json")
	c.SheetID = os.Getenv("SHEET_ID")
	c.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	c.RecordFile = os.Getenv("RECORD_FILE")
	c.UserID = getenv("USER_ID", "user_1")
	c.TimerSeconds = getenvInt("TIMER_SECONDS", 300)
	c.CountFailedEvaluations = getenv("COUNT_FAILED_EVALUATIONS", "true") == "true"
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
