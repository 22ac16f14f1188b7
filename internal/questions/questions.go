package questions

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const (
	SentinelQuestion = "No question available"
	SentinelTheme    = "No theme available"
)

// Week groups a theme with its ordered question list.
type Week struct {
	Theme     string   `json:"theme"`
	Questions []string `json:"questions"`
}

// Set is the immutable question dataset, loaded once at startup.
type Set struct {
	Weeks []Week

	// loadErr holds a user-displayable message when the dataset file was
	// missing or unparsable. Selection then returns it instead of crashing
	// the page.
	loadErr string
}

type dataset struct {
	Weeks     []Week   `json:"weeks"`
	Questions []string `json:"questions"`
}

// Load reads the question dataset from path. It accepts both the
// {"weeks": [...]} shape and the flat {"questions": [...]} variant, which
// becomes a single week without a theme. Load never fails: a broken dataset
// yields a Set whose selection surfaces the error text.
func Load(path string) *Set {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Set{loadErr: fmt.Sprintf("Failed to load questions: %v", err)}
	}
	var d dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return &Set{loadErr: fmt.Sprintf("Failed to parse questions: %v", err)}
	}
	if len(d.Weeks) == 0 && len(d.Questions) > 0 {
		return &Set{Weeks: []Week{{Questions: d.Questions}}}
	}
	return &Set{Weeks: d.Weeks}
}

// SelectDaily picks the question of the day: week index 0 (rotating across
// weeks by date is a possible extension, not implemented), question index
// dayOfYear mod len(questions). Day of year is the 1-based ordinal, so
// Jan 1 maps to index 1 mod n. Deterministic for a given date.
func (s *Set) SelectDaily(date time.Time) (question, theme string) {
	if s.loadErr != "" {
		return s.loadErr, s.loadErr
	}
	const weekIndex = 0
	if len(s.Weeks) == 0 || weekIndex >= len(s.Weeks) {
		return SentinelQuestion, SentinelTheme
	}
	week := s.Weeks[weekIndex]
	if len(week.Questions) == 0 {
		return SentinelQuestion, themeOr(week.Theme, SentinelTheme)
	}
	index := date.YearDay() % len(week.Questions)
	return week.Questions[index], themeOr(week.Theme, "Theme")
}

func themeOr(theme, def string) string {
	if theme == "" {
		return def
	}
	return theme
}
