package questions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSelectDailyDeterministic(t *testing.T) {
	s := &Set{Weeks: []Week{{Theme: "Logic", Questions: []string{"a", "b", "c"}}}}
	date := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	q1, th1 := s.SelectDaily(date)
	q2, th2 := s.SelectDaily(date)
	if q1 != q2 || th1 != th2 {
		t.Fatalf("selection not deterministic: (%q,%q) vs (%q,%q)", q1, th1, q2, th2)
	}
}

func TestSelectDailyUsesOrdinalDayOfYear(t *testing.T) {
	qs := []string{"q0", "q1", "q2", "q3", "q4", "q5", "q6"}
	s := &Set{Weeks: []Week{{Theme: "Logic", Questions: qs}}}

	// Jan 1 is ordinal day 1, so the index is 1 mod 7 = 1, not 0.
	jan1 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	q, _ := s.SelectDaily(jan1)
	if q != "q1" {
		t.Fatalf("Jan 1 should select q1, got %q", q)
	}

	// Jan 7 is ordinal day 7, 7 mod 7 = 0.
	jan7 := time.Date(2023, 1, 7, 0, 0, 0, 0, time.UTC)
	q, _ = s.SelectDaily(jan7)
	if q != "q0" {
		t.Fatalf("Jan 7 should select q0, got %q", q)
	}
}

func TestSelectDailyEmptyQuestionsKeepsTheme(t *testing.T) {
	s := &Set{Weeks: []Week{{Theme: "Real Theme", Questions: nil}}}
	q, th := s.SelectDaily(time.Now())
	if q != SentinelQuestion {
		t.Fatalf("expected sentinel question, got %q", q)
	}
	if th != "Real Theme" {
		t.Fatalf("expected the week's real theme, got %q", th)
	}
}

func TestSelectDailyNoWeeks(t *testing.T) {
	s := &Set{}
	q, th := s.SelectDaily(time.Now())
	if q != SentinelQuestion {
		t.Fatalf("expected sentinel question, got %q", q)
	}
	if th != SentinelTheme {
		t.Fatalf("expected sentinel theme, got %q", th)
	}
}

func TestLoadWeeksShape(t *testing.T) {
	path := writeFile(t, `{"weeks": [{"theme": "Logic", "questions": ["a", "b"]}]}`)
	s := Load(path)
	if len(s.Weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(s.Weeks))
	}
	if s.Weeks[0].Theme != "Logic" || len(s.Weeks[0].Questions) != 2 {
		t.Fatalf("unexpected week: %+v", s.Weeks[0])
	}
}

func TestLoadFlatShape(t *testing.T) {
	path := writeFile(t, `{"questions": ["a", "b", "c"]}`)
	s := Load(path)
	if len(s.Weeks) != 1 {
		t.Fatalf("flat dataset should become a single week, got %d weeks", len(s.Weeks))
	}
	if len(s.Weeks[0].Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(s.Weeks[0].Questions))
	}
	// No theme in the flat shape; the success path falls back to "Theme".
	_, th := s.SelectDaily(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	if th != "Theme" {
		t.Fatalf("expected fallback theme, got %q", th)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.json"))
	q, th := s.SelectDaily(time.Now())
	if !strings.HasPrefix(q, "Failed to load questions") {
		t.Fatalf("expected load error text as question, got %q", q)
	}
	if q != th {
		t.Fatalf("question and theme should carry the same error text, got %q / %q", q, th)
	}
}

func TestLoadUnparsableFile(t *testing.T) {
	path := writeFile(t, `{"weeks": [`)
	s := Load(path)
	q, _ := s.SelectDaily(time.Now())
	if !strings.HasPrefix(q, "Failed to parse questions") {
		t.Fatalf("expected parse error text as question, got %q", q)
	}
}

func TestLoadRealDataset(t *testing.T) {
	s := Load(filepath.Join("..", "..", "questions.json"))
	q, th := s.SelectDaily(time.Now())
	if q == SentinelQuestion || strings.HasPrefix(q, "Failed") {
		t.Fatalf("bundled dataset should always yield a question, got %q", q)
	}
	if th == "" || th == SentinelTheme {
		t.Fatalf("bundled dataset should have a theme, got %q", th)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}
