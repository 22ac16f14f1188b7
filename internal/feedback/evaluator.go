package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/thinkle/thinkle/internal/ai"
)

// Result is what every evaluation produces. XP is 1-20 on success and 0 when
// the evaluation failed, in which case Feedback carries an "Error: " message.
type Result struct {
	Feedback string
	XP       int
}

type Evaluator struct {
	provider ai.Provider
	model    string
}

func New(provider ai.Provider, model string) *Evaluator {
	return &Evaluator{provider: provider, model: model}
}

const promptTemplate = `You are a critical thinking coach. Evaluate the following answer for depth, clarity, and originality.
Question: %s
Answer: %s
Provide:
1. A short feedback sentence.
2. A numerical XP score between 1 and 20.
Respond in JSON like this:
{"feedback": "...", "xp": 12}`

// Evaluate asks the model to score an answer. It makes exactly one attempt
// and never returns an error: any failure along the way (transport, bad JSON,
// missing keys) becomes a zero-XP Result so the submit flow can always
// proceed.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer string) Result {
	prompt := fmt.Sprintf(promptTemplate, question, answer)
	text, err := e.provider.Complete(ctx, e.model, prompt)
	if err != nil {
		return errResult(err)
	}

	var payload struct {
		Feedback *string     `json:"feedback"`
		XP       json.Number `json:"xp"`
	}
	dec := json.NewDecoder(strings.NewReader(cleanModelOutput(text)))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return errResult(fmt.Errorf("unparsable reply: %w", err))
	}
	if payload.Feedback == nil {
		return errResult(errors.New(`reply missing "feedback"`))
	}
	xp, err := coerceInt(payload.XP)
	if err != nil {
		return errResult(fmt.Errorf("bad xp value: %w", err))
	}
	return Result{Feedback: *payload.Feedback, XP: xp}
}

func errResult(err error) Result {
	return Result{Feedback: fmt.Sprintf("Error: %v", err), XP: 0}
}

// Models frequently wrap JSON replies in markdown code fences.
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func coerceInt(n json.Number) (int, error) {
	if n == "" {
		return 0, errors.New(`reply missing "xp"`)
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
