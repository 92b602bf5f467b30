// Package enhance contains the language-model-based implementations of the
// core.IntentExtractor and core.Clarifier contracts. Both are capability
// equivalents of the heuristic path and both fail closed: any provider
// error, timeout or unparseable answer surfaces as an ordinary error that
// the orchestrator converts into a silent fallback to the pattern path.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tourmesh/tourmesh/core"
	"github.com/tourmesh/tourmesh/model"
)

// defaultWindow is the number of trailing turns offered as context.
const defaultWindow = 5

const extractorSystem = `You extract travel intent from a user message.
Reply with ONLY a JSON object, no prose, of the shape:
{"place": "<place name or empty string>", "needs_weather": <bool>, "needs_places": <bool>}
"place" is the location the user is asking about, title-cased, or "" if none
is identifiable from the message or the prior conversation.`

const clarifierSystem = `You are a travel assistant. The user's message does not
name a destination. Using the prior conversation for context, reply with one
short, friendly question that helps the user pick or confirm a destination.
Reply with the question only.`

// Options configure the enhanced extractor and clarifier.
type Options struct {
	// Window bounds how many trailing history turns accompany the prompt.
	Window int
}

// ModelExtractor derives an Intent from a structured model prompt.
type ModelExtractor struct {
	model model.Model
	opts  Options
}

// NewModelExtractor wraps a model as a core.IntentExtractor.
func NewModelExtractor(m model.Model, optFns ...func(o *Options)) *ModelExtractor {
	opts := Options{Window: defaultWindow}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ModelExtractor{model: m, opts: opts}
}

// Extract implements core.IntentExtractor. The model's answer must be a
// strict JSON object matching the Intent shape.
func (e *ModelExtractor) Extract(ctx context.Context, text string, history []core.Turn) (core.Intent, error) {
	turns := append(core.CloneHistory(core.Window(history, e.opts.Window)), core.UserTurn(text))
	answer, err := e.model.Complete(ctx, model.Request{System: extractorSystem, Turns: turns})
	if err != nil {
		return core.Intent{}, fmt.Errorf("model extraction: %w", err)
	}
	return parseIntent(answer)
}

// parseIntent decodes the model answer, tolerating markdown code fences.
func parseIntent(answer string) (core.Intent, error) {
	payload := strings.TrimSpace(answer)
	payload = strings.TrimPrefix(payload, "```json")
	payload = strings.TrimPrefix(payload, "```")
	payload = strings.TrimSuffix(payload, "```")
	payload = strings.TrimSpace(payload)

	var out core.Intent
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return core.Intent{}, fmt.Errorf("decode intent answer: %w", err)
	}
	out.Place = strings.TrimSpace(out.Place)
	return out, nil
}

// ModelClarifier produces a short context-aware clarification question.
type ModelClarifier struct {
	model model.Model
	opts  Options
}

// NewModelClarifier wraps a model as a core.Clarifier.
func NewModelClarifier(m model.Model, optFns ...func(o *Options)) *ModelClarifier {
	opts := Options{Window: defaultWindow}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ModelClarifier{model: m, opts: opts}
}

// Respond implements core.Clarifier. The answer is used verbatim by the
// orchestrator, so an empty answer is reported as an error.
func (c *ModelClarifier) Respond(ctx context.Context, text string, history []core.Turn) (string, error) {
	turns := append(core.CloneHistory(core.Window(history, c.opts.Window)), core.UserTurn(text))
	answer, err := c.model.Complete(ctx, model.Request{System: clarifierSystem, Turns: turns})
	if err != nil {
		return "", fmt.Errorf("model clarification: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("model clarification: empty answer")
	}
	return answer, nil
}
