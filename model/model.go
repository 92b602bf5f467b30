// Package model defines the provider-agnostic abstraction for the optional
// language-model-based enhancers. Providers (OpenAI, Anthropic) implement
// the Model interface so the enhance package remains decoupled from vendor
// SDKs. The surface is deliberately synchronous single-completion: the
// enhanced intent extractor and clarifier each send one prompt and read one
// text answer, so streaming and tool calling are out of scope.
package model

import (
	"context"
	"fmt"

	"github.com/tourmesh/tourmesh/core"
)

// Request captures the normalized model input: an instruction block plus an
// ordered conversation window.
type Request struct {
	System      string      `json:"system"`
	Turns       []core.Turn `json:"turns"`
	Temperature float64     `json:"temperature,omitempty"`
	MaxTokens   int64       `json:"max_tokens,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", ...
}

// Model is the minimal interface required by the enhance package.
type Model interface {
	// Complete returns the model's text answer for the request.
	Complete(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests. Canned
// completions are keyed by the content of the last turn.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input.
func (m *MockModel) AddResponse(input, response string) { m.responses[input] = response }

// Fail makes every subsequent Complete call return err.
func (m *MockModel) Fail(err error) { m.err = err }

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if len(req.Turns) == 0 {
		return "", fmt.Errorf("no turns provided")
	}
	input := req.Turns[len(req.Turns)-1].Content
	if resp, ok := m.responses[input]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", input), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
