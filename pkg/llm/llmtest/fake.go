// Package llmtest provides a scripted LLMProvider for tests.
package llmtest

import (
	"context"
	"sync"

	"ai-pitch-evaluator-be/pkg/llm"
)

// Call is one recorded request.
type Call struct {
	History []llm.Message
	Options llm.Options
}

// FakeProvider answers every call through Respond and records the request.
type FakeProvider struct {
	mu      sync.Mutex
	calls   []Call
	Respond func(history []llm.Message, opts llm.Options) (string, error)
}

var _ llm.LLMProvider = &FakeProvider{}

// Reply returns a provider that always answers with text.
func Reply(text string) *FakeProvider {
	return &FakeProvider{Respond: func([]llm.Message, llm.Options) (string, error) {
		return text, nil
	}}
}

// Fail returns a provider whose calls always fail with err.
func Fail(err error) *FakeProvider {
	return &FakeProvider{Respond: func([]llm.Message, llm.Options) (string, error) {
		return "", err
	}}
}

func (f *FakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{}, opts...)
	copied := make([]llm.Message, len(history))
	copy(copied, history)

	f.mu.Lock()
	f.calls = append(f.calls, Call{History: copied, Options: options})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.Respond(copied, options)
}

func (f *FakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (f *FakeProvider) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// LastCall returns the most recent call; it panics when there is none.
func (f *FakeProvider) LastCall() Call {
	calls := f.Calls()
	return calls[len(calls)-1]
}
