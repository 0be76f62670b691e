package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Selection(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"empty config resolves to mock", Config{}, "Mock"},
		{"explicit mock", Config{Provider: "mock"}, "Mock"},
		{"unknown falls back to mock", Config{Provider: "bedrock"}, "Mock"},
		{"openai without key falls back to mock", Config{Provider: "openai"}, "Mock"},
		{"openai with key", Config{Provider: "openai", OpenAIAPIKey: "sk-test"}, "OpenAI"},
		{"ollama needs no credentials", Config{Provider: "ollama"}, "Ollama"},
		{"case insensitive", Config{Provider: "OpenAI", OpenAIAPIKey: "sk-test"}, "OpenAI"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, New(tc.cfg, log).Name())
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	log := zap.NewNop()

	p := New(Config{Provider: "openai", OpenAIAPIKey: "sk-test"}, log)
	assert.Equal(t, "gpt-4o-mini", p.Model())

	p = New(Config{Provider: "ollama", OllamaModel: "llama3.2:8b"}, log)
	assert.Equal(t, "llama3.2:8b", p.Model())
}

func TestMock_Complete(t *testing.T) {
	m := NewMock()
	assert.True(t, m.Available(context.Background()))

	out, err := m.Complete(context.Background(), CompletionParams{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	m.Response = "canned"
	out, err = m.Complete(context.Background(), CompletionParams{})
	require.NoError(t, err)
	assert.Equal(t, "canned", out)
}

func TestOpenAI_CompleteWithoutKey(t *testing.T) {
	o := NewOpenAI("", "", "")
	_, err := o.Complete(context.Background(), CompletionParams{})
	require.Error(t, err)
	assert.False(t, o.Available(context.Background()))
}
