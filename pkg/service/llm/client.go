package llm

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

//go:embed prompt/system.md
var systemPrompt string

// DefaultTimeout bounds a single completion call
const DefaultTimeout = 30 * time.Second

// client implements Service on top of a gollem LLM client
type client struct {
	llm     gollem.LLMClient
	timeout time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithTimeout sets the per-call completion timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.timeout = timeout
	}
}

// New creates a completion service from a gollem LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llm:     llmClient,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Complete generates a reply for the prompt text
func (c *client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	agent := gollem.New(c.llm, gollem.WithSystemPrompt(systemPrompt))

	resp, err := agent.Execute(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to execute completion")
	}

	reply := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if reply == "" {
		return "", goerr.New("completion returned no text")
	}

	return reply, nil
}
