// Package openai provides the LLM client behind the describe command.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/hexfield/rulecore/internal/infrastructure/config"
)

const describePrompt = `You are a technical writer for a turn-based strategy game.
You are given a plain-text dump of rule definitions from a ruleset document:
terrain tile types with their capability flags, movement and work costs,
climate bands, production recipes, resource tables, and configuration options.

Write a short prose summary a mod author could put in a changelog or README.
Mention notable capabilities (water, forest, elevation), unusual costs, and
what each tile type produces. Do not invent rules that are not in the dump.
Return plain text only, no markup.`

// Client generates prose summaries of parsed rulesets using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	client := openai.NewClient(cfg.APIKey)

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Describe summarizes the given rule dump as prose.
func (c *Client) Describe(ctx context.Context, dump string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: describePrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: dump,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
