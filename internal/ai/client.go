// Package ai issues single-shot text requests against the OpenRouter
// chat-completion API: continuation, rewriting, and summarization. One HTTP
// call per invocation; no retries, no streaming.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is the OpenRouter chat-completions endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

	// fallbackModel is used for continuation and summaries when no
	// preferred model has been configured.
	fallbackModel = "anthropic/claude-sonnet-4"

	// rewriteModel is always used for rewriting, regardless of the
	// configured preference.
	rewriteModel = "openai/gpt-4"

	// probeModel and probeMaxTokens bound the key-validation request.
	probeModel     = "anthropic/claude-3-sonnet"
	probeMaxTokens = 10

	continueMaxTokens = 500
)

// SettingsSource provides the credential and model preference, typically
// the settings state container.
type SettingsSource interface {
	APIKey() string
	PreferredModel() string
}

// Client is a stateless request/response wrapper over the completion
// endpoint. HTTP is exported so tests can install a fake transport.
type Client struct {
	settings SettingsSource
	baseURL  string

	HTTP *http.Client
}

// New creates a client reading credentials from src. An empty baseURL
// falls back to the OpenRouter endpoint.
func New(src SettingsSource, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		settings: src,
		baseURL:  baseURL,
		HTTP:     &http.Client{},
	}
}

// ContinueText asks the model to continue the given text. Uses the
// preferred model, falling back to a fixed default.
func (c *Client) ContinueText(ctx context.Context, text string) (string, error) {
	key, err := c.requireKey()
	if err != nil {
		return "", err
	}
	prompt := "Continue the following text:\n\n" + text
	return c.chat(ctx, key, c.preferredModel(), prompt, continueMaxTokens)
}

// RewriteText asks the model to polish the given text while preserving its
// meaning. Always uses the fixed rewrite model; the preference asymmetry is
// intentional and kept.
func (c *Client) RewriteText(ctx context.Context, text string) (string, error) {
	key, err := c.requireKey()
	if err != nil {
		return "", err
	}
	prompt := "Rewrite and polish the following text, preserving its meaning:\n\n" + text
	return c.chat(ctx, key, rewriteModel, prompt, 0)
}

// GenerateSummary asks the model for a summary and key points. Uses the
// preferred model, falling back to a fixed default.
func (c *Client) GenerateSummary(ctx context.Context, text string) (string, error) {
	key, err := c.requireKey()
	if err != nil {
		return "", err
	}
	prompt := "Summarize the following text and list its key points:\n\n" + text
	return c.chat(ctx, key, c.preferredModel(), prompt, 0)
}

// ValidateAPIKey issues a minimal probe request with the given key and
// reports whether it succeeded. All errors are swallowed into false.
func (c *Client) ValidateAPIKey(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	body, err := json.Marshal(chatRequest{
		Model:     probeModel,
		Messages:  []chatMessage{{Role: "user", Content: "hello"}},
		MaxTokens: probeMaxTokens,
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

func (c *Client) requireKey() (string, error) {
	key := c.settings.APIKey()
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

func (c *Client) preferredModel() string {
	if m := c.settings.PreferredModel(); m != "" {
		return m
	}
	return fallbackModel
}

// chat performs one request and returns the trimmed text of the first
// completion choice. Transport failures are returned to the caller as-is.
func (c *Client) chat(ctx context.Context, key, model, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var upstream errorResponse
		if json.Unmarshal(respBody, &upstream) == nil {
			apiErr.Message = upstream.Error.Message
		}
		return "", apiErr
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrMalformedResponse
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// --- wire types ---

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
