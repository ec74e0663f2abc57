// Package ai generates tweet content through an OpenAI-compatible
// chat-completions API. OpenAI and DeepSeek are both supported; DeepSeek
// exposes the same wire format at a different base URL.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shinz/internal/domain"
)

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"

	openAIBaseURL   = "https://api.openai.com/v1"
	deepSeekBaseURL = "https://api.deepseek.com"

	defaultOpenAIModel   = "gpt-4o-mini"
	defaultDeepSeekModel = "deepseek-chat"
)

// Config selects the provider and credentials for the generator.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// Client calls a chat-completions endpoint with the ShinZ persona.
type Client struct {
	apiKey    string
	model     string
	baseURL   string
	character domain.Character
	http      *http.Client
}

// NewClient creates a content generator for the configured provider.
// Empty model and base URL fall back to the provider's defaults.
func NewClient(cfg Config, character domain.Character) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai: api key is required")
	}

	model := cfg.Model
	baseURL := cfg.BaseURL
	switch strings.ToLower(cfg.Provider) {
	case ProviderDeepSeek:
		if model == "" {
			model = defaultDeepSeekModel
		}
		if baseURL == "" {
			baseURL = deepSeekBaseURL
		}
	case ProviderOpenAI, "":
		if model == "" {
			model = defaultOpenAIModel
		}
		if baseURL == "" {
			baseURL = openAIBaseURL
		}
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", cfg.Provider)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey:    cfg.APIKey,
		model:     model,
		baseURL:   strings.TrimRight(baseURL, "/"),
		character: character,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate builds the persona prompt for the request and returns the
// model's tweet text, trimmed.
func (c *Client) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(c.character)},
			{Role: "user", Content: userPrompt(req)},
		},
		Temperature: 0.7,
		MaxTokens:   220,
	})
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ai: api %d: %s", resp.StatusCode, string(text))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
