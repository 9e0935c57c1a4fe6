package grok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"spacebio-be/pkg/llm"
)

const backendName = "grok"

// GrokProvider talks to the xAI API, which is OpenAI compatible. It differs
// from the OpenRouter variant only in base URL and header shape.
type GrokProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &GrokProvider{}

func NewGrokProvider(apiKey, baseURL, model string) *GrokProvider {
	if baseURL == "" {
		baseURL = "https://api.x.ai/v1"
	}
	return &GrokProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *GrokProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{
		Model:       p.model,
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	for _, o := range options {
		o(opts)
	}

	reqBody := chatRequest{
		Model:       opts.Model,
		Messages:    history,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &llm.ProviderError{Backend: backendName, Message: "marshal request", Err: err}
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &llm.ProviderError{Backend: backendName, Message: "create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &llm.ProviderError{Backend: backendName, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.ProviderError{Backend: backendName, Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.ProviderError{
			Backend: backendName,
			Message: fmt.Sprintf("status %d: %s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", &llm.ProviderError{Backend: backendName, Message: "decode response", Err: err}
	}

	if chatResp.Error != nil {
		return "", &llm.ProviderError{Backend: backendName, Message: chatResp.Error.Message}
	}

	if len(chatResp.Choices) == 0 {
		return "", &llm.ProviderError{Backend: backendName, Message: "empty choices in response"}
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (p *GrokProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
