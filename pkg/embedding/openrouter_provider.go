package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenRouterProvider implements EmbeddingProvider against the OpenRouter
// embeddings endpoint (OpenAI shape: {model, input} -> {data:[{embedding}]}).
type OpenRouterProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenRouterProvider(apiKey, baseURL, model string) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if model == "" {
		model = "openai/text-embedding-3-small"
	}
	return &OpenRouterProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenRouterProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Model: p.model,
		Input: Truncate(text),
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &Error{Backend: "openrouter", Message: "marshal request", Err: err}
	}

	endpoint := fmt.Sprintf("%s/embeddings", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &Error{Backend: "openrouter", Message: "create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	req.Header.Set("HTTP-Referer", "http://localhost:8000")
	req.Header.Set("X-Title", "SpaceBio Platform")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &Error{Backend: "openrouter", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Backend: "openrouter", Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Backend: "openrouter",
			Message: fmt.Sprintf("status %d: %s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(bodyBytes, &embResp); err != nil {
		return nil, &Error{Backend: "openrouter", Message: "decode response", Err: err}
	}

	if len(embResp.Data) == 0 {
		return nil, &Error{Backend: "openrouter", Message: "empty data in response"}
	}

	return embResp.Data[0].Embedding, nil
}
