package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"pantry-tracker/domain"
	"pantry-tracker/internal/utils"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

type (
	// CompletionClient talks to a hosted chat-completion API and returns the
	// assistant's reply text for a single user prompt.
	CompletionClient interface {
		Complete(ctx context.Context, prompt string) (string, error)
	}

	completionClient struct {
		httpClient *http.Client
		baseURL    string
		model      string
		apiKey     string
	}

	chatRequest struct {
		Model       string        `json:"model"`
		Messages    []chatMessage `json:"messages"`
		Temperature float64       `json:"temperature"`
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
)

func NewCompletionClient() CompletionClient {
	baseURL := utils.GetConfig("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := utils.GetConfig("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &completionClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		apiKey:     utils.GetConfig("OPENAI_API_KEY"),
	}
}

func (c *completionClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrCompletionKeyMissing
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCompletionAPIFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", domain.ErrCompletionAPIFailed, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCompletionAPIFailed, err)
	}
	if len(parsed.Choices) == 0 {
		return "", domain.ErrMalformedRecipeReply
	}
	return parsed.Choices[0].Message.Content, nil
}

// codeFence strips a leading ```/```json fence and a trailing ``` fence.
// Models wrap JSON replies in fences often enough that every reply goes
// through this before parsing.
var codeFence = regexp.MustCompile("^```(?:json)?\\s*|\\s*```$")

func stripCodeFence(reply string) string {
	return codeFence.ReplaceAllString(strings.TrimSpace(reply), "")
}
