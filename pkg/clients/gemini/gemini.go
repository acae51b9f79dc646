package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ayurtrace/regulator/internal/config"
)

// Client defines the text-generation capability the drafting workflows
// consume. The returned text is used verbatim; callers never parse it.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates a configured Gemini client.
func NewClient(cfg config.GeminiConfig) Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	client := resty.New().
		SetBaseURL(base).
		SetHeader("x-goog-api-key", cfg.APIKey).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &geminiClient{httpClient: client, model: cfg.Model}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))

	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini api error: %s", resp.String())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	var sb strings.Builder
	for _, p := range respBody.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response from ai")
	}
	return text, nil
}
