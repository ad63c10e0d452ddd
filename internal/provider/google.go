package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const googleBaseURL = "https://generativelanguage.googleapis.com"

type GoogleProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGoogle(baseURL, apiKey, model string) *GoogleProvider {
	if baseURL == "" {
		baseURL = googleBaseURL
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GoogleProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
	}
}

func (g *GoogleProvider) Name() string { return "google" }

func (g *GoogleProvider) ModelName() string { return g.model }

func (g *GoogleProvider) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"/v1beta/models", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &networkError{provider: "google", err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &networkError{provider: "google", err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("google", resp.StatusCode, body)
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("google: decode models: %w", err)
	}
	models := make([]string, len(result.Models))
	for i, m := range result.Models {
		models[i] = strings.TrimPrefix(m.Name, "models/")
	}
	return models, nil
}

type geminiRequest struct {
	Contents          []geminiContent  `json:"contents"`
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata,omitempty"`
}

func (g *GoogleProvider) Complete(ctx context.Context, r Request) (*Response, error) {
	system, rest := splitSystem(r.Messages)

	body := geminiRequest{}
	if system != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range rest {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		body.Contents = append(body.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}
	if r.MaxTokens > 0 {
		body.GenerationConfig = &geminiGenConfig{MaxOutputTokens: r.MaxTokens}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	// key goes in a header so it never appears in URL error text
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &networkError{provider: "google", err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &networkError{provider: "google", err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("google", resp.StatusCode, raw)
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("google: decode response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("google: response has no candidates")
	}

	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	res := &Response{Text: text.String()}
	if u := out.UsageMetadata; u != nil {
		res.Usage = &Usage{InputTokens: u.PromptTokenCount, OutputTokens: u.CandidatesTokenCount, TotalTokens: u.TotalTokenCount}
	}
	return res, nil
}
