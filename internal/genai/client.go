// Package genai calls the generative-text backend that powers query
// analysis and title generation. One request/response per call, no
// retries, no streaming; responses are validated against the expected
// shape at this boundary.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hassaancode/CineSage/internal/config"
)

var (
	ErrAPIKeyMissing     = errors.New("generative backend API key is not configured")
	ErrBackendError      = errors.New("generative backend error")
	ErrMalformedResponse = errors.New("malformed response from generative backend")
)

// Client is a client for the generative-text backend.
type Client struct {
	httpClient *http.Client
	config     config.GenAIConfig
	logger     zerolog.Logger
}

// NewClient creates a new generative backend client.
func NewClient(cfg config.GenAIConfig, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "genai").Logger(),
	}
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// generateRequest is the request body for a structured generation call.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

// generateResponse is the response body of a generation call.
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// complete sends a prompt to the backend and unmarshals the structured
// JSON text of the first candidate into result.
func (c *Client) complete(ctx context.Context, prompt string, result interface{}) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.config.BaseURL, c.config.Model, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var response generateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		if response.Error != nil && response.Error.Message != "" {
			return fmt.Errorf("%w: %s", ErrBackendError, response.Error.Message)
		}
		return fmt.Errorf("%w: status %d", ErrBackendError, resp.StatusCode)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	text := response.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}
