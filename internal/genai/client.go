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

	"github.com/alebedeva/cardforge/internal/metrics"
	"github.com/alebedeva/cardforge/internal/moderation"
)

// ErrExternalService marks generation failures coming from the remote API or
// the transport. Callers surface a retry-suggesting message and leave their
// own state untouched; there is no automatic retry.
var ErrExternalService = errors.New("generation service failure")

type TextRequest struct {
	Occasion string `json:"occasion"`
	Prompt   string `json:"prompt"`
	Tone     string `json:"tone"`
}

type TextResult struct {
	FrontText  string `json:"front_text"`
	InsideText string `json:"inside_text"`
}

type ImageRequest struct {
	Occasion string `json:"occasion"`
	Style    string `json:"style"`
	Prompt   string `json:"prompt"`
}

type RefineRequest struct {
	PreviousResponseID string `json:"previous_response_id"`
	RefinementPrompt   string `json:"refinement_prompt"`
}

// ImageResult carries the rendered image plus the opaque response id used to
// chain a later refinement request.
type ImageResult struct {
	ImageURL   string `json:"image_url"`
	ResponseID string `json:"response_id"`
}

// Client calls the external text/image generation API. Every request passes
// the content policy before any network I/O happens.
type Client struct {
	baseURL    string
	apiKey     string
	policy     moderation.Policy
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration, policy moderation.Policy) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		policy:  policy,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) GenerateText(ctx context.Context, req TextRequest) (*TextResult, error) {
	if err := c.policy.Check(req.Prompt); err != nil {
		metrics.PolicyRejectionsTotal.Inc()
		return nil, err
	}

	var result TextResult
	if err := c.post(ctx, "/v1/card-text", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	if err := c.policy.Check(req.Prompt); err != nil {
		metrics.PolicyRejectionsTotal.Inc()
		return nil, err
	}

	var result ImageResult
	if err := c.post(ctx, "/v1/card-image", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RefineImage chains a refinement onto a previous generation via its
// response id.
func (c *Client) RefineImage(ctx context.Context, req RefineRequest) (*ImageResult, error) {
	if err := c.policy.Check(req.RefinementPrompt); err != nil {
		metrics.PolicyRejectionsTotal.Inc()
		return nil, err
	}
	if req.PreviousResponseID == "" {
		return nil, fmt.Errorf("%w: missing previous response id", ErrExternalService)
	}

	var result ImageResult
	if err := c.post(ctx, "/v1/card-image/refine", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.GenerationFailuresTotal.Inc()
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GenerationFailuresTotal.Inc()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrExternalService, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		metrics.GenerationFailuresTotal.Inc()
		return fmt.Errorf("%w: failed to decode response: %v", ErrExternalService, err)
	}
	return nil
}
