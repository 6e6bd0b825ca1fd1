// Package annotate derives a summary, tags, and a confidence score from
// raw captured text by calling the Gemini generateContent API. The
// client is a plain asynchronous boundary: no retry, no caching, no
// timeout policy beyond what the context and transport impose.
package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/mwiesner/snipstash/internal/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Annotation is the structured result derived from raw text.
type Annotation struct {
	Summary    string   `json:"summary"`
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence,omitempty"`
}

// Client calls the text-analysis service.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
	log    zerolog.Logger
}

// Option adjusts client construction.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(base)
	}
}

// New creates a client for the given API key and model.
func New(apiKey, model string, log zerolog.Logger, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	c := &Client{
		http:   httpClient,
		apiKey: apiKey,
		model:  model,
		log:    log.With().Str("component", "annotate").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present. The server boundary
// turns a missing key into its own 500 before calling Annotate.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

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
	ResponseMimeType string  `json:"response_mime_type"`
	Temperature      float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Annotate sends rawText for analysis and returns the structured
// annotation. Failures map onto the error taxonomy: NETWORK for
// transport, UPSTREAM for non-200 responses, SCHEMA for responses the
// client cannot interpret.
func (c *Client) Annotate(ctx context.Context, rawText string) (*Annotation, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, errors.NewValidation("text is required")
	}
	if !c.Configured() {
		return nil, errors.NewInternal(fmt.Errorf("annotation API key is not configured"))
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(rawText)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			Temperature:      0.2,
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(&reqBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		c.log.Error().Err(err).Msg("annotation request failed")
		return nil, errors.NewNetwork(err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode()).Msg("annotation service error")
		return nil, errors.NewUpstream(resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return nil, errors.NewSchema(err.Error())
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, errors.NewSchema("response contains no candidates")
	}

	return parseAnnotation(gr.Candidates[0].Content.Parts[0].Text)
}

// parseAnnotation decodes the model's JSON payload, tolerating markdown
// code fences around it.
func parseAnnotation(raw string) (*Annotation, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var a Annotation
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, errors.NewSchema(err.Error())
	}
	if a.Summary == "" || a.Tags == nil {
		return nil, errors.NewSchema("missing summary or tags")
	}
	return &a, nil
}
