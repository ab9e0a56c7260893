package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sent "github.com/revelaction/segrel/sentence"
)

const (
	DefaultModel     = "en_core_web_sm"
	DefaultBatchSize = 32
	DefaultTimeout   = 30 * time.Second
)

// SpacyConfig configures the spaCy service client.
type SpacyConfig struct {
	BaseURL   string
	Model     string
	Timeout   time.Duration
	BatchSize int
}

// APIError is a non 2xx response of the service.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("service error (status code: %d): %s", e.StatusCode, e.Detail)
}

// SpacyClient is a Parser backed by a spaCy HTTP service exposing
// POST /parse.
type SpacyClient struct {
	client *http.Client
	config SpacyConfig
}

type parseRequest struct {
	Texts []string `json:"texts"`
	Model string   `json:"model"`
}

type parseResponse struct {
	Sentences [][]sent.Token `json:"sentences"`
}

func NewSpacyClient(cfg SpacyConfig) *SpacyClient {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &SpacyClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		config: cfg,
	}
}

func (c *SpacyClient) Parse(ctx context.Context, text string) (sent.Sentence, error) {
	sentences, err := c.ParseBatch(ctx, []string{text})
	if err != nil {
		return sent.Sentence{}, err
	}
	return sentences[0], nil
}

// ParseBatch sends the non blank texts in batches of BatchSize. Blank texts
// yield an empty sentence.
func (c *SpacyClient) ParseBatch(ctx context.Context, texts []string) ([]sent.Sentence, error) {
	sentences := make([]sent.Sentence, len(texts))

	var pending []int
	for i, text := range texts {
		sentences[i].Text = text
		if strings.TrimSpace(text) == "" {
			continue
		}
		pending = append(pending, i)
	}

	for start := 0; start < len(pending); start += c.config.BatchSize {
		end := min(start+c.config.BatchSize, len(pending))
		batch := pending[start:end]

		req := parseRequest{Model: c.config.Model, Texts: make([]string, len(batch))}
		for j, i := range batch {
			req.Texts[j] = texts[i]
		}

		resp, err := c.post(ctx, req)
		if err != nil {
			return nil, &ParseFailure{Text: req.Texts[0], Err: err}
		}

		if len(resp.Sentences) != len(batch) {
			err := fmt.Errorf("got %d parses for %d texts", len(resp.Sentences), len(batch))
			return nil, &ParseFailure{Text: req.Texts[0], Err: err}
		}

		for j, i := range batch {
			tokens := resp.Sentences[j]
			rebase(tokens)
			sentences[i].Tokens = tokens
		}
	}

	return sentences, nil
}

func (c *SpacyClient) post(ctx context.Context, data parseRequest) (*parseResponse, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: string(respBody)}
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Detail != "" {
			apiErr.Detail = errResp.Detail
		}
		return nil, apiErr
	}

	var parsed parseResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &parsed, nil
}
