package ai

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ibanezbetes/trinity-sub010/internal/common/config"
	"github.com/ibanezbetes/trinity-sub010/internal/common/errors"
	"github.com/ibanezbetes/trinity-sub010/internal/common/httpclient"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
)

// maxResponseSize limits the model response body to prevent memory exhaustion.
const maxResponseSize = 1 << 20 // 1MB

// Client calls the generative model's inference endpoint.
type Client struct {
	cfg    config.ModelConfig
	http   *httpclient.Client
	logger logger.Logger
}

// NewClient validates the model configuration and builds a client. A missing
// API key or base URL fails fast here, before any query is accepted.
func NewClient(cfg config.ModelConfig, log logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigurationError("model api key is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.NewConfigurationError("model base url is required")
	}

	return &Client{
		cfg:  cfg,
		http: httpclient.New(cfg.GetTimeout()),
		logger: log.With(map[string]interface{}{
			"component": "model-client",
			"model":     cfg.Name,
		}),
	}, nil
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int      `json:"max_new_tokens"`
	Temperature    float64  `json:"temperature"`
	ReturnFullText bool     `json:"return_full_text"`
	Stop           []string `json:"stop,omitempty"`
}

type inferenceResponse struct {
	GeneratedText string `json:"generated_text"`
}

// ClassifyIntent sends the query embedded in the instructional template and
// returns the raw generated text. Transient failures are retried with
// exponential backoff; the returned error carries enough typed information
// for the orchestrator's failure classification.
func (c *Client) ClassifyIntent(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs: BuildPrompt(query),
		Parameters: inferenceParameters{
			MaxNewTokens:   c.cfg.MaxTokens,
			Temperature:    0.1,
			ReturnFullText: false,
			Stop:           []string{"</s>", "\n\n"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	url := c.cfg.BaseURL + "/" + c.cfg.Name

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", errors.NewTimeoutError("model", ctx.Err())
			}
		}

		text, err := c.doRequest(ctx, url, body)
		if err == nil {
			return text, nil
		}

		if ctx.Err() != nil || stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
			return "", errors.NewTimeoutError("model", err)
		}

		lastErr = err

		// 4xx statuses other than 429 are not transient; stop retrying.
		var svcErr *errors.ServiceError
		if stderrors.As(err, &svcErr) && !svcErr.Retryable {
			break
		}
	}

	c.logger.Error("model call failed", map[string]interface{}{
		"error":    lastErr.Error(),
		"attempts": c.cfg.MaxRetries + 1,
	})
	return "", lastErr
}

func (c *Client) doRequest(ctx context.Context, url string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.NewTransportError("model", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return "", errors.NewUpstreamStatusError("model", resp.StatusCode)
	}

	var results []inferenceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&results); err != nil {
		return "", errors.NewTransportError("model", fmt.Errorf("decode inference response: %w", err))
	}
	if len(results) == 0 {
		return "", errors.NewTransportError("model", fmt.Errorf("empty inference response"))
	}

	return results[0].GeneratedText, nil
}
