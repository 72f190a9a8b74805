// Package vlm is the vision-language-model adapter. It speaks the
// Ollama chat API over HTTP with bounded retries, and maps free-form
// model replies onto the doctrine damage vocabulary.
package vlm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"bda-svc/internal/doctrine"
	"bda-svc/internal/domain/entity"
	"bda-svc/internal/domain/port"
)

// maxResponseSize limits the response body read to guard memory.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// DefaultBaseURL is the local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// Client calls an Ollama-compatible chat backend for damage assessment.
type Client struct {
	baseURL      string
	model        string
	systemPrompt string
	httpClient   *http.Client
	retry        RetryConfig
	logger       *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(cfg RetryConfig) ClientOption {
	return func(c *Client) { c.retry = cfg }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a VLM client for the given backend and model.
func NewClient(baseURL, model, systemPrompt string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		model:        model,
		systemPrompt: systemPrompt,
		retry:        DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // bounded wait so a dead backend cannot hang the batch
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ModelName identifies the VLM for export records.
func (c *Client) ModelName() string { return c.model }

// chatMessage is one Ollama chat message; images carry base64 payloads.
type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Assess runs one inference round trip for a detection. Errors are
// returned only for backend unavailability; replies that fail to parse
// degrade inside parseAssessment instead.
func (c *Client) Assess(ctx context.Context, det entity.Detection, prompt doctrine.Prompt) (entity.Assessment, error) {
	requestID := uuid.New().String()

	content, err := c.chatWithRetry(ctx, c.buildMessages(det, prompt))
	if err != nil {
		return entity.Assessment{}, fmt.Errorf("vlm inference for %s (%s): %w",
			filepath.Base(det.Image), det.Category, err)
	}

	a := parseAssessment(content, det, prompt.Doctrine)
	c.logger.Debug("VLM assessment",
		"request_id", requestID,
		"image", det.Image,
		"category", det.Category,
		"damage_level", a.DamageLevel,
		"confidence", a.Confidence,
		"needs_review", a.NeedsReview)
	return a, nil
}

// buildMessages assembles the chat sequence: system prompt, the cropped
// region with its detection context, then the routed report prompt.
func (c *Client) buildMessages(det entity.Detection, prompt doctrine.Prompt) []chatMessage {
	messages := make([]chatMessage, 0, 3)
	if c.systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.systemPrompt})
	}

	regionMsg := chatMessage{
		Role: "user",
		Content: fmt.Sprintf("This is a cropped object detection from the scene. Detected category: %s (detector confidence %.2f).",
			det.Category, det.Confidence),
	}
	if len(det.Crop) > 0 {
		regionMsg.Images = []string{base64.StdEncoding.EncodeToString(det.Crop)}
	}
	messages = append(messages, regionMsg)

	messages = append(messages, chatMessage{Role: "user", Content: prompt.Text})
	return messages
}

// chatWithRetry attempts the backend call with exponential backoff.
func (c *Client) chatWithRetry(ctx context.Context, messages []chatMessage) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		content, err := c.doChat(ctx, messages)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if IsFatal(err) {
			return "", err
		}

		if attempt < c.retry.MaxAttempts {
			backoff := c.retry.backoff(attempt)
			c.logger.Debug("VLM request failed, retrying",
				"attempt", attempt,
				"max_attempts", c.retry.MaxAttempts,
				"backoff", backoff,
				"error", err)

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return "", lastErr
}

// doChat executes a single HTTP round trip to the chat endpoint.
func (c *Client) doChat(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", NewFatalError(fmt.Errorf("build request body: %w", err))
	}

	url := c.baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", NewFatalError(fmt.Errorf("create HTTP request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network failures are transient.
		return "", NewTransientError(fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", NewTransientError(fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPError(resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", NewTransientError(fmt.Errorf("parse chat response: %w", err))
	}
	return parsed.Message.Content, nil
}

// classifyHTTPError decides whether an HTTP error is worth retrying.
func classifyHTTPError(statusCode int, body []byte) error {
	bodyStr := string(body)
	if len(bodyStr) > 200 {
		bodyStr = bodyStr[:200] + "..."
	}

	err := fmt.Errorf("vlm backend error (status %d): %s", statusCode, bodyStr)

	switch {
	case statusCode == http.StatusTooManyRequests:
		return NewTransientError(err)
	case statusCode >= 500:
		return NewTransientError(err)
	case statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden,
		statusCode == http.StatusBadRequest:
		return NewFatalError(err)
	default:
		return NewFatalError(err)
	}
}

var _ port.DamageAssessor = (*Client)(nil)
