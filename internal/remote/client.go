package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/lesson-shop/internal/catalog"
)

const defaultTimeout = 30 * time.Second

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lessons service returned %d: %s", e.Status, e.Body)
}

// Client talks to the lessons service over HTTP. Requests are not retried;
// a failure is reported to the caller and retry is a manual user action.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) FetchLessons(ctx context.Context, sort, dir string) ([]catalog.Lesson, error) {
	q := url.Values{}
	q.Set("sort", sort)
	q.Set("dir", dir)
	return c.getLessons(ctx, "/lessons", q)
}

func (c *Client) SearchLessons(ctx context.Context, query, sort, dir string) ([]catalog.Lesson, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("sort", sort)
	q.Set("dir", dir)
	return c.getLessons(ctx, "/search", q)
}

func (c *Client) getLessons(ctx context.Context, path string, q url.Values) ([]catalog.Lesson, error) {
	body, err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	lessons, err := decodeListing(body)
	if err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return lessons, nil
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/orders", payload)
	return err
}

func (c *Client) UpdateSpaces(ctx context.Context, lessonID string, spaces int) error {
	payload, err := json.Marshal(struct {
		Spaces int `json:"spaces"`
	}{Spaces: spaces})
	if err != nil {
		return fmt.Errorf("marshal spaces update: %w", err)
	}
	_, err = c.do(ctx, http.MethodPut, "/lessons/"+url.PathEscape(lessonID), payload)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("non-success response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	return respBody, nil
}

// decodeListing accepts both listing shapes the contract allows: a bare
// lesson array or an {items, total} envelope.
func decodeListing(data []byte) ([]catalog.Lesson, error) {
	var lessons []catalog.Lesson
	if err := json.Unmarshal(data, &lessons); err == nil {
		return lessons, nil
	}

	var envelope struct {
		Items []catalog.Lesson `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}
