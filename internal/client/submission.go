package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"github.com/kaanoztekin99/3d-object-generation/internal/survey"
	"github.com/kaanoztekin99/3d-object-generation/internal/util"
)

// SaveRequest /save 请求体
type SaveRequest struct {
	Rows [][]string `json:"rows"`
}

// SubmissionError 网络错误或非 2xx 响应
type SubmissionError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", util.ErrSubmissionFailed, e.Err)
	}
	return fmt.Sprintf("%v: status %d: %s", util.ErrSubmissionFailed, e.StatusCode, e.Body)
}

func (e *SubmissionError) Unwrap() []error {
	if e.Err != nil {
		return []error{util.ErrSubmissionFailed, e.Err}
	}
	return []error{util.ErrSubmissionFailed}
}

// SubmissionClient 每次提交只发一个请求, 失败不重试
type SubmissionClient struct {
	mu       sync.RWMutex
	endpoint string
	http     *http.Client
}

func NewSubmissionClient(endpoint string, timeout time.Duration) *SubmissionClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SubmissionClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *SubmissionClient) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// SetEndpoint 配置热更新
func (c *SubmissionClient) SetEndpoint(endpoint string) {
	c.mu.Lock()
	c.endpoint = endpoint
	c.mu.Unlock()
}

func (c *SubmissionClient) Submit(ctx context.Context, rows []model.SubmissionRow) error {
	return c.SubmitRecords(ctx, survey.Records(rows))
}

func (c *SubmissionClient) SubmitRecords(ctx context.Context, records [][]string) error {
	jsonData, err := json.Marshal(SaveRequest{Rows: records})
	if err != nil {
		return &SubmissionError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(jsonData))
	if err != nil {
		return &SubmissionError{Err: err}
	}
	req.Header.Set("Content-Type", util.MimeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &SubmissionError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
