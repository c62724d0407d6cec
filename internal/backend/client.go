package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"spikeboard/pkg/errors"
	"spikeboard/pkg/errors/ecode"
	"spikeboard/pkg/logger"
)

// screener后端的HTTP客户端。网络错误、429和5xx做指数退避重试，
// 4xx是业务错误不重试。404单独处理：用户还没存过配置是正常情况。

const backoffBase = 500 * time.Millisecond

// ErrNotFound 后端没有这条记录
var ErrNotFound = errors.WithCode(ecode.NotFoundErr, "backend record not found")

type Client struct {
	baseURL    string
	maxRetries int
	httpClient *http.Client
}

func NewClient(rawURL string, timeout time.Duration, maxRetries int) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend url: %s", rawURL)
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// do 执行一次请求并处理重试。请求体每轮重建，bytes.Reader读过一次就不能复用
func (c *Client) do(ctx context.Context, method, path string, reqBody []byte, result interface{}) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt > 0 {
			wait := backoffBase * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var body io.Reader
		if reqBody != nil {
			body = bytes.NewReader(reqBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return errors.Wrap(err, ecode.BackendErr, "build backend request")
		}
		if reqBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			logger.Warnf("backend %s %s 网络错误，第%d次: %v", method, path, attempt+1, err)
			continue
		}
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return ErrNotFound
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if result == nil || len(data) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, result); err != nil {
				return errors.Wrapf(err, ecode.BackendErr, "decode backend response for %s", path)
			}
			return nil
		case retryable(resp.StatusCode):
			lastErr = fmt.Errorf("backend status %d", resp.StatusCode)
			logger.Warnf("backend %s %s 返回%d，第%d次", method, path, resp.StatusCode, attempt+1)
			continue
		default:
			// 其他4xx带detail的业务错误，不重试
			var detail ErrorDetail
			_ = json.Unmarshal(data, &detail)
			if detail.Detail == "" {
				detail.Detail = http.StatusText(resp.StatusCode)
			}
			return errors.WithCodef(ecode.BackendErr, "backend: %s", detail.Detail)
		}
	}
	return errors.Wrapf(lastErr, ecode.BackendErr, "backend %s %s failed after %d attempts", method, path, c.maxRetries)
}

// UserGet 拉取用户配置。后端还没有这条记录时返回(nil, nil)，
// 调用方按默认配置处理
func (c *Client) UserGet(ctx context.Context, user string) (*UserRecord, error) {
	var rec UserRecord
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(user), nil, &rec)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// UserSave 全量写入用户配置
func (c *Client) UserSave(ctx context.Context, rec *UserRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, ecode.BackendErr, "encode user record")
	}
	return c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(rec.User), body, nil)
}

// ExchangesStatus 查询各交易所采集器状态
func (c *Client) ExchangesStatus(ctx context.Context) ([]ExchangeStatus, error) {
	var out []ExchangeStatus
	if err := c.do(ctx, http.MethodGet, "/status/exchanges", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SpikesStats 查询最近的检测统计
func (c *Client) SpikesStats(ctx context.Context) (*SpikeStats, error) {
	var out SpikeStats
	if err := c.do(ctx, http.MethodGet, "/status/spikes", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
