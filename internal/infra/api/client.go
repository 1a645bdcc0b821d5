package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// エラー本文はこの長さまでしか持たない
const maxErrorBody = 2048

// Client はバックエンドREST APIのクライアント。
// 1回のリクエストで完結し、リトライはしない。
type Client struct {
	baseURL    string
	authScheme string
	http       *http.Client
	log        *logrus.Entry
}

type Options struct {
	BaseURL    string        // http://127.0.0.1:8000/api
	AuthScheme string        // Token / Bearer
	Timeout    time.Duration // 0なら10秒
	HTTPClient *http.Client  // テスト用に差し替え可
}

func NewClient(opts Options, log *logrus.Entry) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	scheme := opts.AuthScheme
	if scheme == "" {
		scheme = "Token"
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		authScheme: scheme,
		http:       hc,
		log:        log.WithField("component", "api_client"),
	}
}

// 2xxの本文をそのまま受け取るときに out に渡す
type rawBody []byte

// JSONで送ってJSONで受け取る。
// 401/403 は AuthError、通信失敗とそれ以外の2xx以外は NetworkError。
func (c *Client) doJSON(ctx context.Context, op string, method string, path string, token string, headers map[string]string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "%s: encode request", op)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrapf(err, "%s: build request", op)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", c.authScheme+" "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"op": op, "method": method, "path": path}).WithError(err).Warn("request failed")
		return usecase.NewNetworkError(op, 0, "", errors.Wrap(err, "transport"))
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.WithFields(logrus.Fields{
		"op":          op,
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := readErrorBody(resp.Body)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			reason := "rejected by backend"
			if text != "" {
				reason = text
			}
			return usecase.NewAuthError(reason)
		}
		return usecase.NewNetworkError(op, resp.StatusCode, text, nil)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return usecase.NewNetworkError(op, resp.StatusCode, "", errors.Wrap(err, "read response"))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if rb, ok := out.(*rawBody); ok {
		*rb = raw
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return usecase.NewNetworkError(op, resp.StatusCode, "", errors.Wrap(err, "decode response"))
	}
	return nil
}

func readErrorBody(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(raw))
}
