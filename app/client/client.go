// Package client is the single point of HTTP egress to the REST backend.
package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ctxKey int

const tokenKey ctxKey = iota

// WithToken stores the access token the interceptor attaches to requests
// made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the access token stored in ctx, if any.
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

type Options struct {
	BaseURL string
	// Timeout of zero means requests wait as long as the inbound context.
	Timeout time.Duration
	Logger  *zap.Logger
	Debug   bool
}

// Client wraps a resty client bound to one backend origin.
type Client struct {
	rc  *resty.Client
	log *zap.Logger
}

func New(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetRetryCount(0).
		SetDebug(opts.Debug)
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if tok := TokenFrom(r.Context()); tok != "" {
			r.SetAuthToken(tok)
		}
		return nil
	})

	return &Client{rc: rc, log: log}
}

// Get decodes the JSON body of a GET into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request. Non-2xx responses become *APIError; nothing is
// retried.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req := c.rc.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Warn("backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "%s %s", method, path)
	}
	if resp.IsError() {
		apiErr := newAPIError(resp.StatusCode(), resp.Body())
		c.log.Debug("backend error", zap.String("method", method), zap.String("path", path), zap.Int("status", apiErr.Status), zap.String("message", apiErr.Message))
		return apiErr
	}
	return decode(resp.Body(), out)
}

// Upload sends a multipart form with one file part.
func (c *Client) Upload(ctx context.Context, method, path, field, filename string, file io.Reader, fields map[string]string, out any) error {
	req := c.rc.R().SetContext(ctx).SetMultipartFormData(fields)
	if file != nil {
		req.SetFileReader(field, filename, file)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	if resp.IsError() {
		return newAPIError(resp.StatusCode(), resp.Body())
	}
	return decode(resp.Body(), out)
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return &ShapeError{Err: err}
	}
	return nil
}
