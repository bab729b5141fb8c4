package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"inkpress/pkg/logger"
	"inkpress/pkg/models"
	"inkpress/pkg/telemetry"
)

// envelope is the response wrapper the CMS API uses: payloads under
// "data", failure details under "message" or "errors".
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// HTTPClient implements Articles and Auth against the CMS HTTP API
// using a shared fasthttp client.
type HTTPClient struct {
	base    string
	hc      *fasthttp.Client
	tokens  TokenSource
	limiter *rate.Limiter
	timeout time.Duration
}

// Option adjusts an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests. Zero rps disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewHTTPClient builds a client for the API rooted at base
// (e.g. "http://localhost:5000/api"). tokens supplies the bearer
// credential for authenticated calls and may be nil for public-only
// use.
func NewHTTPClient(base string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		base:    base,
		hc:      &fasthttp.Client{Name: "inkpress"},
		tokens:  tokens,
		timeout: 15 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do issues one request and decodes the envelope's data into out (when
// out is non-nil). All failures come back as *Error.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	if err := ctx.Err(); err != nil {
		return newError(KindNetwork, "request canceled", err)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return newError(KindNetwork, "rate limit wait canceled", err)
		}
	}

	uri := c.base + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return newError(KindUnknown, "encode request body", err)
		}
		req.SetBody(b)
	}

	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if rem := time.Until(dl); rem < timeout {
			timeout = rem
		}
	}

	start := time.Now()
	err := c.hc.DoTimeout(req, resp, timeout)
	if err != nil {
		telemetry.ObserveRequest(op, "network_error", time.Since(start))
		logger.Warn("request_failed", "op", op, "error", err)
		return newError(KindNetwork, "request failed", err)
	}

	status := resp.StatusCode()
	raw := resp.Body()
	var env envelope
	// tolerate non-JSON bodies on errors; env stays zero
	_ = json.Unmarshal(raw, &env)

	if status >= 200 && status < 300 {
		telemetry.ObserveRequest(op, "ok", time.Since(start))
		if out != nil {
			data := env.Data
			if len(data) == 0 {
				// some endpoints respond without the wrapper
				data = raw
			}
			if err := json.Unmarshal(data, out); err != nil {
				return newError(KindUnknown, "decode response", err)
			}
		}
		return nil
	}

	telemetry.ObserveRequest(op, "rejected", time.Since(start))
	msg := env.Message
	if len(env.Errors) > 0 && env.Errors[0].Message != "" {
		msg = env.Errors[0].Message
	}
	switch status {
	case fasthttp.StatusUnauthorized:
		if msg == "" {
			msg = "unauthorized"
		}
		return newError(KindUnauthorized, msg, nil)
	case fasthttp.StatusNotFound:
		if msg == "" {
			msg = "not found"
		}
		return newError(KindNotFound, msg, nil)
	case fasthttp.StatusBadRequest, fasthttp.StatusUnprocessableEntity:
		if msg == "" {
			msg = "invalid request"
		}
		return newError(KindValidation, msg, nil)
	default:
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", status)
		}
		return newError(KindUnknown, msg, nil)
	}
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

func (c *HTTPClient) ListArticles(ctx context.Context, page, limit int, f Filters) (ListResult, error) {
	q := pageQuery(page, limit)
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	var out ListResult
	err := c.do(ctx, "list_articles", fasthttp.MethodGet, "/articles", q, nil, &out)
	return out, err
}

func (c *HTTPClient) ListPublicArticles(ctx context.Context, page, limit int) (ListResult, error) {
	var out ListResult
	err := c.do(ctx, "list_public_articles", fasthttp.MethodGet, "/articles/public", pageQuery(page, limit), nil, &out)
	return out, err
}

func (c *HTTPClient) ListMyArticles(ctx context.Context, page, limit int) (ListResult, error) {
	var out ListResult
	err := c.do(ctx, "list_my_articles", fasthttp.MethodGet, "/articles/my-articles", pageQuery(page, limit), nil, &out)
	return out, err
}

func (c *HTTPClient) GetArticle(ctx context.Context, id string) (models.Article, error) {
	var out models.Article
	err := c.do(ctx, "get_article", fasthttp.MethodGet, "/articles/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *HTTPClient) CreateArticle(ctx context.Context, fields models.ArticleFields) (models.Article, error) {
	var out models.Article
	err := c.do(ctx, "create_article", fasthttp.MethodPost, "/articles", nil, fields, &out)
	return out, err
}

func (c *HTTPClient) UpdateArticle(ctx context.Context, id string, fields models.ArticleFields) (models.Article, error) {
	var out models.Article
	err := c.do(ctx, "update_article", fasthttp.MethodPut, "/articles/"+url.PathEscape(id), nil, fields, &out)
	return out, err
}

func (c *HTTPClient) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, "delete_article", fasthttp.MethodDelete, "/articles/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	err := c.do(ctx, "login", fasthttp.MethodPost, "/auth/login", nil, body, &out)
	return out, err
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (LoginResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out LoginResult
	err := c.do(ctx, "register", fasthttp.MethodPost, "/auth/register", nil, body, &out)
	return out, err
}

// Logout tells the server to drop the session. Failures are reported
// but callers are expected to clear local state regardless.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", fasthttp.MethodPost, "/auth/logout", nil, nil, nil)
}

func (c *HTTPClient) Profile(ctx context.Context) (models.Actor, error) {
	var out models.Actor
	err := c.do(ctx, "profile", fasthttp.MethodGet, "/auth/profile", nil, nil, &out)
	return out, err
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return c.do(ctx, "change_password", fasthttp.MethodPost, "/auth/change-password", nil, body, nil)
}

var (
	_ Articles = (*HTTPClient)(nil)
	_ Auth     = (*HTTPClient)(nil)
)
