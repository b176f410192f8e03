package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

const (
	// DefaultTimeout bounds each page request.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxPages caps a single fetch against a misbehaving provider.
	DefaultMaxPages = 1000
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 32 << 20
	// maxErrorBodyBytes caps the body carried by a ProviderError.
	maxErrorBodyBytes = 1 << 20
)

// Endpoint describes a provider list endpoint and how it paginates.
// Paths are dotted ("paging.next.after") and address nested objects.
type Endpoint struct {
	URL    string
	Method string
	// Query holds fixed query parameters.
	Query url.Values
	// Body holds fixed JSON body fields (POST only).
	Body    map[string]any
	Headers map[string]string

	// CursorParam names the query (GET) or body (POST) field carrying the cursor.
	CursorParam string
	// PageSizeParam and PageSize set the requested page size.
	PageSizeParam string
	PageSize      int

	// ResultsPath locates the record array in a page.
	ResultsPath string
	// HasMorePath locates a boolean "more pages" flag. When empty, the
	// presence of a next cursor alone decides.
	HasMorePath string
	// NextCursorPath locates the next cursor.
	NextCursorPath string
}

// Fetcher follows an Endpoint's cursors until the provider reports no
// more pages.
type Fetcher struct {
	base     *http.Client
	limiter  *RateLimiter
	timeout  time.Duration
	maxPages int
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the base transport client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.base = c }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxPages sets the page cap.
func WithMaxPages(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxPages = n
		}
	}
}

// WithRateLimiter sets the limiter shared by every request.
func WithRateLimiter(rl *RateLimiter) FetcherOption {
	return func(f *Fetcher) { f.limiter = rl }
}

// NewFetcher creates a fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		base:     http.DefaultClient,
		limiter:  NewRateLimiterWithConfig(RateLimitConfig{}),
		timeout:  DefaultTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll returns every record across all pages in provider order.
// On any error it returns no records.
func (f *Fetcher) FetchAll(ctx context.Context, token string, ep Endpoint) ([]map[string]any, error) {
	var records []map[string]any
	err := f.Walk(ctx, token, ep, func(rec map[string]any) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []map[string]any{}
	}
	return records, nil
}

// Walk calls fn for each record as pages arrive. An error from fn, the
// provider or the transport stops the walk.
func (f *Fetcher) Walk(ctx context.Context, token string, ep Endpoint, fn func(map[string]any) error) error {
	client := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, f.base),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	)
	client.Timeout = f.timeout

	cursor := ""
	seen := 0
	for page := 1; ; page++ {
		if page > f.maxPages {
			return fmt.Errorf("%w: %s stopped after %d pages", domain.ErrPageLimitExceeded, ep.URL, f.maxPages)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d := f.limiter.Backoff(); d > f.timeout {
			return &domain.TransportError{
				Op:      "fetch page",
				Err:     fmt.Errorf("rate limited for another %s", d.Round(time.Second)),
				Timeout: true,
			}
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}

		body, err := f.fetchPage(ctx, client, ep, cursor)
		if err != nil {
			return err
		}

		results, err := resultsOf(body, ep.ResultsPath)
		if err != nil {
			return err
		}
		for _, r := range results {
			rec, ok := r.(map[string]any)
			if !ok {
				return &domain.MalformedRecordError{Index: seen, Reason: fmt.Sprintf("expected object, got %T", r)}
			}
			if err := fn(rec); err != nil {
				return err
			}
			seen++
		}
		logger.Debug("fetch: %s page %d returned %d records", ep.URL, page, len(results))

		next, more := nextCursor(body, ep)
		if !more {
			return nil
		}
		cursor = next
	}
}

func (f *Fetcher) fetchPage(ctx context.Context, client *http.Client, ep Endpoint, cursor string) (map[string]any, error) {
	req, err := buildRequest(ctx, ep, cursor)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.NewTransportError("fetch page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if resp.StatusCode == http.StatusTooManyRequests {
			f.limiter.RecordRateLimitError(retryAfter(resp.Header.Get("Retry-After")))
		}
		return nil, &domain.ProviderError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		var netErr interface{ Timeout() bool }
		if ctx.Err() != nil || errors.As(err, &netErr) {
			return nil, domain.NewTransportError("read page", err)
		}
		return nil, &domain.ProviderError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("decode page: %v", err)}
	}
	return body, nil
}

func buildRequest(ctx context.Context, ep Endpoint, cursor string) (*http.Request, error) {
	method := ep.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := url.Parse(ep.URL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if method == http.MethodGet {
		q := u.Query()
		for k, vs := range ep.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		if ep.PageSizeParam != "" && ep.PageSize > 0 {
			q.Set(ep.PageSizeParam, strconv.Itoa(ep.PageSize))
		}
		if cursor != "" && ep.CursorParam != "" {
			q.Set(ep.CursorParam, cursor)
		}
		u.RawQuery = q.Encode()
	} else {
		payload := make(map[string]any, len(ep.Body)+2)
		for k, v := range ep.Body {
			payload[k] = v
		}
		if ep.PageSizeParam != "" && ep.PageSize > 0 {
			payload[ep.PageSizeParam] = ep.PageSize
		}
		if cursor != "" && ep.CursorParam != "" {
			payload[ep.CursorParam] = cursor
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		if len(ep.Query) > 0 {
			u.RawQuery = ep.Query.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range ep.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func resultsOf(body map[string]any, path string) ([]any, error) {
	v, ok := Lookup(body, path)
	if !ok || v == nil {
		return nil, nil
	}
	results, ok := v.([]any)
	if !ok {
		return nil, &domain.ProviderError{
			StatusCode: http.StatusOK,
			Body:       fmt.Sprintf("%s: expected array, got %T", path, v),
		}
	}
	return results, nil
}

// nextCursor reports the cursor of the next page and whether one exists.
func nextCursor(body map[string]any, ep Endpoint) (string, bool) {
	if ep.HasMorePath != "" {
		v, _ := Lookup(body, ep.HasMorePath)
		if more, _ := v.(bool); !more {
			return "", false
		}
	}
	v, ok := Lookup(body, ep.NextCursorPath)
	if !ok {
		return "", false
	}
	var cursor string
	switch t := v.(type) {
	case string:
		cursor = t
	case json.Number:
		cursor = t.String()
	}
	return cursor, cursor != ""
}

// Lookup resolves a dotted path through nested objects.
func Lookup(m map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func retryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(header)); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 0
}
