package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/flashkit/pkg/logger"
)

// VisitOptions describe a routed navigation.
type VisitOptions struct {
	// Method is the lowercase HTTP verb.
	Method string
	// Data is sent as query parameters for get and as a JSON body otherwise.
	Data any
}

// Navigator performs routed navigations for URL actions.
type Navigator interface {
	Visit(ctx context.Context, url string, opts VisitOptions) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, url string, opts VisitOptions) error

func (f NavigatorFunc) Visit(ctx context.Context, url string, opts VisitOptions) error {
	return f(ctx, url, opts)
}

// VisitHeader marks requests issued by HTTPNavigator so the host router can
// answer with a page object instead of a full document.
const VisitHeader = "X-Flashkit-Visit"

// HTTPNavigator performs visits as HTTP requests against a base URL.
type HTTPNavigator struct {
	base   *url.URL
	client *http.Client
	header http.Header
	logger *slog.Logger
}

// HTTPNavigatorOption configures an HTTPNavigator.
type HTTPNavigatorOption func(*HTTPNavigator)

func WithHTTPClient(c *http.Client) HTTPNavigatorOption {
	return func(n *HTTPNavigator) {
		if c != nil {
			n.client = c
		}
	}
}

// WithVisitLogger sets the logger that records visit responses.
func WithVisitLogger(l *slog.Logger) HTTPNavigatorOption {
	return func(n *HTTPNavigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithHeader adds a header sent with every visit.
func WithHeader(key, value string) HTTPNavigatorOption {
	return func(n *HTTPNavigator) {
		n.header.Add(key, value)
	}
}

// NewHTTPNavigator resolves visit URLs against baseURL.
func NewHTTPNavigator(baseURL string, opts ...HTTPNavigatorOption) (*HTTPNavigator, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse navigator base url: %w", err)
	}
	n := &HTTPNavigator{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
		header: make(http.Header),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Visit issues the request. Only transport failures are returned: what the
// host answers, error statuses included, is the navigation layer's concern.
// The body is discarded.
func (n *HTTPNavigator) Visit(ctx context.Context, target string, opts VisitOptions) error {
	ref, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("parse visit url: %w", err)
	}
	u := n.base.ResolveReference(ref)

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Data != nil {
		if method == http.MethodGet {
			q := u.Query()
			for k, v := range queryValues(opts.Data) {
				for _, s := range v {
					q.Add(k, s)
				}
			}
			u.RawQuery = q.Encode()
		} else {
			data, err := json.Marshal(opts.Data)
			if err != nil {
				return fmt.Errorf("marshal visit data: %w", err)
			}
			body = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build visit request: %w", err)
	}
	for k, vs := range n.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(VisitHeader, "true")
	req.Header.Set("Accept", "text/html, application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("visit %s %s: %w", method, u.String(), err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	n.logger.LogAttrs(ctx, slog.LevelDebug, "visit completed",
		logger.Component("actions"),
		slog.String("method", method),
		logger.URL(u.String()),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}

func queryValues(data any) url.Values {
	out := url.Values{}
	switch d := data.(type) {
	case url.Values:
		return d
	case map[string]string:
		for k, v := range d {
			out.Set(k, v)
		}
	case map[string]any:
		for k, v := range d {
			out.Set(k, fmt.Sprint(v))
		}
	}
	return out
}
