// Package supabase reads tables from a Supabase project over its REST API.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
)

// Client issues read queries against {BaseURL}/rest/v1.
type Client struct {
	BaseURL string
	Timeout time.Duration

	rest *postgrest.Client
}

// Query selects rows from Table ordered by Order.
type Query struct {
	Table     string
	Columns   string // defaults to "*"
	Order     string
	Ascending bool
}

// Error is an error response from the backend, e.g. a missing table or a
// rejected key.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return "supabase: " + e.Message
	}
	return fmt.Sprintf("supabase: %s: %s", e.Code, e.Message)
}

func New(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	rest := postgrest.NewClient(baseURL+"/rest/v1", "public", map[string]string{
		"apikey": apiKey,
	})
	rest.SetAuthToken(apiKey)
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
		rest:    rest,
	}
}

// Select runs q and decodes the JSON array response into dest.
func (c *Client) Select(ctx context.Context, q Query, dest any) error {
	if c.BaseURL == "" {
		return fmt.Errorf("supabase: base URL not configured")
	}
	if c.rest.ClientError != nil {
		return fmt.Errorf("supabase: %w", c.rest.ClientError)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cols := q.Columns
	if cols == "" {
		cols = "*"
	}
	fb := c.rest.From(q.Table).Select(cols, "", false)
	if q.Order != "" {
		fb = fb.Order(q.Order, &postgrest.OrderOpts{Ascending: q.Ascending})
	}

	if _, err := fb.ExecuteToWithContext(ctx, dest); err != nil {
		return classify(q.Table, err)
	}
	return nil
}

// classify separates transport failures from error responses. postgrest-go
// reports an error response as "(code) message", or as a parse failure when
// the body is not a PostgREST error object.
func classify(table string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("query %s: %w", table, err)
	}

	msg := err.Error()
	if strings.HasPrefix(msg, "(") {
		if end := strings.Index(msg, ") "); end > 0 {
			return &Error{Code: msg[1:end], Message: msg[end+2:]}
		}
	}
	if strings.HasPrefix(msg, "error parsing error response") {
		return &Error{Message: msg}
	}
	return fmt.Errorf("decode %s: %w", table, err)
}
