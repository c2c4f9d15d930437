// Package graphql implements the HTTP executor for GraphQL operations
// against the marketplace backend: one POST endpoint, a JSON
// {query, variables} body, and a {data, errors} envelope back.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/buffsmarket/marketcli/internal/logging"
	"github.com/google/uuid"
)

// Executor issues a single GraphQL document with variables and decodes the
// data payload into out (which may be nil when the caller ignores data).
// Consumers depend on this interface so tests can substitute fakes.
type Executor interface {
	Execute(ctx context.Context, document string, variables map[string]any, out any) error
}

// Client is the concrete Executor speaking HTTP. It attaches the bearer
// token supplied by tokenFn (when non-empty), always carries a cookie jar
// for session fallback, and never retries: every failure surfaces to the
// caller for a new user-initiated attempt.
type Client struct {
	endpoint string
	http     *http.Client
	tokenFn  func() string
	onUnauth func()
	log      logging.Logger
}

type Option func(*Client)

// WithTokenSource registers the supplier of the current bearer token.
// An empty return value means "no token": the header is omitted.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.tokenFn = fn }
}

// WithUnauthenticatedHook registers a callback invoked whenever the server
// answers with the UNAUTHENTICATED code, before the error is returned.
// Typically wired to session invalidation.
func WithUnauthenticatedHook(fn func()) Option {
	return func(c *Client) { c.onUnauth = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(endpoint string, opts ...Option) *Client {
	// Cookie jar errors only happen with a non-nil PublicSuffixList.
	jar, _ := cookiejar.New(nil)

	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Jar: jar},
		log:      logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []envelopeError `json:"errors"`
}

type envelopeError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// Execute sends one operation and decodes the data payload into out.
//
// Error taxonomy:
//   - *TransportError: the request never produced a well-formed envelope;
//   - *Error: the envelope carried server-reported errors (messages joined
//     with "; "). An UNAUTHENTICATED code additionally fires the hook.
func (c *Client) Execute(ctx context.Context, document string, variables map[string]any, out any) error {
	body, err := json.Marshal(requestBody{Query: document, Variables: variables})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	requestID := uuid.NewString()
	c.log.Debug(ctx, "graphql request", "request_id", requestID, "operation", operationHint(document))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "graphql transport failure", "request_id", requestID, "err", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Warn(ctx, "graphql malformed response", "request_id", requestID, "status", resp.Status, "err", err)
		return &TransportError{Err: fmt.Errorf("decoding response (%s): %w", resp.Status, err)}
	}

	if len(env.Errors) > 0 {
		gqlErr := &Error{}
		for _, e := range env.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
			gqlErr.Codes = append(gqlErr.Codes, e.Extensions.Code)
		}
		c.log.Warn(ctx, "graphql server error", "request_id", requestID, "err", gqlErr.Error())

		if gqlErr.HasCode(CodeUnauthenticated) && c.onUnauth != nil {
			c.onUnauth()
		}
		return gqlErr
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &TransportError{Err: fmt.Errorf("decoding data payload: %w", err)}
		}
	}
	return nil
}

// operationHint extracts a short label for logs from the first non-empty
// line of the document. Documents here are anonymous, so the line with the
// operation keyword is the best name available.
func operationHint(document string) string {
	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			if len(line) > 60 {
				line = line[:60]
			}
			return line
		}
	}
	return ""
}
