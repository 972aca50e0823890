// Package api is the transport client for the moneydash backend.
//
// All calls go through one configured entry point carrying the base URL,
// timeout and JSON negotiation. Credential attachment and 401 recovery are
// delegated to the session manager.
package api

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
	"github.com/rs/zerolog"

	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/session"
)

// DefaultTimeout matches the timeout the web client used.
const DefaultTimeout = 10 * time.Second

// Options configures a Client.
type Options struct {
	// BaseURL is the versioned API root, e.g. "http://localhost:8082/api/v1.0".
	BaseURL string
	// Timeout applies per request. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client issues requests against the backend.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Manager
	log     zerolog.Logger
}

// New returns a Client and wires the session manager's token exchange to it.
func New(sess *session.Manager, opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL must be set")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		session: sess,
		log:     opts.Logger.With().Str("component", "api").Logger(),
	}

	sess.SetExchange(c.exchangeRefreshToken)

	return c, nil
}

// exchangeRefreshToken trades the refresh token for new tokens. It goes
// through an excluded endpoint, so no bearer token is attached and a 401
// cannot recurse into another refresh.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (models.RefreshResponse, error) {
	tokenRefreshesTotal.Inc()

	var resp models.RefreshResponse
	err := c.do(ctx, http.MethodPost, "/refresh-token", nil, models.RefreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		tokenRefreshFailuresTotal.Inc()
		return models.RefreshResponse{}, err
	}

	return resp, nil
}

// do sends one JSON request and decodes the response into out (which may be
// nil). A 401 on a non-excluded endpoint triggers one deduplicated token
// refresh and exactly one resubmission of the original request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.roundTrip(ctx, method, path, query, body, "")
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !c.session.Excluded(path) {
		drain(resp)

		token, refreshErr := c.session.Refresh(ctx)
		if refreshErr != nil {
			return refreshErr
		}

		c.log.Debug().Str("path", path).Msg("retrying request with refreshed token")
		resp, err = c.roundTrip(ctx, method, path, query, body, token)
		if err != nil {
			return err
		}
	}

	return c.decode(resp, method, path, out)
}

// download fetches a binary response, e.g. a spreadsheet export. The caller
// must close the returned body.
func (c *Client) download(ctx context.Context, path string, query url.Values) (io.ReadCloser, error) {
	resp, err := c.roundTrip(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !c.session.Excluded(path) {
		drain(resp)

		token, refreshErr := c.session.Refresh(ctx)
		if refreshErr != nil {
			return nil, refreshErr
		}

		resp, err = c.roundTrip(ctx, http.MethodGet, path, query, nil, token)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer drain(resp)
		return nil, c.apiError(resp, http.MethodGet, path)
	}

	return resp.Body, nil
}

// roundTrip builds and sends a single request. tokenOverride replaces the
// session token after a refresh; the session manager attaches the credential
// otherwise.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any, tokenOverride string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if tokenOverride != "" {
		req.Header.Set("Authorization", "Bearer "+tokenOverride)
	} else {
		c.session.Attach(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		networkErrorsTotal.Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, &RequestError{Err: err}
	}

	requestsTotal.WithLabelValues(method, statusClass(resp.StatusCode)).Inc()

	return resp, nil
}

// decode consumes the response. Non-2xx statuses become an APIError carrying
// the backend's message when one was sent.
func (c *Client) decode(resp *http.Response, method, path string, out any) error {
	defer drain(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		err := c.apiError(resp, method, path)
		if resp.StatusCode == http.StatusForbidden {
			c.log.Warn().Str("method", method).Str("path", path).Msg("permission denied")
		}
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s %s: %w", method, path, err)
	}

	return nil
}

func (c *Client) apiError(resp *http.Response, method, path string) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else {
			apiErr.Message = body.Message
		}
	}

	c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Str("message", apiErr.Message).Msg("api error")

	return apiErr
}

// drain discards the rest of the body and closes it so the connection can be
// reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
