// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
neynar_client.go - Live Neynar v2 Graph Provider

Client Features:
  - API key authentication via the x-api-key header
  - Per-call timeout applied to every page of a paged listing
  - Outbound pacing with a token bucket (golang.org/x/time/rate)
  - Identical in-flight reads collapsed with singleflight (results are not retained);
    the shared call ignores any single caller's cancellation
  - Cursor paging until the requested limit or the last page
  - Bounded error body reads for diagnostics

Every failure is returned as *UpstreamError and matches ErrUpstreamUnavailable.
Calls are never retried here: a failed read surfaces immediately and the caller
decides whether it aborts or is absorbed.
*/

//nolint:staticcheck // File documentation, not package doc
package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/collabscout/internal/config"
	"github.com/tomtom215/collabscout/internal/metrics"
)

// ProviderNeynar labels metrics and logs for the live provider.
const ProviderNeynar = "neynar"

const (
	endpointFollowers = "/v2/farcaster/user/followers"
	endpointFollowing = "/v2/farcaster/user/following"
	endpointUserCasts = "/v2/farcaster/feed/user/casts"
	endpointUserBulk  = "/v2/farcaster/user/bulk"
)

const (
	defaultNeynarTimeout = 8 * time.Second
	maxNeynarPageSize    = 100

	// maxErrorBodySize limits the response body read for error reporting.
	maxErrorBodySize = 64 * 1024

	// maxResponseBodySize guards against unbounded success bodies.
	maxResponseBodySize = 16 * 1024 * 1024
)

// NeynarClient reads the Farcaster social graph from the Neynar v2 API.
// It is safe for concurrent use.
type NeynarClient struct {
	baseURL   string
	apiKey    string
	viewerFID int64
	pageSize  int
	timeout   time.Duration

	client  *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
	logger  zerolog.Logger
}

// NewNeynarClient builds a live provider from cfg.
// A missing API key is reported as ErrMissingCredential.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewNeynarClient(cfg *config.NeynarConfig, logger zerolog.Logger) (*NeynarClient, error) {
	if cfg == nil {
		return nil, errors.New("neynar config is nil")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("neynar base URL is empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultNeynarTimeout
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxNeynarPageSize {
		pageSize = maxNeynarPageSize
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &NeynarClient{
		baseURL:   baseURL,
		apiKey:    apiKey,
		viewerFID: cfg.ViewerFID,
		pageSize:  pageSize,
		timeout:   timeout,
		client:    &http.Client{},
		limiter:   rate.NewLimiter(limit, burst),
		logger:    logger.With().Str("component", "neynar").Logger(),
	}, nil
}

// Relations lists followers or followed accounts of fid.
func (c *NeynarClient) Relations(ctx context.Context, fid int64, rel Relation, opts ListOptions) ([]Creator, error) {
	var endpoint string
	switch rel {
	case RelationFollowers:
		endpoint = endpointFollowers
	case RelationFollowing:
		endpoint = endpointFollowing
	default:
		return nil, fmt.Errorf("unknown relation %q", rel)
	}

	limit := opts.limit()
	out := make([]Creator, 0, min(limit, c.pageSize))
	cursor := ""

	for len(out) < limit {
		params := url.Values{}
		params.Set("fid", strconv.FormatInt(fid, 10))
		params.Set("limit", strconv.Itoa(min(limit-len(out), c.pageSize)))
		params.Set("sort_type", neynarSortType(opts.sort()))
		if c.viewerFID > 0 {
			params.Set("viewer_fid", strconv.FormatInt(c.viewerFID, 10))
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page neynarFollowPage
		if err := c.getJSON(ctx, endpoint, params, &page); err != nil {
			return nil, err
		}

		for i := range page.Users {
			if page.Users[i].User.FID == 0 {
				continue
			}
			out = append(out, page.Users[i].User.toCreator())
			if len(out) == limit {
				break
			}
		}

		cursor = page.Next.cursor()
		if cursor == "" || len(page.Users) == 0 {
			break
		}
	}

	return out, nil
}

// Posts returns up to limit recent casts authored by fid, replies included.
func (c *NeynarClient) Posts(ctx context.Context, fid int64, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	out := make([]Post, 0, min(limit, c.pageSize))
	cursor := ""

	for len(out) < limit {
		params := url.Values{}
		params.Set("fid", strconv.FormatInt(fid, 10))
		params.Set("limit", strconv.Itoa(min(limit-len(out), c.pageSize)))
		params.Set("include_replies", "true")
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page neynarCastPage
		if err := c.getJSON(ctx, endpointUserCasts, params, &page); err != nil {
			return nil, err
		}

		for i := range page.Casts {
			out = append(out, page.Casts[i].toPost())
			if len(out) == limit {
				break
			}
		}

		cursor = page.Next.cursor()
		if cursor == "" || len(page.Casts) == 0 {
			break
		}
	}

	return out, nil
}

// Creator looks up one profile through the bulk endpoint.
func (c *NeynarClient) Creator(ctx context.Context, fid int64) (*Creator, error) {
	params := url.Values{}
	params.Set("fids", strconv.FormatInt(fid, 10))
	if c.viewerFID > 0 {
		params.Set("viewer_fid", strconv.FormatInt(c.viewerFID, 10))
	}

	var resp neynarBulkUsers
	if err := c.getJSON(ctx, endpointUserBulk, params, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Users {
		if resp.Users[i].FID == fid {
			creator := resp.Users[i].toCreator()
			return &creator, nil
		}
	}
	return nil, fmt.Errorf("fid %d: %w", fid, ErrNotFound)
}

// getJSON performs one paced, time-bounded GET and decodes the body into out.
//
// Identical concurrent reads share one HTTP call. The shared call runs detached
// from every caller's cancellation and is bounded only by the client timeout,
// so one caller going away never fails the others. Each caller still stops
// waiting as soon as its own ctx is done.
func (c *NeynarClient) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := ctx.Err(); err != nil {
		return &UpstreamError{Endpoint: endpoint, Message: "canceled", Cause: err}
	}

	reqURL := c.baseURL + endpoint + "?" + params.Encode()
	shared := context.WithoutCancel(ctx)

	// The API key is constant per client, so the URL alone identifies the read.
	ch := c.group.DoChan(reqURL, func() (any, error) {
		return c.fetch(shared, endpoint, reqURL)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		metrics.RecordUpstreamCall(ProviderNeynar, endpoint, "canceled", 0)
		return &UpstreamError{Endpoint: endpoint, Message: "canceled", Cause: ctx.Err()}
	}
	if res.Err != nil {
		return res.Err
	}
	if res.Shared {
		c.logger.Trace().Str("endpoint", endpoint).Msg("Collapsed duplicate upstream read")
	}

	body, ok := res.Val.([]byte)
	if !ok {
		return &UpstreamError{Endpoint: endpoint, Message: fmt.Sprintf("unexpected result type %T", res.Val)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamError{Endpoint: endpoint, Message: "decode response", Cause: err}
	}
	return nil
}

// fetch executes the HTTP request and returns the full body of a 2xx response.
// ctx carries no cancellation of its own; the client timeout bounds both the
// pacing wait and the call.
func (c *NeynarClient) fetch(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(callCtx); err != nil {
		metrics.RecordUpstreamCall(ProviderNeynar, endpoint, "rate_limited", time.Since(start))
		return nil, &UpstreamError{Endpoint: endpoint, Message: "rate limiter wait", Cause: err}
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Message: "create request", Cause: err}
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		outcome := classifyTransportError(err)
		metrics.RecordUpstreamCall(ProviderNeynar, endpoint, outcome, time.Since(start))
		c.logger.Debug().Err(err).Str("endpoint", endpoint).Str("outcome", outcome).Msg("Upstream call failed")
		return nil, &UpstreamError{Endpoint: endpoint, Message: outcome, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstreamCall(ProviderNeynar, endpoint, "http_error", time.Since(start))
		msg := errorMessage(readBodyForError(resp.Body))
		c.logger.Debug().Int("status", resp.StatusCode).Str("endpoint", endpoint).Str("body", msg).Msg("Upstream returned error status")
		return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: msg}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		outcome := classifyTransportError(err)
		metrics.RecordUpstreamCall(ProviderNeynar, endpoint, outcome, time.Since(start))
		return nil, &UpstreamError{Endpoint: endpoint, Message: "read body", Cause: err}
	}

	metrics.RecordUpstreamCall(ProviderNeynar, endpoint, "success", time.Since(start))
	return body, nil
}

// classifyTransportError labels a failed call for metrics.
func classifyTransportError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "transport_error"
	}
}

// readBodyForError reads the response body for error reporting (max 64KB).
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}

// errorMessage prefers the JSON "message" field of an error body.
func errorMessage(body []byte) string {
	var parsed neynarErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 256 {
		msg = msg[:256] + "... (truncated)"
	}
	return msg
}

func neynarSortType(s SortOrder) string {
	if s == SortRecent {
		return "desc_chron"
	}
	return "algorithmic"
}
