// Package ekispert talks to the Ekispert route search API.
package ekispert

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/document"
	"golang.org/x/exp/slices"
	resty "gopkg.in/resty.v1"
)

const defaultMaxRetries = 3
const defaultTimeout = 15 * time.Second

var retryStatusCodes = []int{
	http.StatusTooManyRequests,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

type Client struct {
	apiKey string
	http   *resty.Client

	maxRetries   uint64
	newBackOff   func() backoff.BackOff
	stationCache *StationCache
}

type Option func(*Client)

// WithStationCache caches successful stationLight lookups.
func WithStationCache(stationCache *StationCache) Option {
	return func(c *Client) {
		c.stationCache = stationCache
	}
}

// WithRetry overrides the retry policy for throttled or unavailable responses.
func WithRetry(maxRetries uint64, newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.newBackOff = newBackOff
	}
}

func NewClient(baseURL string, apiKey string, options ...Option) *Client {
	httpClient := resty.New().
		SetHostURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")

	client := &Client{
		apiKey:     apiKey,
		http:       httpClient,
		maxRetries: defaultMaxRetries,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Response is a decoded API reply. ResultSet is nil when a non-200 reply
// carried no JSON document.
type Response struct {
	StatusCode int
	ResultSet  any
	Body       []byte
}

// ErrorDocument returns ResultSet.Error, or a document built from the HTTP
// status when the reply had none.
func (r *Response) ErrorDocument() any {
	if errorDocument, ok := document.Get(r.ResultSet, "Error"); ok {
		return errorDocument
	}

	return map[string]any{
		"code":    strconv.Itoa(r.StatusCode),
		"Message": http.StatusText(r.StatusCode),
	}
}

// SearchCourse runs a plain course search between two station names.
func (c *Client) SearchCourse(ctx context.Context, from string, to string) (*Response, error) {
	return c.get(ctx, "/searchCourse", map[string]string{
		"from": from,
		"to":   to,
	})
}

// StationLight returns the ResultSet of a station name lookup. Any status
// other than 200 is an error.
func (c *Client) StationLight(ctx context.Context, name string) (any, error) {
	if c.stationCache != nil {
		if body, ok := c.stationCache.Get(ctx, name); ok {
			response, err := decodeResponse(http.StatusOK, []byte(body))
			if err == nil {
				log.Debug().Str("name", name).Msg("Station lookup served from cache")
				return response.ResultSet, nil
			}
		}
	}

	response, err := c.get(ctx, "/stationLight", map[string]string{
		"name": name,
	})
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stationLight returned status %d", response.StatusCode)
	}

	if c.stationCache != nil {
		c.stationCache.Set(ctx, name, string(response.Body))
	}

	return response.ResultSet, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) (*Response, error) {
	query := map[string]string{"APIKEY": c.apiKey}
	for key, value := range params {
		query[key] = value
	}

	var response *Response

	operation := func() error {
		startTime := time.Now()

		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(query).
			Get(path)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}

		log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode()).
			Str("latency", time.Since(startTime).String()).
			Bytes("body", resp.Body()).
			Msg("Ekispert response")

		if slices.Contains(retryStatusCodes, resp.StatusCode()) {
			return fmt.Errorf("%s returned status %d", path, resp.StatusCode())
		}

		response, err = decodeResponse(resp.StatusCode(), resp.Body())
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%s: %w", path, err))
		}

		return nil
	}

	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("path", path).Str("wait", wait.String()).Msg("Retrying Ekispert request")
	}

	if err := backoff.RetryNotify(operation, retryPolicy, notify); err != nil {
		return nil, err
	}

	return response, nil
}

func decodeResponse(statusCode int, body []byte) (*Response, error) {
	response := &Response{
		StatusCode: statusCode,
		Body:       body,
	}

	doc, err := document.Decode(bytes.NewReader(body))
	if err != nil {
		if statusCode != http.StatusOK {
			return response, nil
		}
		return nil, err
	}

	resultSet, ok := document.Get(doc, "ResultSet")
	if !ok && statusCode == http.StatusOK {
		return nil, fmt.Errorf("response has no ResultSet")
	}
	response.ResultSet = resultSet

	return response, nil
}
