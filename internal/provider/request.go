package provider

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/utils"
)

const (
	contentType    = "application/json"
	acceptEncoding = "gzip"
)

// ItemResponse is one page of a list endpoint.
type ItemResponse struct {
	Items   []Item
	Page    int
	Pages   int
	PerPage int `json:"per_page"`
}

type Item interface{}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status from %s: %s", e.URL, e.Status)
}

// GetItems requests rawURL and follows pagination until the last page.
func (c *Client) GetItems(ctx context.Context, rawURL string, q url.Values) ([]Item, error) {
	var items []Item

	if q == nil {
		q = url.Values{}
	}
	if q.Get("per_page") == "" {
		q.Set("per_page", perPage)
	}

	response, err := c.getPage(ctx, rawURL, q)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got response from provider", zap.Int("pages", response.Pages), zap.Int("max items per page", response.PerPage))

	items = append(items, response.Items...)

	for response.Page < (response.Pages - 1) {
		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"current page (%d) < all page count (%d)", response.Page+1, response.Pages),
		))

		next := response.Page + 1
		q.Set("page", strconv.Itoa(next))
		response, err = c.getPage(ctx, rawURL, q)
		if err != nil {
			return nil, err
		}
		if response.Page != next {
			return nil, fmt.Errorf("provider returned page %d, expected %d", response.Page, next)
		}

		items = append(items, response.Items...)
	}

	return items, nil
}

func (c *Client) getPage(ctx context.Context, rawURL string, q url.Values) (*ItemResponse, error) {
	var response ItemResponse
	if err := c.getJSON(ctx, rawURL, q, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, q url.Values, target interface{}) error {
	resp, err := c.get(ctx, rawURL, q)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	if err := json.NewDecoder(reader).Decode(target); err != nil {
		return fmt.Errorf("decode response from %s: %w", rawURL, err)
	}

	return nil
}

// get retries on 429 and 5xx, honouring Retry-After when it holds seconds.
func (c *Client) get(ctx context.Context, rawURL string, q url.Values) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		req = c.setHeaders(req)
		req.Header.Set("Content-Type", contentType)
		if len(q) > 0 {
			req.URL.RawQuery = q.Encode()
		}

		resp, err := c.request(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		statusErr := &StatusError{URL: req.URL.String(), Status: resp.Status, Code: resp.StatusCode}
		wait := retryAfter(resp.Header.Get("Retry-After"))
		resp.Body.Close()

		if !retryable(resp.StatusCode) || attempt >= c.MaxRetries {
			return nil, statusErr
		}

		if wait == 0 {
			wait = utils.Backoff(attempt+1, c.RetryDelay, maxRetryDelay)
		}
		c.logger.Warn("provider request failed, retrying",
			zap.Int("status", resp.StatusCode),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
		)
		if err := utils.WaitFor(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	return req
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func retryAfter(v string) time.Duration {
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
