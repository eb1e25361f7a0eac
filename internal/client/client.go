// Package client provides an HTTP client for the cmt API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/evcraddock/comment-analyzer/internal/analysis"
	"github.com/evcraddock/comment-analyzer/internal/lang"
	"github.com/evcraddock/comment-analyzer/internal/wordfreq"
)

// Client is an HTTP client for the cmt API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit sends a document for analysis. An Unknown language lets the server
// detect it.
func (c *Client) Submit(name string, content []byte, l lang.Language) (*analysis.Analysis, error) {
	body := map[string]string{
		"name":    name,
		"content": string(content),
	}
	if l != lang.Unknown {
		body["language"] = l.String()
	}

	var a analysis.Analysis
	if err := c.post("/api/analyses", body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns stored analyses, newest first.
func (c *Client) List(opts analysis.ListOptions) ([]*analysis.Analysis, error) {
	path := "/api/analyses"
	if opts.Language != lang.Unknown {
		path += "?language=" + url.QueryEscape(opts.Language.String())
	}

	var analyses []*analysis.Analysis
	if err := c.get(path, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

// Get returns an analysis with its comments.
func (c *Client) Get(id int64) (*analysis.Detail, error) {
	var d analysis.Detail
	if err := c.get(fmt.Sprintf("/api/analyses/%d", id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Words returns the most frequent words of an analysis. limit <= 0 returns
// every word.
func (c *Client) Words(id int64, limit int) ([]wordfreq.WordCount, error) {
	path := fmt.Sprintf("/api/analyses/%d/words", id)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var words []wordfreq.WordCount
	if err := c.get(path, &words); err != nil {
		return nil, err
	}
	return words, nil
}

// Delete removes an analysis.
func (c *Client) Delete(id int64) error {
	return c.doDelete(fmt.Sprintf("/api/analyses/%d", id))
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request and maps API errors. A 404 wraps
// analysis.ErrNotFound.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := http.StatusText(resp.StatusCode)
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", msg, analysis.ErrNotFound)
		}
		return fmt.Errorf("server error: %s", msg)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
