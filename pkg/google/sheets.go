// Package google wraps the Google Sheets values API behind a small Client
// authorized with a service-account key.
package google

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

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

// Client performs the Sheets values operations used by the lead sink.
type Client interface {
	// Authorize fetches an access token so credential problems surface early.
	Authorize(ctx context.Context) error
	// AppendRow appends one row after the last row of the sheet's table.
	AppendRow(ctx context.Context, sheet string, row []any) error
	// GetRows returns the cell values of the 1-indexed rows first..last
	// (inclusive). Trailing empty rows are omitted by the API, so the result
	// may be shorter than the requested range.
	GetRows(ctx context.Context, sheet string, first, last int) ([][]string, error)
}

// ValueRange is the request and response body of the values API.
type ValueRange struct {
	Range          string  `json:"range,omitempty"`
	MajorDimension string  `json:"majorDimension,omitempty"`
	Values         [][]any `json:"values,omitempty"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

type httpClient struct {
	spreadsheetID string
	baseURL       string
	http          *http.Client
	tokens        *tokenSource
}

// NewClient creates a Sheets client for one spreadsheet. It fails when the
// service-account private key cannot be parsed.
func NewClient(creds Credentials, spreadsheetID string, opts ...Option) (Client, error) {
	c := &httpClient{
		spreadsheetID: spreadsheetID,
		baseURL:       defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}

	ts, err := newTokenSource(creds, SheetsScope, c.http)
	if err != nil {
		return nil, err
	}
	c.tokens = ts

	return c, nil
}

func (c *httpClient) Authorize(ctx context.Context) error {
	_, err := c.tokens.Token(ctx)
	return err
}

func (c *httpClient) AppendRow(ctx context.Context, sheet string, row []any) error {
	rng := sheet + "!A:F"
	body, err := json.Marshal(ValueRange{
		Range:          rng,
		MajorDimension: "ROWS",
		Values:         [][]any{row},
	})
	if err != nil {
		return eris.Wrap(err, "google: marshal append request")
	}

	q := url.Values{}
	q.Set("valueInputOption", "USER_ENTERED")
	q.Set("insertDataOption", "INSERT_ROWS")
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s:append?%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(rng), q.Encode())

	_, err = c.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return eris.Wrap(err, "google: append row")
	}
	return nil
}

func (c *httpClient) GetRows(ctx context.Context, sheet string, first, last int) ([][]string, error) {
	if first < 1 || last < first {
		return nil, eris.Errorf("google: invalid row range %d:%d", first, last)
	}

	rng := fmt.Sprintf("%s!A%d:F%d", sheet, first, last)
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(rng))

	respBody, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "google: get rows %d:%d", first, last)
	}

	var vr ValueRange
	if err := json.Unmarshal(respBody, &vr); err != nil {
		return nil, eris.Wrap(err, "google: unmarshal response")
	}

	rows := make([][]string, len(vr.Values))
	for i, values := range vr.Values {
		cells := make([]string, len(values))
		for j, v := range values {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

func (c *httpClient) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, eris.Wrap(err, "google: create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "google: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "google: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("google: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
