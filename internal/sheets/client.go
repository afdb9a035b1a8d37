// Package sheets provides a minimal client for the Google Sheets API v4 values endpoint.
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the root endpoint for the Sheets API.
const DefaultBaseURL = "https://sheets.googleapis.com"

// FetchError reports a non-success response from the values endpoint.
type FetchError struct {
	StatusCode int
	Message    string // error.message from the API body, if any
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("Failed to fetch data (HTTP %d). Check your API key and Spreadsheet ID", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Client reads one named range of one spreadsheet using a static API key.
type Client struct {
	baseURL       string
	apiKey        string
	spreadsheetID string
	sheetName     string
	http          *http.Client
}

// NewClient returns a Sheets client for the given spreadsheet and tab.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey, spreadsheetID, sheetName string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		http:          &http.Client{Timeout: 30 * time.Second},
	}
}

// Name identifies the source in stored snapshots.
func (c *Client) Name() string {
	return "sheets:" + c.spreadsheetID + "/" + c.sheetName
}

// valuesURL builds GET /v4/spreadsheets/{id}/values/{range}?key=...
func (c *Client) valuesURL() string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(c.sheetName), q.Encode())
}

// FetchRows returns every row of the configured range, header included.
// Cells are returned as strings; rows may be ragged.
func (c *Client) FetchRows(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.valuesURL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET values: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read values body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(body, "error.message").String(),
		}
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode values: invalid JSON")
	}
	return parseValues(body), nil
}

// parseValues extracts the "values" matrix. A missing field yields nil.
func parseValues(body []byte) [][]string {
	values := gjson.GetBytes(body, "values")
	if !values.IsArray() {
		return nil
	}
	var rows [][]string
	values.ForEach(func(_, row gjson.Result) bool {
		var cells []string
		row.ForEach(func(_, c gjson.Result) bool {
			cells = append(cells, c.String())
			return true
		})
		rows = append(rows, cells)
		return true
	})
	return rows
}
