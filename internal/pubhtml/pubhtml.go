// Package pubhtml reads match rows from a spreadsheet published to the web as HTML.
// No API key is needed; the first table on the page is read.
package pubhtml

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Source fetches and scrapes a published sheet.
type Source struct {
	url  string
	http *http.Client
}

// New returns a Source for the given published URL (…/pubhtml or …/pubhtml?gid=…).
func New(url string) *Source {
	return &Source{
		url:  url,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Name identifies the source in stored snapshots.
func (s *Source) Name() string {
	return "pubhtml:" + s.url
}

// FetchRows returns the table body rows as text cells, header row included.
// Row-number <th> cells are skipped and trailing empty cells are trimmed.
func (s *Source) FetchRows(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", s.url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return parseTable(doc), nil
}

func parseTable(doc *goquery.Document) [][]string {
	var rows [][]string
	doc.Find("table").First().Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		cells = trimTrailingEmpty(cells)
		if len(cells) == 0 {
			return
		}
		rows = append(rows, cells)
	})
	return rows
}

func trimTrailingEmpty(cells []string) []string {
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}
