package pubhtml

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const publishedPage = `<html><body>
<div id="sheets-viewport"><table class="waffle">
<thead><tr><th class="row-header freezebar-origin-ltr"></th><th>A</th><th>B</th><th>C</th><th>D</th><th>E</th><th>F</th></tr></thead>
<tbody>
<tr><th class="row-headers-background"><div>1</div></th><td>Timestamp</td><td>Date</td><td>Player 1</td><td>Score 1</td><td>Player 2</td><td>Score 2</td></tr>
<tr><th class="row-headers-background"><div>2</div></th><td>3/1/2024 10:00:00</td><td>3/1/2024</td><td>Alice</td><td> 6 </td><td>Bob</td><td>4</td></tr>
<tr><th class="row-headers-background"><div>3</div></th><td>3/2/2024 10:00:00</td><td>3/2/2024</td><td>Bob</td><td>6</td><td></td><td></td></tr>
<tr><th class="row-headers-background"><div>4</div></th><td></td><td></td><td></td><td></td><td></td><td></td></tr>
</tbody></table></div>
</body></html>`

func TestFetchRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(publishedPage))
	}))
	defer srv.Close()

	rows, err := New(srv.URL + "/pubhtml").FetchRows(context.Background())
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 non-empty rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "Timestamp" {
		t.Errorf("header row: got %v", rows[0])
	}
	if rows[1][3] != "6" {
		t.Errorf("want trimmed score 6, got %q", rows[1][3])
	}
	if len(rows[2]) != 4 {
		t.Errorf("want trailing empty cells trimmed, got %v", rows[2])
	}
}

func TestFetchRows_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := New(srv.URL).FetchRows(context.Background()); err == nil {
		t.Error("expected error on 404")
	}
}
