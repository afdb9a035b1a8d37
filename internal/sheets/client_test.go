package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchRows(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"range": "'Form Responses 1'!A1:F3",
			"majorDimension": "ROWS",
			"values": [
				["Timestamp", "Date", "Player 1", "Score 1", "Player 2", "Score 2"],
				["3/1/2024 10:00:00", "3/1/2024", "Alice", "6", "Bob", "4"],
				["3/2/2024 10:00:00", "3/2/2024", "Bob", 7]
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k3y", "sheet-id", "Form Responses 1")
	rows, err := c.FetchRows(context.Background())
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if gotPath != "/v4/spreadsheets/sheet-id/values/Form%20Responses%201" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "k3y" {
		t.Errorf("want key k3y, got %q", gotKey)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	if rows[1][2] != "Alice" {
		t.Errorf("want Alice, got %q", rows[1][2])
	}
	if len(rows[2]) != 4 || rows[2][3] != "7" {
		t.Errorf("ragged numeric row: got %v", rows[2])
	}
}

func TestFetchRows_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad", "id", "Sheet1").FetchRows(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("want *FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusForbidden {
		t.Errorf("want 403, got %d", fe.StatusCode)
	}
	if fe.Message != "The caller does not have permission" {
		t.Errorf("unexpected message %q", fe.Message)
	}
}

func TestFetchRows_NoValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"range":"Sheet1!A1:Z1000","majorDimension":"ROWS"}`))
	}))
	defer srv.Close()

	rows, err := NewClient(srv.URL, "k", "id", "Sheet1").FetchRows(context.Background())
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if rows != nil {
		t.Errorf("want nil rows, got %v", rows)
	}
}

func TestFetchRows_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "k", "id", "Sheet1").FetchRows(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}
