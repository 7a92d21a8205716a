package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rightmove-engine/internal/scrape/util"
)

func TestHTTPFetcherSendsClientIdentifier(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><body><p id="x">ok</p></body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher("Go_House_Hunting", time.Second, util.NewLimiter(100, 10))
	doc, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if gotUA != "Go_House_Hunting" {
		t.Errorf("user agent = %q", gotUA)
	}
	if doc.Find("#x").Text() != "ok" {
		t.Error("document did not parse")
	}
}

func TestHTTPFetcherNon200IsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher("Go_House_Hunting", time.Second, nil)
	_, err := f.Fetch(context.Background(), srv.URL)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", fe.StatusCode)
	}
	if fe.URL != srv.URL {
		t.Errorf("url = %q, want %q", fe.URL, srv.URL)
	}
}

func TestHTTPFetcherTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	f := NewHTTPFetcher("Go_House_Hunting", time.Second, nil)
	_, err := f.Fetch(context.Background(), srv.URL)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want FetchError", err)
	}
	if fe.StatusCode != 0 || fe.Err == nil {
		t.Errorf("transport error should carry Err, not a status: %+v", fe)
	}
}
