package sync

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListProductsSummaries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category"); got != "12" {
			t.Errorf("category filter: got %q", got)
		}
		w.Write([]byte(`[
			{"id":501,"name":"Blue Widget","sku":"BW-1","status":"publish",
			 "images":[{"src":"https://img.example/bw.jpg","alt":"blue"}]},
			{"id":502,"name":"","sku":"","status":"draft"},
			{"id":0,"name":"Broken"}
		]`))
	}))
	defer srv.Close()

	rows, errs := testClient(srv.URL).ListProducts(12)
	if !errs.Empty() {
		t.Fatalf("errors: %v", errs)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (id 0 dropped)", len(rows))
	}
	if rows[0].ID != 501 || rows[0].Image != "https://img.example/bw.jpg" {
		t.Fatalf("first row: %+v", rows[0])
	}
	if rows[1].Name != "Untitled product" {
		t.Fatalf("blank name not defaulted: %+v", rows[1])
	}
}

func TestFetchProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DefaultProductsEndpoint + "/501":
			w.Write([]byte(`{"id":501,"name":"Blue Widget","sku":"BW-1"}`))
		case DefaultProductsEndpoint + "/666":
			w.Write([]byte(`not json at all`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	p, errs := c.FetchProduct(501)
	if !errs.Empty() {
		t.Fatalf("fetch 501: %v", errs)
	}
	if p.Name != "Blue Widget" || p.SKU != "BW-1" {
		t.Fatalf("got %+v", p)
	}

	if _, errs := c.FetchProduct(0); !errs.Has(ErrTransferFailure) {
		t.Fatalf("id 0: got %v", errs)
	}

	if _, errs := c.FetchProduct(666); !errs.Has(ErrAuthFailure) {
		t.Fatalf("malformed body: got %v", errs)
	}

	if _, errs := c.FetchProduct(999); errs.Empty() {
		t.Fatal("missing remote product fetched without error")
	}
}
