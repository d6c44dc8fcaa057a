package calendar

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestBrasilAPIClientIsHoliday(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/2025" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2025-12-25","name":"Natal"},{"date":"2025-09-07","name":"Independência do Brasil"}]`))
	}))
	defer srv.Close()

	client := NewBrasilAPIClient(srv.URL)

	holiday, err := client.IsHoliday(time.Date(2025, time.December, 25, 9, 0, 0, 0, Zone))
	if err != nil {
		t.Fatalf("IsHoliday: %v", err)
	}
	if !holiday {
		t.Fatal("2025-12-25 should be a holiday")
	}

	holiday, err = client.IsHoliday(time.Date(2025, time.December, 26, 9, 0, 0, 0, Zone))
	if err != nil {
		t.Fatalf("IsHoliday: %v", err)
	}
	if holiday {
		t.Fatal("2025-12-26 should not be a holiday")
	}

	// Second lookup for the same year must come from the cache.
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected 1 upstream request, got %d", got)
	}
}

func TestBrasilAPIClientUpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewBrasilAPIClient(srv.URL)
	if _, err := client.IsHoliday(time.Date(2025, time.July, 1, 9, 0, 0, 0, Zone)); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}
