package aurora

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePayload = `{
	"probability": {
		"value": 12,
		"calculated": {"value": 31},
		"highest": {"value": 88, "lat": 68.35, "long": 18.82}
	}
}`

func TestProbability(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePayload))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)
	f, err := c.Probability(context.Background(), "64.13", "-21.82")
	if err != nil {
		t.Fatal(err)
	}
	if f.Probability.Calculated.Value != 31 {
		t.Fatalf("calculated probability mismatch: %+v", f)
	}
	if f.Probability.Highest.Lat != 68.35 || f.Probability.Highest.Long != 18.82 {
		t.Fatalf("highest coordinate mismatch: %+v", f)
	}
	for _, want := range []string{"lat=64.13", "long=-21.82", "type=all"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q should contain %q", gotQuery, want)
		}
	}
}

func TestProbabilityUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusBadGateway)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)
	if _, err := c.Probability(context.Background(), "0", "0"); err == nil {
		t.Fatal("non-200 upstream should surface as an error")
	}
}

func TestProbabilityBadPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)
	if _, err := c.Probability(context.Background(), "0", "0"); err == nil {
		t.Fatal("undecodable payload should surface as an error")
	}
}
