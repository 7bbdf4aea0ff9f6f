package recommend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/sebastiantruijens/movierec/internal/config"
	"github.com/sebastiantruijens/movierec/internal/logging"
	"github.com/sebastiantruijens/movierec/internal/metrics"
)

func init() {
	logging.SetLogger(zerolog.Nop())
}

func testAPIConfig(baseURL string) config.APIConfig {
	cfg := config.Default().API
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	cfg.RatePerSecond = 0
	cfg.BreakerMinRequests = 3
	cfg.BreakerOpenTimeout = time.Minute
	return cfg
}

func TestGenres_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/genres" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]`)
	}))
	defer srv.Close()

	genres, err := NewClient(testAPIConfig(srv.URL)).Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres: %v", err)
	}
	want := []Genre{{28, "Action"}, {35, "Comedy"}}
	if len(genres) != len(want) {
		t.Fatalf("got %d genres, want %d", len(genres), len(want))
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Errorf("genres[%d] = %+v, want %+v", i, genres[i], want[i])
		}
	}
}

func TestDecodeGenres_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Genre
	}{
		{"list", `[{"id":1,"name":"B"},{"id":2,"name":"A"}]`, []Genre{{1, "B"}, {2, "A"}}},
		{"tmdb envelope", `{"genres":[{"id":18,"name":"Drama"}]}`, []Genre{{18, "Drama"}}},
		{"name to id object", `{"Comedy":35,"Action":28}`, []Genre{{28, "Action"}, {35, "Comedy"}}},
		{"empty list", `[]`, []Genre{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeGenres([]byte(tt.body))
			if err != nil {
				t.Fatalf("decodeGenres: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodeGenres_NotJSON(t *testing.T) {
	_, err := decodeGenres([]byte("<html><title>Oops</title></html>"))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if !strings.Contains(err.Error(), "Oops") {
		t.Errorf("error should carry the page title: %v", err)
	}
}

func TestRecommendByFilter_Body(t *testing.T) {
	genre := 28
	tests := []struct {
		name   string
		filter FilterRequest
		want   map[string]interface{}
	}{
		{
			name:   "all set",
			filter: FilterRequest{GenreID: &genre, ActorName: "Keanu Reeves", ReleaseYear: "1999"},
			want:   map[string]interface{}{"genre_id": float64(28), "actor_name": "Keanu Reeves", "release_year": "1999"},
		},
		{
			name:   "all empty",
			filter: FilterRequest{},
			want:   map[string]interface{}{"genre_id": "", "actor_name": "", "release_year": ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var got map[string]interface{}
				if r.Method != http.MethodPost || r.URL.Path != "/recommend" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q", ct)
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decode body: %v", err)
				}
				for k, v := range tt.want {
					if got[k] != v {
						t.Errorf("body[%q] = %#v, want %#v", k, got[k], v)
					}
				}
				_, _ = io.WriteString(w, `{"recommendations":"ok","movies":[]}`)
			}))
			defer srv.Close()

			if _, err := NewClient(testAPIConfig(srv.URL)).RecommendByFilter(context.Background(), tt.filter); err != nil {
				t.Fatalf("RecommendByFilter: %v", err)
			}
		})
	}
}

func TestRecommendByQuery_Response(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body QueryRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Query != "funny movies from the 90s" {
			t.Errorf("query = %q", body.Query)
		}
		_, _ = io.WriteString(w, `{
			"recommendations": "**Dumb and Dumber**",
			"movies": [{"title":"Dumb and Dumber","poster_path":"/d.jpg","release_date":"1994-12-16","vote_average":6.8,"overview":"Two friends...","backdrop_path":null}]
		}`)
	}))
	defer srv.Close()

	resp, err := NewClient(testAPIConfig(srv.URL)).RecommendByQuery(context.Background(), QueryRequest{Query: "funny movies from the 90s"})
	if err != nil {
		t.Fatalf("RecommendByQuery: %v", err)
	}
	if resp.Text() != "**Dumb and Dumber**" {
		t.Errorf("Text() = %q", resp.Text())
	}
	if len(resp.Movies) != 1 {
		t.Fatalf("got %d movies", len(resp.Movies))
	}
	m := resp.Movies[0]
	if m.Title != "Dumb and Dumber" || m.PosterPath != "/d.jpg" || m.BackdropPath != "" {
		t.Errorf("movie = %+v", m)
	}
	if m.VoteAverage == nil || *m.VoteAverage != 6.8 {
		t.Errorf("VoteAverage = %v", m.VoteAverage)
	}
}

func TestResponseText_Loose(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing", `{"movies":[]}`, ""},
		{"blank", `{"recommendations":"   "}`, ""},
		{"object", `{"recommendations":{"error":"boom"}}`, ""},
		{"string", `{"recommendations":"watch this"}`, "watch this"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Response
			if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
				t.Fatal(err)
			}
			if got := r.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecommend_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<!doctype html><html><head><title>KeyError: 'title' // Werkzeug Debugger</title></head><body></body></html>")
	}))
	defer srv.Close()

	_, err := NewClient(testAPIConfig(srv.URL)).RecommendByQuery(context.Background(), QueryRequest{Query: "x"})
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	if !strings.Contains(err.Error(), "KeyError") {
		t.Errorf("error should summarize the HTML title: %v", err)
	}
}

func TestRecommend_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "definitely not json")
	}))
	defer srv.Close()

	_, err := NewClient(testAPIConfig(srv.URL)).RecommendByQuery(context.Background(), QueryRequest{Query: "x"})
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testAPIConfig(srv.URL))
	before := testutil.ToFloat64(metrics.BackendRequests.WithLabelValues("recommend", "rejected"))

	// BreakerMinRequests is 3 with a 0.6 ratio: three failures trip it.
	for i := 0; i < 3; i++ {
		if _, err := c.RecommendByQuery(context.Background(), QueryRequest{Query: "x"}); !errors.Is(err, ErrStatus) {
			t.Fatalf("call %d: expected ErrStatus, got %v", i, err)
		}
	}

	_, err := c.RecommendByQuery(context.Background(), QueryRequest{Query: "x"})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("backend saw %d calls, want 3", n)
	}
	after := testutil.ToFloat64(metrics.BackendRequests.WithLabelValues("recommend", "rejected"))
	if after-before != 1 {
		t.Errorf("rejected counter delta = %v, want 1", after-before)
	}
	if got := testutil.ToFloat64(metrics.BreakerState); got != 2 {
		t.Errorf("breaker state gauge = %v, want 2 (open)", got)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(testAPIConfig(url)).Genres(context.Background())
	if err == nil {
		t.Fatal("expected transport error against a closed server")
	}
}

func TestDescribeBody(t *testing.T) {
	tests := []struct {
		name, contentType, body, want string
	}{
		{"empty", "", "", ""},
		{"html title", "text/html", "<html><head><title> Internal   Server Error </title></head></html>", "Internal Server Error"},
		{"html h1 only", "", "<html><body><h1>Bad Gateway</h1></body></html>", "Bad Gateway"},
		{"plain text", "text/plain", "upstream\nreset", "upstream reset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeBody(tt.contentType, []byte(tt.body)); got != tt.want {
				t.Errorf("describeBody = %q, want %q", got, tt.want)
			}
		})
	}
}
