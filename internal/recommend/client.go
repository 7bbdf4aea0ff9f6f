// Package recommend talks to the movie recommendation backend: the genre
// catalog (GET /genres) and the recommender (POST /recommend).
package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/sebastiantruijens/movierec/internal/config"
	"github.com/sebastiantruijens/movierec/internal/logging"
	"github.com/sebastiantruijens/movierec/internal/metrics"
)

const maxBodyBytes = 4 << 20

var (
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrDecode is returned when a body is not the JSON we expect.
	ErrDecode = errors.New("decode response")
	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("backend unavailable: circuit open")
)

// Client handles interactions with the recommendation backend.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	cb        *gobreaker.CircuitBreaker[*rawResponse]
}

type rawResponse struct {
	contentType string
	body        []byte
}

// NewClient creates a new backend client.
func NewClient(cfg config.APIConfig) *Client {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		cb:      newBreaker(cfg),
	}
}

// Genres fetches the genre catalog.
//
// Besides the documented list of {id, name}, the older backend answered with
// a {name: id} object and TMDB itself wraps the list in {"genres": [...]};
// all three are accepted. The object form is ordered by name.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	raw, err := c.do(ctx, http.MethodGet, "/genres", nil)
	if err != nil {
		return nil, err
	}
	return decodeGenres(raw.body)
}

// RecommendByFilter asks for recommendations matching structured filters.
func (c *Client) RecommendByFilter(ctx context.Context, f FilterRequest) (*Response, error) {
	return c.recommend(ctx, f)
}

// RecommendByQuery asks for recommendations for a free-text query.
func (c *Client) RecommendByQuery(ctx context.Context, q QueryRequest) (*Response, error) {
	return c.recommend(ctx, q)
}

func (c *Client) recommend(ctx context.Context, body interface{}) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/recommend", payload)
	if err != nil {
		return nil, err
	}

	var out Response
	if err := json.Unmarshal(raw.body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v body=%q", ErrDecode, err, describeBody(raw.contentType, raw.body))
	}
	return &out, nil
}

// do performs one call through the rate limiter and the circuit breaker.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*rawResponse, error) {
	endpoint := strings.TrimPrefix(path, "/")

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.BackendRequests.WithLabelValues(endpoint, "rejected").Inc()
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqID := uuid.NewString()
	log := logging.With().Str("request_id", reqID).Str("endpoint", endpoint).Logger()
	start := time.Now()

	raw, err := c.cb.Execute(func() (*rawResponse, error) {
		return c.roundTrip(ctx, method, path, reqID, payload)
	})
	metrics.BackendDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.BackendRequests.WithLabelValues(endpoint, "rejected").Inc()
			log.Warn().Msg("backend call rejected by circuit breaker")
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		metrics.BackendRequests.WithLabelValues(endpoint, "failure").Inc()
		log.Debug().Err(err).Msg("backend call failed")
		return nil, err
	}

	metrics.BackendRequests.WithLabelValues(endpoint, "success").Inc()
	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(raw.body)).
		Msg("backend call finished")
	return raw, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path, reqID string, payload []byte) (*rawResponse, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d from %s: %s", ErrStatus, resp.StatusCode, path, describeBody(contentType, body))
	}
	return &rawResponse{contentType: contentType, body: body}, nil
}

func decodeGenres(body []byte) ([]Genre, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty genre catalog body", ErrDecode)
	}

	switch trimmed[0] {
	case '[':
		var list []Genre
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return list, nil

	case '{':
		var envelope struct {
			Genres []Genre `json:"genres"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Genres != nil {
			return envelope.Genres, nil
		}

		var byName map[string]int
		if err := json.Unmarshal(trimmed, &byName); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		list := make([]Genre, 0, len(byName))
		for name, id := range byName {
			list = append(list, Genre{ID: id, Name: name})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		return list, nil
	}

	return nil, fmt.Errorf("%w: genre catalog is not JSON: %s", ErrDecode, describeBody("", trimmed))
}
