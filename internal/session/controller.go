package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sebastiantruijens/movierec/internal/logging"
	"github.com/sebastiantruijens/movierec/internal/metrics"
	"github.com/sebastiantruijens/movierec/internal/recommend"
)

var errAlreadySent = errors.New("pending request already sent")

// Backend is the part of the recommendation service the controller needs.
// *recommend.Client implements it.
type Backend interface {
	Genres(ctx context.Context) ([]recommend.Genre, error)
	RecommendByFilter(ctx context.Context, f recommend.FilterRequest) (*recommend.Response, error)
	RecommendByQuery(ctx context.Context, q recommend.QueryRequest) (*recommend.Response, error)
}

// Reply is the outcome of one recommendation request. Result is always
// usable: on failure it is SentinelResult and Err says why.
type Reply struct {
	Seq       uint64
	Result    Result
	Committed bool
	Err       error
}

// Controller issues catalog and recommendation requests, normalizes the
// responses and commits them to the session's ResultStore.
type Controller struct {
	backend Backend
	store   *ResultStore
	loading *Loading
}

// NewController creates a controller writing into store and loading.
func NewController(backend Backend, store *ResultStore, loading *Loading) *Controller {
	return &Controller{backend: backend, store: store, loading: loading}
}

// FetchGenres returns the genre catalog, or an empty list if it cannot be
// fetched. The failure is logged; the form works without genres.
func (c *Controller) FetchGenres(ctx context.Context) []Genre {
	raw, err := c.backend.Genres(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("genre catalog unavailable")
		return []Genre{}
	}

	genres := make([]Genre, 0, len(raw))
	for _, g := range raw {
		genres = append(genres, Genre{ID: g.ID, Name: g.Name})
	}
	return genres
}

// RequestByFilter initiates and performs a filter request.
func (c *Controller) RequestByFilter(ctx context.Context, f Filter) Reply {
	return c.Initiate().ByFilter(ctx, f)
}

// RequestByQuery initiates and performs a free-text request.
func (c *Controller) RequestByQuery(ctx context.Context, q Query) Reply {
	return c.Initiate().ByQuery(ctx, q)
}

// Initiate assigns the next sequence number and raises the loading flag.
// Call it on the event loop, then run the returned Pending off-loop; that way
// initiation order is the order the user acted in.
func (c *Controller) Initiate() *Pending {
	seq := c.store.Next()
	c.loading.Begin()
	return &Pending{c: c, seq: seq}
}

// Pending is an initiated request that has not been sent yet. Exactly one of
// ByFilter or ByQuery must be called on it.
type Pending struct {
	c    *Controller
	seq  uint64
	once sync.Once
}

// Seq is the sequence number assigned at initiation.
func (p *Pending) Seq() uint64 {
	return p.seq
}

// ByFilter sends the filter as-is; no field is required.
func (p *Pending) ByFilter(ctx context.Context, f Filter) Reply {
	return p.run("filter", func() (*recommend.Response, error) {
		return p.c.backend.RecommendByFilter(ctx, recommend.FilterRequest{
			GenreID:     f.GenreID,
			ActorName:   f.ActorName,
			ReleaseYear: f.ReleaseYear,
		})
	})
}

// ByQuery sends a free-text query.
func (p *Pending) ByQuery(ctx context.Context, q Query) Reply {
	return p.run("chat", func() (*recommend.Response, error) {
		return p.c.backend.RecommendByQuery(ctx, recommend.QueryRequest{Query: q.Text})
	})
}

func (p *Pending) run(mode string, call func() (*recommend.Response, error)) Reply {
	reply := Reply{Seq: p.seq}
	ran := false

	p.once.Do(func() {
		ran = true
		defer p.c.loading.End()

		resp, err := call()
		if err != nil {
			logging.Warn().Err(err).Str("mode", mode).Uint64("seq", p.seq).Msg("recommendation request failed")
			metrics.Recommendations.WithLabelValues(mode, "failure").Inc()
			reply.Result = SentinelResult()
			reply.Err = err
		} else {
			metrics.Recommendations.WithLabelValues(mode, "success").Inc()
			reply.Result = normalize(resp)
		}
		reply.Committed = p.c.store.Commit(reply.Result, p.seq)
	})

	if !ran {
		logging.Error().Uint64("seq", p.seq).Msg("pending request sent twice")
		reply.Result = SentinelResult()
		reply.Err = errAlreadySent
	}
	return reply
}

// normalize maps a backend response onto a Result: missing prose becomes
// FallbackText, a missing movie list becomes empty.
func normalize(resp *recommend.Response) Result {
	if resp == nil {
		return SentinelResult()
	}
	text := resp.Text()
	if text == "" {
		text = FallbackText
	}

	movies := make([]Movie, 0, len(resp.Movies))
	for _, m := range resp.Movies {
		movies = append(movies, Movie{
			Title:        m.Title,
			PosterPath:   m.PosterPath,
			BackdropPath: m.BackdropPath,
			ReleaseDate:  m.ReleaseDate,
			VoteAverage:  m.VoteAverage,
			Overview:     m.Overview,
		})
	}
	return Result{Text: text, Movies: movies}
}
