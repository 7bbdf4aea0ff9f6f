package recommend

import (
	"strings"

	"github.com/goccy/go-json"
)

// Genre is one entry of the genre catalog.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FilterRequest is the structured body of POST /recommend.
// Unset fields go out as empty strings, which the backend treats as "any".
type FilterRequest struct {
	GenreID     *int
	ActorName   string
	ReleaseYear string
}

// MarshalJSON encodes genre_id as a number when set and as "" otherwise.
func (f FilterRequest) MarshalJSON() ([]byte, error) {
	var genre interface{} = ""
	if f.GenreID != nil {
		genre = *f.GenreID
	}
	return json.Marshal(struct {
		GenreID     interface{} `json:"genre_id"`
		ActorName   string      `json:"actor_name"`
		ReleaseYear string      `json:"release_year"`
	}{genre, f.ActorName, f.ReleaseYear})
}

// QueryRequest is the free-text body of POST /recommend.
type QueryRequest struct {
	Query string `json:"query"`
}

// Movie is a movie as returned by the backend (TMDB field names).
type Movie struct {
	Title        string   `json:"title"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	ReleaseDate  string   `json:"release_date"`
	VoteAverage  *float64 `json:"vote_average"`
	Overview     string   `json:"overview"`
}

// Response is the body returned by POST /recommend.
//
// Recommendations is usually a string, but the agent backend has been seen
// returning an error object in its place, so it is decoded loosely.
type Response struct {
	Recommendations interface{} `json:"recommendations"`
	Movies          []Movie     `json:"movies"`
}

// Text returns the recommendation prose, or "" when it is absent or not a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	s, ok := r.Recommendations.(string)
	if !ok {
		return ""
	}
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
