package session

import "strings"

// Posters resolves a movie's poster to a displayable URL.
type Posters struct {
	BaseURL     string
	Placeholder string
}

// URL returns the poster URL for m: poster_path, else backdrop_path, joined
// to the image base. Absolute URLs pass through and a movie without either
// path gets the placeholder.
func (p Posters) URL(m Movie) string {
	path := m.PosterPath
	if path == "" {
		path = m.BackdropPath
	}
	if path == "" {
		return p.Placeholder
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(p.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
