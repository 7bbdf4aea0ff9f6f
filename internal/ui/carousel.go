package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sebastiantruijens/movierec/internal/session"
)

var lastCarouselID int64

// CarouselTickMsg advances a Carousel by one card.
type CarouselTickMsg struct {
	Time time.Time
	ID   int
	tag  int
}

// FallbackMovies is the decorative set shown before any real results exist.
func FallbackMovies() []session.Movie {
	return []session.Movie{
		{Title: "Fake Movie 1", PosterPath: "https://via.placeholder.com/150x200?text=Fake+Movie+1"},
		{Title: "Fake Movie 2", PosterPath: "https://via.placeholder.com/150x200?text=Fake+Movie+2"},
		{Title: "Fake Movie 3", PosterPath: "https://via.placeholder.com/150x200?text=Fake+Movie+3"},
	}
}

// Carousel auto-scrolls a window of Visible cards over a fixed movie set,
// wrapping to the start once the last card has come into view.
type Carousel struct {
	id       int
	tag      int
	interval time.Duration
	items    []session.Movie
	visible  int
	offset   int
	running  bool
}

// NewCarousel creates a stopped carousel.
func NewCarousel(items []session.Movie, visible int, interval time.Duration) Carousel {
	if visible < 1 {
		visible = 1
	}
	return Carousel{
		id:       int(atomic.AddInt64(&lastCarouselID, 1)),
		interval: interval,
		items:    items,
		visible:  visible,
	}
}

// Start begins auto-scrolling. Starting a running carousel is a no-op.
func (c Carousel) Start() (Carousel, tea.Cmd) {
	if c.running {
		return c, nil
	}
	c.running = true
	c.tag++
	return c, c.tick()
}

// Stop releases the tick chain; a tick already scheduled is ignored when it fires.
func (c Carousel) Stop() Carousel {
	c.running = false
	c.tag++
	return c
}

// Update handles CarouselTickMsg.
func (c Carousel) Update(msg tea.Msg) (Carousel, tea.Cmd) {
	tick, ok := msg.(CarouselTickMsg)
	if !ok {
		return c, nil
	}
	if tick.ID != c.id || tick.tag != c.tag || !c.running {
		return c, nil
	}

	c.offset++
	if c.offset+c.visible > len(c.items) {
		c.offset = 0
	}
	return c, c.tick()
}

// Window returns the cards currently in view.
func (c Carousel) Window() []session.Movie {
	end := c.offset + c.visible
	if end > len(c.items) {
		end = len(c.items)
	}
	return c.items[c.offset:end]
}

// Offset is the index of the first visible card.
func (c Carousel) Offset() int {
	return c.offset
}

// Running reports whether the carousel is scrolling.
func (c Carousel) Running() bool {
	return c.running
}

func (c Carousel) tick() tea.Cmd {
	id, tag := c.id, c.tag
	return tea.Tick(c.interval, func(ts time.Time) tea.Msg {
		return CarouselTickMsg{Time: ts, ID: id, tag: tag}
	})
}
