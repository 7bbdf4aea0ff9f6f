package ui

import (
	"testing"
	"time"
)

func titles(c Carousel) []string {
	var out []string
	for _, m := range c.Window() {
		out = append(out, m.Title)
	}
	return out
}

func TestCarousel_AdvancesAndWraps(t *testing.T) {
	c, cmd := NewCarousel(FallbackMovies(), 2, time.Second).Start()
	if cmd == nil || !c.Running() {
		t.Fatal("Start did not schedule a tick")
	}

	want := [][]string{
		{"Fake Movie 2", "Fake Movie 3"},
		{"Fake Movie 1", "Fake Movie 2"},
		{"Fake Movie 2", "Fake Movie 3"},
	}
	if got := titles(c); got[0] != "Fake Movie 1" || got[1] != "Fake Movie 2" {
		t.Fatalf("initial window = %v", got)
	}
	for i, w := range want {
		c, cmd = c.Update(CarouselTickMsg{ID: c.id, tag: c.tag})
		if cmd == nil {
			t.Fatalf("tick %d did not reschedule", i)
		}
		got := titles(c)
		if len(got) != 2 || got[0] != w[0] || got[1] != w[1] {
			t.Errorf("tick %d window = %v, want %v", i, got, w)
		}
	}
}

func TestCarousel_StopDropsPendingTick(t *testing.T) {
	c, _ := NewCarousel(FallbackMovies(), 2, time.Second).Start()
	tag := c.tag
	c = c.Stop()

	c, cmd := c.Update(CarouselTickMsg{ID: c.id, tag: tag})
	if cmd != nil || c.Offset() != 0 {
		t.Errorf("stopped carousel advanced: offset=%d", c.Offset())
	}
	if c.Running() {
		t.Error("still running")
	}
}

func TestCarousel_StartTwiceIsNoop(t *testing.T) {
	c, _ := NewCarousel(FallbackMovies(), 1, time.Second).Start()
	tag := c.tag
	c, cmd := c.Start()
	if cmd != nil || c.tag != tag {
		t.Error("second Start created another tick chain")
	}
}

func TestCarousel_VisibleLargerThanItems(t *testing.T) {
	c, _ := NewCarousel(FallbackMovies(), 5, time.Second).Start()
	c, _ = c.Update(CarouselTickMsg{ID: c.id, tag: c.tag})
	if c.Offset() != 0 || len(c.Window()) != 3 {
		t.Errorf("offset=%d window=%d", c.Offset(), len(c.Window()))
	}
}
