package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastTypewriterID int64

func nextTypewriterID() int {
	return int(atomic.AddInt64(&lastTypewriterID, 1))
}

// TypeTickMsg advances a Typewriter by one character.
type TypeTickMsg struct {
	Time time.Time
	ID   int
	tag  int
}

// Typewriter reveals a finished text one character per tick.
//
// Every Start bumps the tag, so ticks scheduled for an earlier text are
// dropped when they arrive and never reschedule: at most one tick chain is
// alive per Typewriter.
type Typewriter struct {
	id       int
	tag      int
	interval time.Duration
	source   []rune
	shown    int
	typing   bool
}

// NewTypewriter creates a Typewriter ticking every interval.
func NewTypewriter(interval time.Duration) Typewriter {
	return Typewriter{id: nextTypewriterID(), interval: interval}
}

// Start discards any reveal in progress and starts revealing text from an
// empty buffer. Empty text completes immediately without scheduling a tick.
func (t Typewriter) Start(text string) (Typewriter, tea.Cmd) {
	t.tag++
	t.source = []rune(text)
	t.shown = 0
	if len(t.source) == 0 {
		t.typing = false
		return t, nil
	}
	t.typing = true
	return t, t.tick()
}

// Update handles TypeTickMsg.
func (t Typewriter) Update(msg tea.Msg) (Typewriter, tea.Cmd) {
	tick, ok := msg.(TypeTickMsg)
	if !ok {
		return t, nil
	}
	if tick.ID != t.id || tick.tag != t.tag || !t.typing {
		return t, nil
	}

	t.shown++
	if t.shown >= len(t.source) {
		t.shown = len(t.source)
		t.typing = false
		return t, nil
	}
	return t, t.tick()
}

// Skip reveals the rest of the text at once and stops ticking.
func (t Typewriter) Skip() Typewriter {
	t.tag++
	t.shown = len(t.source)
	t.typing = false
	return t
}

// View returns the revealed prefix.
func (t Typewriter) View() string {
	return string(t.source[:t.shown])
}

// Typing reports whether a reveal is in progress.
func (t Typewriter) Typing() bool {
	return t.typing
}

// Text returns the full text being revealed.
func (t Typewriter) Text() string {
	return string(t.source)
}

func (t Typewriter) tick() tea.Cmd {
	id, tag := t.id, t.tag
	return tea.Tick(t.interval, func(ts time.Time) tea.Msg {
		return TypeTickMsg{Time: ts, ID: id, tag: tag}
	})
}
