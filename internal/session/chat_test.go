package session

import (
	"errors"
	"testing"
)

func replyWith(text string, movies int) Reply {
	r := Reply{Result: Result{Text: text, Movies: []Movie{}}}
	for i := 0; i < movies; i++ {
		r.Result.Movies = append(r.Result.Movies, Movie{Title: "m"})
	}
	return r
}

func TestChat_OpenResetsToGreeting(t *testing.T) {
	c := NewChat()
	if c.State() != ChatClosed {
		t.Fatalf("new chat state = %v", c.State())
	}

	c.Open()
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Sender != SenderBot || msgs[0].Text != Greeting {
		t.Fatalf("transcript after open = %+v", msgs)
	}
	if c.ShowMovies() {
		t.Error("grid must be hidden on open")
	}
	if c.State() != ChatAwaitingInput {
		t.Errorf("state = %v", c.State())
	}
}

func TestChat_TurnAppendsUserThenBot(t *testing.T) {
	c := NewChat()
	c.Open()

	turn, ok := c.Submit("funny movies from the 90s")
	if !ok {
		t.Fatal("submit rejected")
	}
	if turn.Query.Text != "funny movies from the 90s" {
		t.Errorf("turn query = %q", turn.Query.Text)
	}
	if c.State() != ChatAwaitingResponse {
		t.Errorf("state = %v", c.State())
	}
	msgs := c.Messages()
	if len(msgs) != 2 || msgs[1].Sender != SenderUser {
		t.Fatalf("user message must be appended synchronously: %+v", msgs)
	}

	if !c.Resolve(turn, replyWith("Try Dumb and Dumber", 1)) {
		t.Fatal("reply not applied")
	}
	msgs = c.Messages()
	if len(msgs) != 3 || msgs[2].Sender != SenderBot || msgs[2].Text != "Try Dumb and Dumber" {
		t.Fatalf("transcript = %+v", msgs)
	}
	if !c.ShowMovies() {
		t.Error("grid should be shown after a reply with movies")
	}
	if c.State() != ChatAwaitingInput {
		t.Errorf("state = %v", c.State())
	}
}

func TestChat_BlankInputIsNoop(t *testing.T) {
	c := NewChat()
	c.Open()

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, ok := c.Submit(text); ok {
			t.Errorf("Submit(%q) accepted", text)
		}
	}
	if n := len(c.Messages()); n != 1 {
		t.Errorf("transcript grew to %d entries", n)
	}
	if c.State() != ChatAwaitingInput {
		t.Errorf("state = %v", c.State())
	}
}

func TestChat_OneTurnInFlight(t *testing.T) {
	c := NewChat()
	c.Open()

	first, ok := c.Submit("one")
	if !ok {
		t.Fatal("first submit rejected")
	}
	if _, ok := c.Submit("two"); ok {
		t.Fatal("second submit accepted while awaiting response")
	}
	if n := len(c.Messages()); n != 2 {
		t.Errorf("transcript has %d entries, want 2", n)
	}

	c.Resolve(first, replyWith("reply", 0))
	if _, ok := c.Submit("two"); !ok {
		t.Error("submit should be accepted after the reply")
	}
}

func TestChat_FailureUsesApology(t *testing.T) {
	c := NewChat()
	c.Open()
	turn, _ := c.Submit("anything")

	reply := Reply{Result: SentinelResult(), Err: errors.New("timeout")}
	c.Resolve(turn, reply)

	msgs := c.Messages()
	if got := msgs[len(msgs)-1].Text; got != ApologyText {
		t.Errorf("bot text = %q, want apology", got)
	}
	if c.ShowMovies() {
		t.Error("failed reply must not show the grid")
	}
}

func TestChat_GridNeverHidesWithinSession(t *testing.T) {
	c := NewChat()
	c.Open()

	replies := []Reply{replyWith("a", 0), replyWith("b", 2), replyWith("c", 0), {Result: SentinelResult(), Err: errors.New("x")}, replyWith("d", 0)}
	shown := false
	for i, r := range replies {
		turn, ok := c.Submit("q")
		if !ok {
			t.Fatalf("turn %d rejected", i)
		}
		c.Resolve(turn, r)
		if c.ShowMovies() {
			shown = true
		}
		if shown && !c.ShowMovies() {
			t.Fatalf("grid hidden again after turn %d", i)
		}
	}
	if !shown {
		t.Fatal("grid was never shown")
	}
	if n := len(c.Movies()); n != 2 {
		t.Errorf("grid holds %d movies, want the 2 from the last non-empty reply", n)
	}

	c.Open()
	if c.ShowMovies() || len(c.Movies()) != 0 {
		t.Error("reopening must hide and clear the grid")
	}
}

func TestChat_MoviesKeepsLatestNonEmptyList(t *testing.T) {
	c := NewChat()
	c.Open()

	first := replyWith("first", 0)
	first.Result.Movies = []Movie{{Title: "Heat"}}
	second := replyWith("second", 0)
	second.Result.Movies = []Movie{{Title: "Ronin"}, {Title: "Collateral"}}

	for _, r := range []Reply{first, second, replyWith("nothing", 0)} {
		turn, _ := c.Submit("q")
		c.Resolve(turn, r)
	}

	movies := c.Movies()
	if len(movies) != 2 || movies[0].Title != "Ronin" || movies[1].Title != "Collateral" {
		t.Errorf("movies = %+v", movies)
	}
}

func TestChat_ReplyFromPreviousSessionDropped(t *testing.T) {
	c := NewChat()
	c.Open()
	turn, _ := c.Submit("old question")

	c.Close()
	c.Open()

	if c.Resolve(turn, replyWith("late answer", 3)) {
		t.Fatal("reply from a closed session was applied")
	}
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Text != Greeting {
		t.Errorf("transcript = %+v", msgs)
	}
	if c.ShowMovies() {
		t.Error("late reply must not reveal the grid")
	}
}

func TestChat_SubmitWhileClosed(t *testing.T) {
	c := NewChat()
	if _, ok := c.Submit("hello"); ok {
		t.Error("closed chat accepted a turn")
	}
}

func TestChat_MessagesIsCopy(t *testing.T) {
	c := NewChat()
	c.Open()
	msgs := c.Messages()
	msgs[0].Text = "tampered"
	if c.Messages()[0].Text != Greeting {
		t.Error("Messages must not expose internal storage")
	}
}
