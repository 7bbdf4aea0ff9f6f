package session

import "strings"

// ChatState is the state of the chat dialog.
type ChatState int

const (
	ChatClosed ChatState = iota
	ChatAwaitingInput
	ChatAwaitingResponse
)

func (s ChatState) String() string {
	switch s {
	case ChatClosed:
		return "closed"
	case ChatAwaitingInput:
		return "awaiting-input"
	case ChatAwaitingResponse:
		return "awaiting-response"
	default:
		return "unknown"
	}
}

// Turn identifies a submitted chat turn. Its epoch ties the reply to the
// dialog session it was asked in.
type Turn struct {
	Query Query
	epoch uint64
}

// Chat is the chat dialog state machine:
//
//	Closed -> Open (greeting) -> AwaitingInput <-> AwaitingResponse
//
// Only the event loop touches it, so it carries no lock.
type Chat struct {
	state      ChatState
	messages   []Message
	showMovies bool
	movies     []Movie
	epoch      uint64
}

// NewChat returns a closed chat.
func NewChat() *Chat {
	return &Chat{state: ChatClosed}
}

// Open starts a fresh dialog session: the transcript is reset to the
// greeting and the movie grid is hidden.
func (c *Chat) Open() {
	c.epoch++
	c.state = ChatAwaitingInput
	c.messages = []Message{{Sender: SenderBot, Text: Greeting}}
	c.showMovies = false
	c.movies = nil
}

// Close closes the dialog. A reply still in flight is dropped when it arrives.
func (c *Chat) Close() {
	c.state = ChatClosed
}

// Submit records the user's text and returns the turn to send. It returns
// false, changing nothing, for blank text, a closed dialog, or while a
// previous turn is still awaiting its reply.
func (c *Chat) Submit(text string) (Turn, bool) {
	if c.state != ChatAwaitingInput {
		return Turn{}, false
	}
	if strings.TrimSpace(text) == "" {
		return Turn{}, false
	}

	c.messages = append(c.messages, Message{Sender: SenderUser, Text: text})
	c.state = ChatAwaitingResponse
	return Turn{Query: Query{Text: text}, epoch: c.epoch}, true
}

// Resolve appends the bot's reply for turn. Once the grid is shown it stays
// shown for the rest of the dialog session, and keeps the last non-empty
// movie list when a later reply has no movies. Replies from an earlier
// session are ignored; Resolve reports whether the reply was applied.
func (c *Chat) Resolve(turn Turn, reply Reply) bool {
	if turn.epoch != c.epoch || c.state != ChatAwaitingResponse {
		return false
	}

	text := reply.Result.Text
	if reply.Err != nil {
		text = ApologyText
	}
	c.messages = append(c.messages, Message{Sender: SenderBot, Text: text})

	if len(reply.Result.Movies) > 0 {
		c.showMovies = true
		c.movies = reply.Result.Movies
	}
	c.state = ChatAwaitingInput
	return true
}

// State returns the current state.
func (c *Chat) State() ChatState {
	return c.state
}

// Messages returns a copy of the transcript.
func (c *Chat) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// ShowMovies reports whether the movie grid is visible in the dialog.
func (c *Chat) ShowMovies() bool {
	return c.showMovies
}

// Movies returns the movie list the dialog's grid shows: the most recent
// non-empty list of this dialog session.
func (c *Chat) Movies() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}
