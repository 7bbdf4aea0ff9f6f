// Package session holds the client-side interaction state shared by the
// filter form and the chat dialog: the committed recommendation result, the
// loading indicator, the request controller feeding them, and the chat
// transcript state machine.
//
// Nothing in this package renders anything; the ui package drives it from the
// bubbletea event loop.
package session

// FallbackText replaces missing recommendations and failed requests.
const FallbackText = "No recommendations found."

// Greeting opens every chat session.
const Greeting = "Hi there! 👋 What kind of movies are you looking for today? 🎬✨"

// ApologyText is the bot reply when a chat turn fails.
const ApologyText = "Oops! Something went wrong. Please try again. 😅"

// Genre is a selectable genre from the catalog.
type Genre struct {
	ID   int
	Name string
}

// Filter is one form submission. Empty fields mean "any".
type Filter struct {
	GenreID     *int
	ActorName   string
	ReleaseYear string
}

// Query is one chat turn.
type Query struct {
	Text string
}

// Movie is a recommended movie. Optional fields are empty when the backend
// did not provide them; poster placeholders are applied at render time.
type Movie struct {
	Title        string
	PosterPath   string
	BackdropPath string
	ReleaseDate  string
	VoteAverage  *float64
	Overview     string
}

// Result is the prose and movie list of one response. Text and Movies always
// come from the same response.
type Result struct {
	Text   string
	Movies []Movie
}

// EmptyResult is what the store holds before the first request.
func EmptyResult() Result {
	return Result{Text: "", Movies: []Movie{}}
}

// SentinelResult is substituted for a failed or empty response.
func SentinelResult() Result {
	return Result{Text: FallbackText, Movies: []Movie{}}
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry.
type Message struct {
	Sender Sender
	Text   string
}
