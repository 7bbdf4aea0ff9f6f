package session

// Session is the state of one running client, passed to every component
// instead of living in package globals.
type Session struct {
	Store      *ResultStore
	Loading    *Loading
	Controller *Controller
	Chat       *Chat
	Posters    Posters
}

// New wires a session around backend.
func New(backend Backend, posters Posters) *Session {
	store := NewResultStore()
	loading := &Loading{}
	return &Session{
		Store:      store,
		Loading:    loading,
		Controller: NewController(backend, store, loading),
		Chat:       NewChat(),
		Posters:    posters,
	}
}
