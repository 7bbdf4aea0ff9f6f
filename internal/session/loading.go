package session

import (
	"sync"

	"github.com/sebastiantruijens/movierec/internal/metrics"
)

// Loading is the shared loading indicator. It stays active while at least one
// request is in flight, so the form and the chat cannot clear each other's flag.
type Loading struct {
	mu       sync.Mutex
	inFlight int
}

// Begin marks a request as started.
func (l *Loading) Begin() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight++
	metrics.RequestsInFlight.Set(float64(l.inFlight))
}

// End marks a request as finished.
func (l *Loading) End() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight > 0 {
		l.inFlight--
	}
	metrics.RequestsInFlight.Set(float64(l.inFlight))
}

// Active reports whether any request is in flight.
func (l *Loading) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight > 0
}

// InFlight returns the number of outstanding requests.
func (l *Loading) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}
