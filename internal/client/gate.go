package client

import "sync/atomic"

// Gate serializes mutation attempts for a single control. While a
// mutation is settling, further triggers are no-ops. Each control
// (one like button, one save button) owns its own Gate.
type Gate struct {
	inFlight atomic.Bool
}

// TryAcquire marks the gate busy. It returns false when a mutation is
// already in flight, in which case the caller must do nothing.
func (g *Gate) TryAcquire() bool {
	return g.inFlight.CompareAndSwap(false, true)
}

// Release clears the busy flag. Callers defer this immediately after a
// successful TryAcquire so it runs on every exit path.
func (g *Gate) Release() {
	g.inFlight.Store(false)
}

// Busy reports whether a mutation is currently in flight.
func (g *Gate) Busy() bool {
	return g.inFlight.Load()
}
