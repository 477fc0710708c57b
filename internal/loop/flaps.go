package loop

// FlapQueue is a single-slot handoff between an input source and the loop.
// Any number of goroutines may Request; only the loop calls Take. A burst
// of requests between two ticks collapses into one pending flap.
type FlapQueue struct {
	slot chan struct{}
}

// NewFlapQueue creates an empty queue.
func NewFlapQueue() *FlapQueue {
	return &FlapQueue{slot: make(chan struct{}, 1)}
}

// Request marks a flap as pending. It never blocks.
func (q *FlapQueue) Request() {
	select {
	case q.slot <- struct{}{}:
	default:
	}
}

// Take consumes the pending flap, reporting whether there was one.
func (q *FlapQueue) Take() bool {
	select {
	case <-q.slot:
		return true
	default:
		return false
	}
}

// Pending reports whether a flap is waiting, without consuming it.
func (q *FlapQueue) Pending() bool {
	return len(q.slot) > 0
}
