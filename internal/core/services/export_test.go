package services

// inspect runs fn on the loop goroutine after every event posted before it.
// It returns false if the coordinator is closed.
func (c *ResultCoordinator) inspect(fn func()) bool {
	done := make(chan struct{})
	select {
	case c.events <- inspectEvent{fn: fn, done: done}:
	case <-c.done:
		return false
	}
	select {
	case <-done:
		return true
	case <-c.stopped:
		return false
	}
}
