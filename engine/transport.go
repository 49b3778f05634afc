package engine

import "time"

// Transport provides cancelable delayed callbacks. The core never
// sleeps; every pending attack or release goes through here so that
// stopping a hold can cancel what has not fired yet.
type Transport interface {
	// After runs fn once after d. The returned cancel stops the
	// callback if it has not fired; calling it later is harmless.
	After(d time.Duration, fn func()) (cancel func())
}

// TimerTransport schedules on the runtime timer wheel.
type TimerTransport struct{}

func NewTimerTransport() *TimerTransport {
	return &TimerTransport{}
}

func (t *TimerTransport) After(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}
