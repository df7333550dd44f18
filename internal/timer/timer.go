package timer

import (
	"sync/atomic"
	"time"
)

// Resolution is the frequency at which the clock is updated. It is precise enough for
// I/O deadlines, which is the only thing the clock is used for.
const Resolution = 500 * time.Millisecond

var millis = new(atomic.Int64)

func init() {
	// the goroutine isn't guaranteed to start immediately, so the first value is stored
	// synchronously
	millis.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			millis.Store(time.Now().UnixMilli())
		}
	}()
}

// Now returns the coarse current time.
func Now() time.Time {
	ms := millis.Load()
	return time.Unix(ms/1000, (ms%1000)*1e6)
}

// Deadline returns the moment the period expires at. As the clock lags behind by at most
// Resolution, the deadline may fire that much later, but never earlier. Non-positive
// periods mean no deadline, which is represented by the zero time.
func Deadline(period time.Duration) time.Time {
	if period <= 0 {
		return time.Time{}
	}

	return Now().Add(period + Resolution)
}
