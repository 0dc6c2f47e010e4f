package repos

import (
	"sync/atomic"
	"time"
)

var lastStamp atomic.Int64

// now returns a unix-nano stamp strictly greater than any previously issued
// one, so rows created back to back still list newest first.
func now() int64 {
	for {
		t := time.Now().UnixNano()
		prev := lastStamp.Load()
		if t <= prev {
			t = prev + 1
		}
		if lastStamp.CompareAndSwap(prev, t) {
			return t
		}
	}
}
