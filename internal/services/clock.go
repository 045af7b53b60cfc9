package services

import "time"

// Clock abstracts wall time so pacing delays can be driven by tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// holdAtLeast blocks until minimum has passed since started. It is not cancelable.
func holdAtLeast(clock Clock, started time.Time, minimum time.Duration) {
	remaining := minimum - clock.Now().Sub(started)
	if remaining <= 0 {
		return
	}
	<-clock.After(remaining)
}
