package twin

import "time"

// Clock supplies the current time, injectable so tests can step the
// twin with synthetic deltas instead of sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
