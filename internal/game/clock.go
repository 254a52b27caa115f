package game

import "time"

// Clock supplies the current time. Handing it in as a dependency lets tests
// simulate expiry without real delays.
type Clock func() time.Time

// WallClock is the production clock.
func WallClock() time.Time {
	return time.Now().UTC()
}
