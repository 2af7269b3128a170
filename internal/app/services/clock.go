package services

import "time"

// Clock returns the current time; tests pin it
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
