package service

import "time"

// Clock supplies the current time. Services never call time.Now directly.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}
