package configs

import "time"

// Seconds is a duration written as a number of seconds in config files.
type Seconds float64

func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}
