package repositories

import "time"

type Config struct {
	// Timeout bounds each inspection call, zero disables it.
	Timeout time.Duration
}
