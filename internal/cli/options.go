package cli

import "time"

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Concurrency int
	BatchFile   string
	Format      string
}
