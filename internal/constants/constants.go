package constants

import "time"

const (
	RequestTimeout     = 30 * time.Second
	FollowFetchTimeout = 15 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)
