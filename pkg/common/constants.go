package common

import "time"

const (
	SettingsCacheTTL = 5 * time.Minute

	RequestIDHeader = "X-Request-Id"
)
