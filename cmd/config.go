package cmd

import "time"

// Config carries all runtime configuration, loaded from the environment at
// startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	// NotificationRetention is how long read notifications are kept before
	// the hourly cleanup job removes them.
	NotificationRetention time.Duration
}
