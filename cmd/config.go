package cmd

// Config carries the process configuration read from the environment.
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

	AmqpURL string

	GeofenceToleranceMeters string
	NearDuplicatePolicy     string
}
