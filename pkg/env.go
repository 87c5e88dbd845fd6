package pkg

import "os"

// Getenv returns the value of key, or defaultValue if the key is not present.
// An empty value is returned as is.
func Getenv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
