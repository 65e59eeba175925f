package env

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory if there is one.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
}

// MustGetEnv returns the value of key and exits when it is unset or empty.
func MustGetEnv(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		log.Fatalf("Environment variable %s not set", key)
	}
	return val
}

// GetEnv returns the value of key, or def when it is unset or empty.
func GetEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

// GetFloat parses key as a float, falling back to def when unset or invalid.
func GetFloat(key string, def float64) float64 {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, val, def)
		return def
	}
	return f
}

// GetDuration parses key with time.ParseDuration, falling back to def.
func GetDuration(key string, def time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, val, def)
		return def
	}
	return d
}

// GetBool parses key with strconv.ParseBool, falling back to def when unset or invalid.
func GetBool(key string, def bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, val, def)
		return def
	}
	return b
}
