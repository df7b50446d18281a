package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var Env map[string]string

func GetEnv(key, def string) string {
	// First check our loaded Env map
	if val, ok := Env[key]; ok {
		return val
	}
	// Fallback to OS environment variables (for Docker/tests)
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func SetupEnvFile() {
	// Look for .env file in project root
	envFiles := []string{
		".env",          // Current directory
		"../../.env",    // From cmd/adyenbridge to project root
		"../../../.env", // Fallback for deeper nesting
	}

	var err error
	for _, envFile := range envFiles {
		Env, err = godotenv.Read(envFile)
		if err == nil {
			// Successfully loaded env file
			return
		}
	}

	// Containers pass configuration through the OS environment only.
	Env = map[string]string{}
}

// GetEnvInt parses key as an integer, returning def when unset or invalid.
func GetEnvInt(key string, def int) int {
	v, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

// GetEnvBool reports whether key is set to a true value.
func GetEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
