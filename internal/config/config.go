package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port         string
	Env          string
	ReadTimeout  int
	WriteTimeout int

	// Database
	DatabasePath string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiTemperature    float64
	GeminiConcurrentReqs int

	// Chatbot
	MemoryMaxTurns       int
	TrainingContextLimit int

	// Logging
	LogLevel string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "8080"),
		Env:          getEnvOrDefault("ENV", "development"),
		ReadTimeout:  getEnvAsIntOrDefault("READ_TIMEOUT_SECONDS", 15),
		WriteTimeout: getEnvAsIntOrDefault("WRITE_TIMEOUT_SECONDS", 30),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "faqbot.db"),
		// Intentionally not required at startup: a missing key surfaces as an
		// error on the first chat request, when the client is actually built.
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTemperature:    getEnvAsFloatOrDefault("GEMINI_TEMPERATURE", 0.7),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		MemoryMaxTurns:       getEnvAsIntOrDefault("MEMORY_MAX_TURNS", 50),
		TrainingContextLimit: getEnvAsIntOrDefault("TRAINING_CONTEXT_LIMIT", 10),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
