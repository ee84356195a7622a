package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	ServerPort      string
	RedisAddr       string
	UploadDir       string
	NumberOfWorkers int

	// Server-side fallback provider keys. Keys sent by the client in
	// request headers take precedence over these.
	AnthropicKey  string
	ElevenLabsKey string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	numWorkerInt, _ := strconv.Atoi(os.Getenv("NUM_OF_WORKERS"))
	if numWorkerInt <= 0 {
		numWorkerInt = 2
	}

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "codecoach"),
		DBPassword:      getEnv("DB_PASSWORD", "codecoach"),
		DBName:          getEnv("DB_NAME", "codecoach"),
		ServerPort:      getEnv("SERVER_PORT", "8000"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		NumberOfWorkers: numWorkerInt,
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		ElevenLabsKey:   os.Getenv("ELEVENLABS_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
