package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFillerPhrases is the built-in fallback list. The exact list is
// configurable via FILLER_PHRASES or an extractor YAML file.
var DefaultFillerPhrases = []string{"need to", "have to", "must", "going to", "want to"}

type Config struct {
	Port string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	ExtractTimeout time.Duration
	FillerPhrases  []string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
}

type extractorFile struct {
	FillerPhrases []string `yaml:"filler_phrases"`
}

func Load() *Config {
	// .env is optional, local dev convenience only
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432 // fallback
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	timeoutMS, err := strconv.Atoi(os.Getenv("EXTRACT_TIMEOUT_MS"))
	if err != nil || timeoutMS <= 0 {
		timeoutMS = 5000
	}

	ttlMin, err := strconv.Atoi(os.Getenv("CACHE_TTL_MIN"))
	if err != nil || ttlMin <= 0 {
		ttlMin = 60
	}

	return &Config{
		Port: port,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     dbPort,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   model,
		OpenAIBaseURL: baseURL,

		ExtractTimeout: time.Duration(timeoutMS) * time.Millisecond,
		FillerPhrases:  loadFillerPhrases(),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      time.Duration(ttlMin) * time.Minute,
	}
}

// loadFillerPhrases resolves the fallback phrase list, in priority order:
// EXTRACTOR_CONFIG yaml file, FILLER_PHRASES env, built-in defaults.
func loadFillerPhrases() []string {
	if path := os.Getenv("EXTRACTOR_CONFIG"); path != "" {
		if phrases, err := readExtractorFile(path); err == nil && len(phrases) > 0 {
			return phrases
		}
	}

	if raw := os.Getenv("FILLER_PHRASES"); raw != "" {
		var phrases []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				phrases = append(phrases, p)
			}
		}
		if len(phrases) > 0 {
			return phrases
		}
	}

	return DefaultFillerPhrases
}

func readExtractorFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f extractorFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return f.FillerPhrases, nil
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
