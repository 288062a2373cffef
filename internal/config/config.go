package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string   `yaml:"port"`
	Environment string   `yaml:"environment"`
	AppId       string   `yaml:"app_id"`
	CORSOrigins string   `yaml:"cors_origins"`
	MongoURI    string   `yaml:"mongo_uri"` // Empty disables the audit trail and the DB log sink
	DBName      string   `yaml:"db_name"`
	ElasticURLs []string `yaml:"elasticsearch_urls"`
	ElasticUser string   `yaml:"elasticsearch_username"`
	ElasticPass string   `yaml:"elasticsearch_password"`

	Index        string `yaml:"search_index"`
	DocType      string `yaml:"search_doc_type"`
	TemplateName string `yaml:"template_name"`
	TemplatePath string `yaml:"template_path"`

	ViewsRoot string `yaml:"views_root"` // Root folder of the saved views tree

	ScrollSize      int           `yaml:"scroll_size"`
	ScrollKeepAlive time.Duration `yaml:"scroll_keep_alive"`
	FacetSize       int           `yaml:"facet_size"`

	BootstrapSchedule string `yaml:"bootstrap_schedule"` // Cron spec, empty disables re-runs
}

func defaults() *Config {
	return &Config{
		Port:            "8080",
		Environment:     "development",
		AppId:           "go-reporting",
		CORSOrigins:     "http://localhost:3000, http://localhost:8000",
		DBName:          "go-reporting",
		ElasticURLs:     []string{"http://localhost:9200"},
		Index:           "cirrus",
		DocType:         "testinfo",
		TemplateName:    "cirrus_template",
		TemplatePath:    filepath.Join("mappings", "cirrus_template.json"),
		ViewsRoot:       "./test_results_views",
		ScrollSize:      500,
		ScrollKeepAlive: time.Minute,
		FacetSize:       1000,
	}
}

// LoadConfig loads configuration from an optional YAML file and environment variables.
// Precedence: environment > CONFIG_FILE > built-in defaults.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.AppId = getEnv("APP_ID", cfg.AppId)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	if urls := getEnv("ELASTICSEARCH_URLS", ""); urls != "" {
		cfg.ElasticURLs = splitList(urls)
	}
	cfg.ElasticUser = getEnv("ELASTICSEARCH_USERNAME", cfg.ElasticUser)
	cfg.ElasticPass = getEnv("ELASTICSEARCH_PASSWORD", cfg.ElasticPass)
	cfg.Index = getEnv("SEARCH_INDEX", cfg.Index)
	cfg.DocType = getEnv("SEARCH_DOC_TYPE", cfg.DocType)
	cfg.TemplateName = getEnv("TEMPLATE_NAME", cfg.TemplateName)
	if dir := getEnv("LOGSTASH_MAPPINGS_DIR", ""); dir != "" {
		cfg.TemplatePath = filepath.Join(dir, "cirrus_template.json")
	}
	cfg.TemplatePath = getEnv("TEMPLATE_PATH", cfg.TemplatePath)
	cfg.ViewsRoot = getEnv("VIEWS_ROOT", cfg.ViewsRoot)
	cfg.BootstrapSchedule = getEnv("BOOTSTRAP_SCHEDULE", cfg.BootstrapSchedule)

	var err error
	if cfg.ScrollSize, err = getEnvInt("SCROLL_SIZE", cfg.ScrollSize); err != nil {
		return nil, err
	}
	if cfg.FacetSize, err = getEnvInt("FACET_SIZE", cfg.FacetSize); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("SCROLL_KEEP_ALIVE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCROLL_KEEP_ALIVE %q: %w", v, err)
		}
		cfg.ScrollKeepAlive = d
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, value)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
