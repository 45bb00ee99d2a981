package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Environment
	Environment string

	// Work-queue (Airtable)
	AirtableAPIKey     string
	AirtableBaseID     string
	AirtableURL        string
	AirtableURLTable   string
	AirtableMakerTable string
	AirtableBatchDelay time.Duration

	// Datastore and image storage (Supabase)
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseTable      string
	SupabaseBucket     string

	// Memcache configuration
	MemcacheAddr string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Crawler configuration
	PolitenessDelay time.Duration
	RequestTimeout  time.Duration
	MaxAttempts     int
	RetryDelay      time.Duration
	BlockTime       time.Duration
	BrowserBin      string
	CrawlInterval   time.Duration

	// File that failed pages are appended to
	ErrorLogFile string
}

var defaults = map[string]any{
	"LUREBASE_ENVIRONMENT":      "development",
	"AIRTABLE_URL":              "https://api.airtable.com",
	"AIRTABLE_URL_TABLE":        "Lure URLs",
	"AIRTABLE_MAKER_TABLE":      "Makers",
	"AIRTABLE_BATCH_DELAY_MS":   250,
	"SUPABASE_TABLE":            "lures",
	"SUPABASE_BUCKET":           "lure-images",
	"MEMCACHE_ADDR":             "localhost:11211",
	"REDIS_ADDR":                "localhost:6379",
	"REDIS_DB":                  0,
	"REDIS_STREAM":              "lures",
	"REDIS_STREAM_MAX_LENGTH":   1000,
	"POLITENESS_DELAY_MS":       800,
	"REQUEST_TIMEOUT_SECONDS":   30,
	"MAX_ATTEMPTS":              3,
	"RETRY_DELAY_MS":            2000,
	"BLOCK_SECONDS":             300,
	"CRAWL_INTERVAL_SECONDS":    3600,
	"ERROR_LOG_FILE":            "scrape_errors.log",
	"BROWSER_BIN":               "",
	"AIRTABLE_API_KEY":          "",
	"AIRTABLE_BASE_ID":          "",
	"SUPABASE_URL":              "",
	"SUPABASE_SERVICE_ROLE_KEY": "",
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return &Config{
		Environment:          v.GetString("LUREBASE_ENVIRONMENT"),
		AirtableAPIKey:       v.GetString("AIRTABLE_API_KEY"),
		AirtableBaseID:       v.GetString("AIRTABLE_BASE_ID"),
		AirtableURL:          v.GetString("AIRTABLE_URL"),
		AirtableURLTable:     v.GetString("AIRTABLE_URL_TABLE"),
		AirtableMakerTable:   v.GetString("AIRTABLE_MAKER_TABLE"),
		AirtableBatchDelay:   time.Duration(v.GetInt("AIRTABLE_BATCH_DELAY_MS")) * time.Millisecond,
		SupabaseURL:          strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseServiceKey:   v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseTable:        v.GetString("SUPABASE_TABLE"),
		SupabaseBucket:       v.GetString("SUPABASE_BUCKET"),
		MemcacheAddr:         v.GetString("MEMCACHE_ADDR"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisDB:              v.GetInt("REDIS_DB"),
		RedisStream:          v.GetString("REDIS_STREAM"),
		RedisStreamMaxLength: v.GetInt("REDIS_STREAM_MAX_LENGTH"),
		PolitenessDelay:      time.Duration(v.GetInt("POLITENESS_DELAY_MS")) * time.Millisecond,
		RequestTimeout:       time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		MaxAttempts:          v.GetInt("MAX_ATTEMPTS"),
		RetryDelay:           time.Duration(v.GetInt("RETRY_DELAY_MS")) * time.Millisecond,
		BlockTime:            time.Duration(v.GetInt("BLOCK_SECONDS")) * time.Second,
		BrowserBin:           v.GetString("BROWSER_BIN"),
		CrawlInterval:        time.Duration(v.GetInt("CRAWL_INTERVAL_SECONDS")) * time.Second,
		ErrorLogFile:         v.GetString("ERROR_LOG_FILE"),
	}
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.PolitenessDelay < 0 {
		return fmt.Errorf("POLITENESS_DELAY_MS must not be negative")
	}
	return nil
}

// ValidateSinks checks the credentials the queue-driven run needs
func (c *Config) ValidateSinks() error {
	missing := []string{}
	if c.AirtableAPIKey == "" {
		missing = append(missing, "AIRTABLE_API_KEY")
	}
	if c.AirtableBaseID == "" {
		missing = append(missing, "AIRTABLE_BASE_ID")
	}
	if c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.SupabaseServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
