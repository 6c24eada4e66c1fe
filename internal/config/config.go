package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default feed list used when neither RSS_FEEDS nor a feeds file is set.
var defaultFeeds = []string{
	"https://techcrunch.com/feed/",
	"https://www.crn.com/news/data-center/rss.xml",
}

type Config struct {
	// Slack settings
	SlackBotToken  string
	SlackChannelID string

	// Upstash Redis REST settings
	UpstashRedisREST  string
	UpstashRedisToken string

	// Curation policy
	MinScore    int
	PostMax     int // max posts per run
	DedupTTL    time.Duration
	Feeds       []string
	TargetHours []int  // local hours at which posting is allowed
	Timezone    string // IANA zone name for the posting schedule

	// App settings
	Debug           bool
	FeedTimeout     time.Duration
	CacheTimeout    time.Duration
	SlackTimeout    time.Duration
	FeedsConfigPath string
	Port            string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		MinScore:     3,
		PostMax:      1,
		DedupTTL:     7 * 24 * time.Hour,
		TargetHours:  []int{8, 17},
		Timezone:     "Europe/London",
		FeedTimeout:  8 * time.Second,
		CacheTimeout: 8 * time.Second,
		SlackTimeout: 10 * time.Second,
		Port:         "8080",
	}

	// Load from environment
	cfg.SlackBotToken = os.Getenv("SLACK_BOT_TOKEN")
	cfg.SlackChannelID = os.Getenv("SLACK_CHANNEL_ID")
	cfg.UpstashRedisREST = strings.TrimRight(os.Getenv("UPSTASH_REDIS_REST"), "/")
	cfg.UpstashRedisToken = os.Getenv("UPSTASH_REDIS_TOKEN")

	cfg.MinScore = getEnvIntOrDefault("MIN_SCORE", cfg.MinScore)
	cfg.PostMax = getEnvIntOrDefault("POST_MAX_PER_RUN", cfg.PostMax)
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.FeedsConfigPath = os.Getenv("FEEDS_CONFIG_PATH")

	if v := os.Getenv("DEDUP_TTL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.DedupTTL = time.Duration(val) * time.Hour
		}
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FeedTimeout = time.Duration(val) * time.Second
			cfg.CacheTimeout = time.Duration(val) * time.Second
			cfg.SlackTimeout = time.Duration(val) * time.Second
		}
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}

	if v := os.Getenv("TARGET_HOURS"); v != "" {
		hours, err := parseHours(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TARGET_HOURS %q: %w", v, err)
		}
		cfg.TargetHours = hours
	}

	feeds, err := loadFeedList(cfg.FeedsConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Feeds = feeds

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// loadFeedList resolves the feed source list: the RSS_FEEDS env var (JSON
// array) wins, then an optional YAML feeds file, then the built-in defaults.
func loadFeedList(feedsPath string) ([]string, error) {
	if raw := os.Getenv("RSS_FEEDS"); raw != "" {
		var feeds []string
		if err := json.Unmarshal([]byte(raw), &feeds); err != nil {
			return nil, fmt.Errorf("invalid RSS_FEEDS JSON: %w", err)
		}
		return feeds, nil
	}
	if feedsPath != "" {
		feeds, err := LoadFeedsFile(feedsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load feeds file %s: %w", feedsPath, err)
		}
		return feeds, nil
	}
	return defaultFeeds, nil
}

func parseHours(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	hours := make([]int, 0, len(parts))
	for _, p := range parts {
		h, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("hour %d out of range", h)
		}
		hours = append(hours, h)
	}
	return hours, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate reports every missing required variable in one error so a
// misconfigured deployment can be fixed in a single pass.
func (c *Config) Validate() error {
	var missing []string
	if c.SlackBotToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if c.SlackChannelID == "" {
		missing = append(missing, "SLACK_CHANNEL_ID")
	}
	if c.UpstashRedisREST == "" {
		missing = append(missing, "UPSTASH_REDIS_REST")
	}
	if c.UpstashRedisToken == "" {
		missing = append(missing, "UPSTASH_REDIS_TOKEN")
	}
	if len(missing) > 0 {
		return &MissingEnvError{Vars: missing}
	}
	if len(c.Feeds) == 0 {
		return fmt.Errorf("feed list is empty")
	}
	if len(c.TargetHours) == 0 {
		return fmt.Errorf("TARGET_HOURS is empty")
	}
	return nil
}

// MissingEnvError lists required environment variables that are unset.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return "Missing env vars: " + strings.Join(e.Vars, ", ")
}
