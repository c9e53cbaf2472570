package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig  `yaml:"logging"`
	CORS       CORSConfig     `yaml:"cors"`
	UploadsDir string         `yaml:"uploads_dir"`
	AI         AIConfig       `yaml:"ai"`
	DailyLaw   DailyLawConfig `yaml:"daily_law"`

	// Populated from environment, not from config.yaml.
	MongoURI     string `yaml:"-"`
	MongoDBName  string `yaml:"-"`
	GeminiApiKey string `yaml:"-"`
	BrevoApiKey  string `yaml:"-"`
	ContactEmail string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AIConfig struct {
	TextModel           string `yaml:"text_model"`
	ImageModel          string `yaml:"image_model"`
	TextTimeoutSeconds  int    `yaml:"text_timeout_seconds"`
	ImageTimeoutSeconds int    `yaml:"image_timeout_seconds"`
}

// DailyLawConfig drives the daily law generation pipeline.
type DailyLawConfig struct {
	// Feeds are polled in order; a failing feed is skipped, not fatal.
	Feeds []FeedSource `yaml:"feeds"`

	// PerFeedLimit is how many fresh items to take per feed after
	// filtering against recently used source links.
	PerFeedLimit int `yaml:"per_feed_limit"`

	// FallbackPerFeedLimit is used when filtering leaves no candidates:
	// feeds are re-read unfiltered and this smaller cut is taken.
	FallbackPerFeedLimit int `yaml:"fallback_per_feed_limit"`

	// ExclusionWindow is how many recent records contribute their
	// source links to the used-link set.
	ExclusionWindow int `yaml:"exclusion_window"`

	// RetentionDays bounds how long generated records (and their local
	// images) are kept.
	RetentionDays int `yaml:"retention_days"`

	Schedule string `yaml:"schedule"`
	Timezone string `yaml:"timezone"`
}

// FeedSource is a single news feed configuration item
type FeedSource struct {
	Name   string `yaml:"name"`
	RSSURL string `yaml:"rss_url"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.MongoURI = os.Getenv("MONGO_URI")
	c.MongoDBName = os.Getenv("MONGO_DB_NAME")
	c.GeminiApiKey = os.Getenv("GEMINI_API_KEY")
	c.BrevoApiKey = os.Getenv("BREVO_API_KEY")
	c.ContactEmail = os.Getenv("CONTACT_RECEIVER_EMAIL")

	applyDefaults(&c)
	config = &c
}

func applyDefaults(c *AppConfig) {
	if c.UploadsDir == "" {
		c.UploadsDir = "uploads"
	}
	if c.AI.TextModel == "" {
		c.AI.TextModel = "gemini-2.0-flash"
	}
	if c.AI.ImageModel == "" {
		c.AI.ImageModel = "imagen-3.0-generate-002"
	}
	if c.AI.TextTimeoutSeconds <= 0 {
		c.AI.TextTimeoutSeconds = 90
	}
	if c.AI.ImageTimeoutSeconds <= 0 {
		c.AI.ImageTimeoutSeconds = 120
	}
	if c.DailyLaw.PerFeedLimit <= 0 {
		c.DailyLaw.PerFeedLimit = 5
	}
	if c.DailyLaw.FallbackPerFeedLimit <= 0 {
		c.DailyLaw.FallbackPerFeedLimit = 2
	}
	if c.DailyLaw.ExclusionWindow <= 0 {
		c.DailyLaw.ExclusionWindow = 10
	}
	if c.DailyLaw.RetentionDays <= 0 {
		c.DailyLaw.RetentionDays = 7
	}
	if c.DailyLaw.Schedule == "" {
		c.DailyLaw.Schedule = "0 7 * * *"
	}
	if c.DailyLaw.Timezone == "" {
		c.DailyLaw.Timezone = "Asia/Kolkata"
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
