package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultPort                 = "8000"
	DefaultNutritionixEndpoint  = "https://trackapi.nutritionix.com/v2/natural/nutrients"
	DefaultNutritionixTimezone  = "US/Eastern"
	DefaultOpenFoodFactsBaseURL = "https://world.openfoodfacts.org"
	DefaultHTTPTimeout          = 10 * time.Second
	DefaultMaxLabels            = 20
	DefaultMinConfidence        = 60
)

type ServerConfig struct {
	Port               string   `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

type LogConfig struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // text|json
}

type AWSConfig struct {
	Region          string `toml:"region"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
}

type RekognitionConfig struct {
	MaxLabels     int32   `toml:"max_labels"`
	MinConfidence float32 `toml:"min_confidence"`
}

type NutritionixConfig struct {
	AppID    string `toml:"app_id"`
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
	Timezone string `toml:"timezone"`
}

type OpenFoodFactsConfig struct {
	BaseURL string `toml:"base_url"`
}

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Log           LogConfig           `toml:"log"`
	AWS           AWSConfig           `toml:"aws"`
	Rekognition   RekognitionConfig   `toml:"rekognition"`
	Nutritionix   NutritionixConfig   `toml:"nutritionix"`
	OpenFoodFacts OpenFoodFactsConfig `toml:"openfoodfacts"`
	// Outbound HTTP client timeout, e.g. "10s"
	HTTPTimeout string `toml:"http_timeout"`
}

// Load reads .env, then the optional TOML file at path (CONFIG_PATH when path
// is empty), then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile decodes a TOML config file without touching the environment.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.AWS.Region, "AWS_REGION")
	setString(&c.AWS.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.AWS.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	setString(&c.Nutritionix.AppID, "NUTRITIONIX_APP_ID")
	setString(&c.Nutritionix.APIKey, "NUTRITIONIX_API_KEY")
	setString(&c.Nutritionix.Endpoint, "NUTRITIONIX_API_ENDPOINT")
	setString(&c.OpenFoodFacts.BaseURL, "OPENFOODFACTS_BASE_URL")
	setString(&c.HTTPTimeout, "HTTP_TIMEOUT")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSAllowedOrigins = origins
	}

	if v := os.Getenv("REKOGNITION_MAX_LABELS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid REKOGNITION_MAX_LABELS %q: %w", v, err)
		}
		c.Rekognition.MaxLabels = int32(n)
	}
	if v := os.Getenv("REKOGNITION_MIN_CONFIDENCE"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("invalid REKOGNITION_MIN_CONFIDENCE %q: %w", v, err)
		}
		c.Rekognition.MinConfidence = float32(f)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Rekognition.MaxLabels <= 0 {
		c.Rekognition.MaxLabels = DefaultMaxLabels
	}
	if c.Rekognition.MinConfidence <= 0 {
		c.Rekognition.MinConfidence = DefaultMinConfidence
	}
	if c.Nutritionix.Endpoint == "" {
		c.Nutritionix.Endpoint = DefaultNutritionixEndpoint
	}
	if c.Nutritionix.Timezone == "" {
		c.Nutritionix.Timezone = DefaultNutritionixTimezone
	}
	if c.OpenFoodFacts.BaseURL == "" {
		c.OpenFoodFacts.BaseURL = DefaultOpenFoodFactsBaseURL
	}
	c.OpenFoodFacts.BaseURL = strings.TrimRight(c.OpenFoodFacts.BaseURL, "/")
}

// Timeout parses HTTPTimeout, falling back to DefaultHTTPTimeout.
func (c *Config) Timeout() time.Duration {
	if c.HTTPTimeout == "" {
		return DefaultHTTPTimeout
	}
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		slog.Warn("invalid http_timeout, using default", "value", c.HTTPTimeout, "default", DefaultHTTPTimeout)
		return DefaultHTTPTimeout
	}
	return d
}

// Validate reports settings the server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.AWS.Region == "" {
		errs = append(errs, errors.New("AWS_REGION not set"))
	}
	if c.Nutritionix.AppID == "" || c.Nutritionix.APIKey == "" {
		errs = append(errs, errors.New("NUTRITIONIX_APP_ID and NUTRITIONIX_API_KEY are required"))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
