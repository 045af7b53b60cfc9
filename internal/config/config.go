package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains process configuration read from the environment.
type Config struct {
	Port             string `env:"PORT" envDefault:"8080"`
	DBPath           string `env:"DB_PATH" envDefault:"data/quaresma.db"`
	Timezone         string `env:"TZ" envDefault:"UTC"`
	DefaultLanguage  string `env:"DEFAULT_LANGUAGE" envDefault:"pt"`
	LogMode          string `env:"LOG_MODE" envDefault:"dev"`
	BonusCheckoutURL string `env:"BONUS_CHECKOUT_URL" envDefault:"https://seulinkdecheckout.com"`
	Gemini           Gemini `envPrefix:"GEMINI_"`
	Quiz             Quiz   `envPrefix:"QUIZ_"`
}

// Gemini contains generative text service parameters.
type Gemini struct {
	APIKey        string        `env:"API_KEY"`
	BaseURL       string        `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	ProModel      string        `env:"PRO_MODEL" envDefault:"gemini-3-pro-preview"`
	FlashModel    string        `env:"FLASH_MODEL" envDefault:"gemini-3-flash-preview"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"60s"`
	RatePerSecond float64       `env:"RATE_PER_SECOND" envDefault:"2"`
	Burst         int           `env:"BURST" envDefault:"4"`
}

// Quiz contains the pacing of the quiz funnel.
type Quiz struct {
	EncouragementDelay time.Duration `env:"ENCOURAGEMENT_DELAY" envDefault:"4s"`
	DiagnosticDelay    time.Duration `env:"DIAGNOSTIC_DELAY" envDefault:"4500ms"`
}

// Load reads an optional .env file and then parses the environment.
func Load(dotenvPaths ...string) (*Config, error) {
	for _, path := range dotenvPaths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return NewConfig()
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg Config) validate() error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if cfg.Gemini.RatePerSecond <= 0 {
		return errors.New("GEMINI_RATE_PER_SECOND must be positive")
	}
	if cfg.Gemini.Burst < 1 {
		return errors.New("GEMINI_BURST must be at least 1")
	}
	if !isSupportedLanguage(cfg.DefaultLanguage) {
		return fmt.Errorf("DEFAULT_LANGUAGE %q is not supported (use pt or en)", cfg.DefaultLanguage)
	}
	if cfg.Quiz.EncouragementDelay < 0 || cfg.Quiz.DiagnosticDelay < 0 {
		return errors.New("quiz delays must not be negative")
	}
	return nil
}

// isSupportedLanguage accepts pt and en with an optional region, e.g. pt-BR.
func isSupportedLanguage(raw string) bool {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if index := strings.IndexAny(tag, "-_"); index >= 0 {
		tag = tag[:index]
	}
	return tag == "pt" || tag == "en"
}
