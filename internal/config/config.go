package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/titanous/json5"
)

// SuperJobKeyEnv holds the SuperJob application key
const SuperJobKeyEnv = "API_KEY_SUPERJOB"

// DefaultKeywords are searched when no keywords are given
var DefaultKeywords = []string{"python", "javascript", "golang", "java", "c++", "typescript", "c#"}

type HeadHunterConfig struct {
	URL            string `json:"url"`
	Area           string `json:"area"`
	PerPage        int    `json:"per_page"`
	Currency       string `json:"currency"`
	OnlyWithSalary bool   `json:"only_with_salary"`
}

type SuperJobConfig struct {
	URL          string `json:"url"`
	Town         string `json:"town"`
	Currency     string `json:"currency"`
	Count        int    `json:"count"`
	KeywordParam string `json:"keyword_param"`
}

type Config struct {
	Keywords   []string         `json:"keywords"`
	Period     int              `json:"period"`
	Workers    int              `json:"workers"`
	KeepEmpty  bool             `json:"keep_empty"`
	Timeout    string           `json:"timeout"`
	Retries    int              `json:"retries"`
	Proxy      string           `json:"proxy"`
	LogFile    string           `json:"log_file"`
	MaxPages   int              `json:"max_pages"`
	UserAgent  string           `json:"user_agent"`
	HeadHunter HeadHunterConfig `json:"headhunter"`
	SuperJob   SuperJobConfig   `json:"superjob"`

	// SuperJobKey is read from the environment, never from the file
	SuperJobKey string `json:"-"`
}

// Default returns the configuration used when nothing else is set
func Default() Config {
	return Config{
		Keywords: append([]string(nil), DefaultKeywords...),
		Period:   30,
		Workers:  1,
		Timeout:  "30s",
		LogFile:  "logs.log",
		MaxPages: 100,
		HeadHunter: HeadHunterConfig{
			URL:      "https://api.hh.ru/vacancies",
			Area:     "1",
			PerPage:  100,
			Currency: "RUR",
		},
		SuperJob: SuperJobConfig{
			URL:          "https://api.superjob.ru/2.0/vacancies/",
			Town:         "Москва",
			Currency:     "rub",
			Count:        100,
			KeywordParam: "keyword",
		},
	}
}

func splitExt(f string) (string, string) {
	ext := filepath.Ext(f)
	return strings.TrimSuffix(f, ext), strings.TrimPrefix(ext, ".")
}

// Load reads the config file at path and its "<name>.local.<ext>" sibling,
// the local file taking priority. Both files are decoded on top of
// Default(), so only the keys they mention change and an explicit "" or 0
// clears a default. Missing files are fine.
func Load(path string) (Config, error) {
	out := Default()
	if path == "" {
		return out, nil
	}

	if err := decodeFile(path, &out); err != nil {
		return out, err
	}

	prefix, ext := splitExt(path)
	if err := decodeFile(fmt.Sprintf("%s.local.%s", prefix, ext), &out); err != nil {
		return out, err
	}

	return out, nil
}

// decodeFile overlays the json5 document at path onto cfg
func decodeFile(path string, cfg *Config) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return nil
	}

	if err := json5.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return nil
}

// LoadEnv loads an optional .env file and picks up the SuperJob key.
// Variables already present in the environment win over the file.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file: %v", err)
	}
	c.SuperJobKey = strings.TrimSpace(os.Getenv(SuperJobKeyEnv))
	return nil
}

// Validate rejects settings the fetchers cannot work with
func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	if c.Period <= 0 {
		return fmt.Errorf("period must be a positive number of days, got %d", c.Period)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.HeadHunter.PerPage > 100 {
		return fmt.Errorf("headhunter per_page cannot exceed 100, got %d", c.HeadHunter.PerPage)
	}
	return nil
}

// TimeoutDuration parses the request timeout, e.g. "30s"
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %v", c.Timeout, err)
	}
	return d, nil
}
