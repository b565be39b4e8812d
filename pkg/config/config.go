// Package config loads the announcer settings from an optional YAML file and
// the EXPOLLY_* environment variables, environment taking precedence.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/expolly/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEkispertURL = "https://api.apigw.smt.docomo.ne.jp/ekispertCorp/v1"
	DefaultPollyVoice  = "Mizuki"
	DefaultPollyRegion = "us-east-1"
	DefaultGoogleVoice = "ja-JP-Standard-A"
	DefaultURLExpiry   = time.Hour
)

type Config struct {
	SlackToken  string `yaml:"slack_token"`
	TriggerWord string `yaml:"trigger_word"`

	Ekispert EkispertConfig `yaml:"ekispert"`
	Speech   SpeechConfig   `yaml:"speech"`
	Storage  StorageConfig  `yaml:"storage"`
}

type EkispertConfig struct {
	URL    string `yaml:"url" validate:"required,url"`
	APIKey string `yaml:"api_key" validate:"required"`
}

type SpeechConfig struct {
	Provider          string `yaml:"provider" validate:"oneof=polly google none"`
	PollyVoice        string `yaml:"polly_voice"`
	PollyRegion       string `yaml:"polly_region"`
	GoogleVoice       string `yaml:"google_voice"`
	GoogleCredentials string `yaml:"google_credentials" validate:"required_if=Provider google"`
}

type StorageConfig struct {
	Provider          string        `yaml:"provider" validate:"oneof=s3 gcs none"`
	Bucket            string        `yaml:"bucket" validate:"required_unless=Provider none"`
	URLExpiry         time.Duration `yaml:"url_expiry" validate:"gt=0"`
	GoogleCredentials string        `yaml:"google_credentials" validate:"required_if=Provider gcs"`
}

func defaults() Config {
	return Config{
		Ekispert: EkispertConfig{
			URL: DefaultEkispertURL,
		},
		Speech: SpeechConfig{
			Provider:    "polly",
			PollyVoice:  DefaultPollyVoice,
			PollyRegion: DefaultPollyRegion,
			GoogleVoice: DefaultGoogleVoice,
		},
		Storage: StorageConfig{
			Provider:  "s3",
			URLExpiry: DefaultURLExpiry,
		},
	}
}

// Option adjusts the loaded configuration before it is validated.
type Option func(*Config)

// WithoutAudio turns off speech synthesis and audio storage, so neither
// needs to be configured.
func WithoutAudio() Option {
	return func(c *Config) {
		c.Speech.Provider = "none"
		c.Storage.Provider = "none"
	}
}

// Load reads path (skipped when empty), applies the environment and options
// on top and validates the result.
func Load(path string, options ...Option) (*Config, error) {
	config := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnvironment(util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	for _, option := range options {
		option(&config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	stringOverrides := map[string]*string{
		"EXPOLLY_SLACK_TOKEN":      &c.SlackToken,
		"EXPOLLY_TRIGGER_WORD":     &c.TriggerWord,
		"EXPOLLY_EKISPERT_URL":     &c.Ekispert.URL,
		"EXPOLLY_API_KEY":          &c.Ekispert.APIKey,
		"EXPOLLY_SPEECH_PROVIDER":  &c.Speech.Provider,
		"EXPOLLY_POLLY_VOICE":      &c.Speech.PollyVoice,
		"EXPOLLY_POLLY_REGION":     &c.Speech.PollyRegion,
		"EXPOLLY_GOOGLE_VOICE":     &c.Speech.GoogleVoice,
		"EXPOLLY_STORAGE_PROVIDER": &c.Storage.Provider,
		"EXPOLLY_BUCKET":           &c.Storage.Bucket,
	}

	for name, target := range stringOverrides {
		if env[name] != "" {
			*target = env[name]
		}
	}

	// One service account serves both Google text-to-speech and GCS.
	if credentials := env["EXPOLLY_GOOGLE_CREDENTIALS"]; credentials != "" {
		c.Speech.GoogleCredentials = credentials
		c.Storage.GoogleCredentials = credentials
	}

	if env["EXPOLLY_URL_EXPIRY"] != "" {
		expiry, err := time.ParseDuration(env["EXPOLLY_URL_EXPIRY"])
		if err != nil {
			seconds, atoiErr := strconv.Atoi(env["EXPOLLY_URL_EXPIRY"])
			if atoiErr != nil {
				return err
			}
			expiry = time.Duration(seconds) * time.Second
		}
		c.Storage.URLExpiry = expiry
	}

	return nil
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
