package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const SupportedVersion = "1"

const (
	EnvS3AccessKeyID     = "SWIPESTATE_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "SWIPESTATE_S3_SECRET_ACCESS_KEY"
)

var configLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Version string        `yaml:"version" toml:"version" default:"1"`
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Keys    KeysConfig    `yaml:"keys" toml:"keys"`
	Drafts  DraftsConfig  `yaml:"drafts" toml:"drafts"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level" default:"info"`
}

// StorageConfig selects the backend behind the storage adapter.
type StorageConfig struct {
	Backend        string       `yaml:"backend" toml:"backend" default:"fs"`
	Compression    string       `yaml:"compression" toml:"compression" default:"zstd"`
	TimeoutSeconds int          `yaml:"timeout_seconds" toml:"timeout_seconds" default:"5"`
	FS             FSConfig     `yaml:"fs" toml:"fs"`
	SQLite         SQLiteConfig `yaml:"sqlite" toml:"sqlite"`
	S3             S3Config     `yaml:"s3" toml:"s3"`
}

type FSConfig struct {
	Dir string `yaml:"dir" toml:"dir" default:"./data"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" toml:"path" default:"./swipestate.db"`
}

type S3Config struct {
	Bucket       string `yaml:"bucket" toml:"bucket" default:""`
	Endpoint     string `yaml:"endpoint" toml:"endpoint" default:""`
	Region       string `yaml:"region" toml:"region" default:"auto"`
	Prefix       string `yaml:"prefix" toml:"prefix" default:"swipestate/"`
	UsePathStyle bool   `yaml:"use_path_style" toml:"use_path_style" default:"false"`

	// Overridden from the environment when set there.
	AccessKeyID     string `yaml:"access_key_id,omitempty" toml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" toml:"secret_access_key"`
}

// KeysConfig names the storage key owned by each logical collection.
type KeysConfig struct {
	Drafts       string `yaml:"drafts" toml:"drafts" default:"project_drafts"`
	LegacyDraft  string `yaml:"legacy_draft" toml:"legacy_draft" default:"project_draft"`
	Interactions string `yaml:"interactions" toml:"interactions" default:"tinder_app_data"`
}

type DraftsConfig struct {
	UntitledTitle string `yaml:"untitled_title" toml:"untitled_title" default:"Untitled Project"`
}

var AppConfig *Config

// LoadConfig reads a YAML file, or TOML when path ends in ".toml", on top of
// the defaults. A missing file is not an error.
func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		applyEnv(config)
		AppConfig = config
		return nil
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return err
	}

	applyEnv(config)
	AppConfig = config
	return nil
}

func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("unsupported configuration version %q (want %q)", c.Version, SupportedVersion)
	}

	switch c.Storage.Backend {
	case "memory", "fs", "sqlite", "s3":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "s3" && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("storage backend s3 requires s3.bucket")
	}
	if c.Storage.TimeoutSeconds < 0 {
		return fmt.Errorf("storage timeout_seconds must not be negative")
	}

	keys := map[string]string{}
	for name, key := range map[string]string{
		"drafts":       c.Keys.Drafts,
		"legacy_draft": c.Keys.LegacyDraft,
		"interactions": c.Keys.Interactions,
	} {
		if key == "" {
			return fmt.Errorf("keys.%s must not be empty", name)
		}
		if other, ok := keys[key]; ok {
			return fmt.Errorf("keys.%s and keys.%s share the storage key %q", name, other, key)
		}
		keys[key] = name
	}
	return nil
}

func applyEnv(config *Config) {
	if v := os.Getenv(EnvS3AccessKeyID); v != "" {
		config.Storage.S3.AccessKeyID = v
	}
	if v := os.Getenv(EnvS3SecretAccessKey); v != "" {
		config.Storage.S3.SecretAccessKey = v
	}
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
