package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config content: %v", err)
	}
	return path
}

func TestApplyDefaults(t *testing.T) {
	config := &Config{}
	applyDefaults(config)

	if config.Version != SupportedVersion {
		t.Errorf("Expected version %q, got %q", SupportedVersion, config.Version)
	}

	// Storage defaults
	if config.Storage.Backend != "fs" {
		t.Errorf("Expected backend 'fs', got %q", config.Storage.Backend)
	}
	if config.Storage.Compression != "zstd" {
		t.Errorf("Expected compression 'zstd', got %q", config.Storage.Compression)
	}
	if config.Storage.TimeoutSeconds != 5 {
		t.Errorf("Expected timeout 5, got %d", config.Storage.TimeoutSeconds)
	}
	if config.Storage.FS.Dir != "./data" {
		t.Errorf("Expected fs dir './data', got %q", config.Storage.FS.Dir)
	}
	if config.Storage.SQLite.Path != "./swipestate.db" {
		t.Errorf("Expected sqlite path './swipestate.db', got %q", config.Storage.SQLite.Path)
	}
	if config.Storage.S3.Region != "auto" {
		t.Errorf("Expected s3 region 'auto', got %q", config.Storage.S3.Region)
	}
	if config.Storage.S3.UsePathStyle {
		t.Error("Expected path-style addressing to be disabled by default")
	}

	// Key defaults
	if config.Keys.Drafts != "project_drafts" {
		t.Errorf("Expected drafts key 'project_drafts', got %q", config.Keys.Drafts)
	}
	if config.Keys.LegacyDraft != "project_draft" {
		t.Errorf("Expected legacy key 'project_draft', got %q", config.Keys.LegacyDraft)
	}
	if config.Keys.Interactions != "tinder_app_data" {
		t.Errorf("Expected interactions key 'tinder_app_data', got %q", config.Keys.Interactions)
	}

	if config.Drafts.UntitledTitle != "Untitled Project" {
		t.Errorf("Expected placeholder title, got %q", config.Drafts.UntitledTitle)
	}
	if config.Logging.Level != "info" {
		t.Errorf("Expected log level 'info', got %q", config.Logging.Level)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	t.Run("Load non-existent config file", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		if err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
			t.Errorf("Expected no error for non-existent config file, got %v", err)
		}
		if AppConfig == nil {
			t.Fatal("Expected AppConfig to be set with defaults")
		}
		if AppConfig.Keys.Drafts != "project_drafts" {
			t.Errorf("Expected default drafts key, got %q", AppConfig.Keys.Drafts)
		}
	})

	t.Run("Load partial YAML file", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		path := writeConfig(t, "config.yaml", `
version: "1"
storage:
  backend: sqlite
  sqlite:
    path: /tmp/cards.db
drafts:
  untitled_title: "New posting"
`)
		if err := LoadConfig(path); err != nil {
			t.Fatalf("Expected no error loading valid config, got %v", err)
		}

		if AppConfig.Storage.Backend != "sqlite" {
			t.Errorf("Expected backend 'sqlite', got %q", AppConfig.Storage.Backend)
		}
		if AppConfig.Storage.SQLite.Path != "/tmp/cards.db" {
			t.Errorf("Expected sqlite path, got %q", AppConfig.Storage.SQLite.Path)
		}
		if AppConfig.Drafts.UntitledTitle != "New posting" {
			t.Errorf("Expected placeholder 'New posting', got %q", AppConfig.Drafts.UntitledTitle)
		}

		// Verify defaults were still applied for unspecified fields
		if AppConfig.Storage.Compression != "zstd" {
			t.Errorf("Expected default compression, got %q", AppConfig.Storage.Compression)
		}
		if AppConfig.Keys.Interactions != "tinder_app_data" {
			t.Errorf("Expected default interactions key, got %q", AppConfig.Keys.Interactions)
		}
	})

	t.Run("Load TOML file", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		path := writeConfig(t, "config.toml", `
version = "1"

[storage]
backend = "memory"
compression = "gzip"

[keys]
interactions = "app_data"
`)
		if err := LoadConfig(path); err != nil {
			t.Fatalf("Expected no error loading TOML config, got %v", err)
		}
		if AppConfig.Storage.Backend != "memory" {
			t.Errorf("Expected backend 'memory', got %q", AppConfig.Storage.Backend)
		}
		if AppConfig.Storage.Compression != "gzip" {
			t.Errorf("Expected compression 'gzip', got %q", AppConfig.Storage.Compression)
		}
		if AppConfig.Keys.Interactions != "app_data" {
			t.Errorf("Expected interactions key 'app_data', got %q", AppConfig.Keys.Interactions)
		}
		if AppConfig.Keys.Drafts != "project_drafts" {
			t.Errorf("Expected default drafts key, got %q", AppConfig.Keys.Drafts)
		}
	})

	t.Run("Load invalid YAML file", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		path := writeConfig(t, "invalid.yaml", `
storage:
  backend: "fs"
  invalid yaml syntax [
`)
		err := LoadConfig(path)
		if err == nil {
			t.Fatal("Expected error loading invalid config file")
		}
		if !strings.Contains(err.Error(), "failed to parse config file") {
			t.Errorf("Expected parse error, got %v", err)
		}
	})

	t.Run("Environment overrides S3 credentials", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		t.Setenv(EnvS3AccessKeyID, "env-key")
		t.Setenv(EnvS3SecretAccessKey, "env-secret")

		path := writeConfig(t, "s3.yaml", `
storage:
  backend: s3
  s3:
    bucket: cards
    access_key_id: file-key
`)
		if err := LoadConfig(path); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if AppConfig.Storage.S3.AccessKeyID != "env-key" {
			t.Errorf("Expected env access key, got %q", AppConfig.Storage.S3.AccessKeyID)
		}
		if AppConfig.Storage.S3.SecretAccessKey != "env-secret" {
			t.Errorf("Expected env secret, got %q", AppConfig.Storage.S3.SecretAccessKey)
		}
	})
}

func TestInvalidConfigValidation(t *testing.T) {
	SetLogger(zerolog.Nop())

	testCases := []struct {
		name      string
		content   string
		errorText string
	}{
		{
			name:      "Invalid version",
			content:   "version: \"2\"\n",
			errorText: "unsupported configuration version",
		},
		{
			name:      "Unknown backend",
			content:   "storage:\n  backend: redis\n",
			errorText: "unknown storage backend",
		},
		{
			name:      "S3 without bucket",
			content:   "storage:\n  backend: s3\n",
			errorText: "requires s3.bucket",
		},
		{
			name:      "Empty key",
			content:   "keys:\n  drafts: \"\"\n",
			errorText: "must not be empty",
		},
		{
			name:      "Shared key",
			content:   "keys:\n  drafts: shared\n  interactions: shared\n",
			errorText: "share the storage key",
		},
		{
			name:      "Negative timeout",
			content:   "storage:\n  timeout_seconds: -1\n",
			errorText: "must not be negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			originalAppConfig := AppConfig
			defer func() { AppConfig = originalAppConfig }()

			err := LoadConfig(writeConfig(t, "config.yaml", tc.content))
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tc.errorText) {
				t.Errorf("Expected error to contain %q, got %q", tc.errorText, err.Error())
			}
		})
	}
}

func TestPublicApplyDefaults(t *testing.T) {
	type TestStruct struct {
		Field string `default:"test-value"`
	}

	test := &TestStruct{}
	ApplyDefaults(test)

	if test.Field != "test-value" {
		t.Errorf("Expected field 'test-value', got %q", test.Field)
	}
}

func TestSliceDefaults(t *testing.T) {
	t.Run("Slice with whitespace handling", func(t *testing.T) {
		type TestStruct struct {
			Items []string `default:" item1 , item2 , item3 "`
		}

		test := &TestStruct{}
		applyDefaults(test)

		expected := []string{"item1", "item2", "item3"}
		if !reflect.DeepEqual(test.Items, expected) {
			t.Errorf("Expected trimmed items %v, got %v", expected, test.Items)
		}
	})

	t.Run("Non-empty slice should not be overwritten", func(t *testing.T) {
		type TestStruct struct {
			Items []string `default:"default1,default2"`
		}

		test := &TestStruct{Items: []string{"existing1", "existing2"}}
		applyDefaults(test)

		expected := []string{"existing1", "existing2"}
		if !reflect.DeepEqual(test.Items, expected) {
			t.Errorf("Expected existing items to be preserved %v, got %v", expected, test.Items)
		}
	})
}
