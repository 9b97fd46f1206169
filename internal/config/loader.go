package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SKYBOUND_REMOTE_URL.
const EnvPrefix = "SKYBOUND"

// SourceEmbedded and SourceBuiltin name configurations that did not come
// from a file on disk.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Load loads the Skybound configuration and reports where it came from.
// Search order: customPath -> ~/.skybound/configs/skybound.yaml ->
// ./configs/skybound.yaml -> embedded default -> hardcoded Default.
// Values from the file are laid over Default, then SKYBOUND_* environment
// variables are applied and the result is validated.
func Load(customPath string) (Config, string, error) {
	cfg := Default()
	source := SourceBuiltin

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		source = customPath
	} else if path, ok := firstReadable(&cfg, userConfigPath("skybound.yaml"), filepath.Join("configs", "skybound.yaml")); ok {
		source = path
	} else {
		// Use embedded default YAML, or the hardcoded one if that is broken
		embedded := Default()
		if err := yaml.Unmarshal(defaultYAML, &embedded); err == nil {
			cfg = embedded
			source = SourceEmbedded
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, source, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, err
	}
	return cfg, source, nil
}

// firstReadable decodes the first candidate file that exists and parses.
// Unreadable or malformed candidates are skipped.
func firstReadable(cfg *Config, candidates ...string) (string, bool) {
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		next := *cfg
		if err := yaml.Unmarshal(data, &next); err != nil {
			continue
		}
		*cfg = next
		return path, true
	}
	return "", false
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skybound", "configs", filename)
}

// loadFromEnv applies SKYBOUND_* environment variables to fields carrying
// an env tag.
func loadFromEnv(cfg *Config) error {
	return loadFromEnvRecursive(reflect.ValueOf(cfg).Elem())
}

func loadFromEnvRecursive(val reflect.Value) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Recurse into nested structs to honor their env tags
		if field.Kind() == reflect.Struct {
			if err := loadFromEnvRecursive(field); err != nil {
				return err
			}
			continue
		}

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			continue
		}

		envVar := EnvPrefix + "_" + tag
		value, ok := os.LookupEnv(envVar)
		if !ok {
			continue
		}
		// Only strings may be cleared through the environment.
		if value == "" && field.Kind() != reflect.String {
			continue
		}

		if err := setFieldValue(field, value); err != nil {
			return fmt.Errorf("config: %s: %w", envVar, err)
		}
	}

	return nil
}

// setFieldValue sets a struct field from an environment variable string.
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := parseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		field.SetInt(n)

	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value: %s", value)
		}
		field.SetFloat(f)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		parts := strings.Split(value, ",")
		slice := reflect.MakeSlice(field.Type(), 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				slice = reflect.Append(slice, reflect.ValueOf(part))
			}
		}
		field.Set(slice)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// parseDuration accepts Go durations ("1500ms") or bare milliseconds ("1500").
func parseDuration(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value: %s", value)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
