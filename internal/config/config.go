package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/strike-planner/internal/targets"
)

// EnvConfigPath names the environment variable holding the YAML config path.
const EnvConfigPath = "STRIKE_CONFIG"

// Config holds the settings of the strike tools.
type Config struct {
	// GridSize is the side of the square target grid.
	GridSize int `yaml:"grid_size" validate:"gt=0,lte=65536"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat is console or json.
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`

	// OutputFile is where the map generator writes targets.
	OutputFile string `yaml:"output_file" validate:"required"`

	// Seed seeds the map generator. Zero means a time-based seed.
	Seed uint64 `yaml:"seed"`

	// RenderPath, when set, makes the strike CLI save a PNG strike map there.
	RenderPath string `yaml:"render_path"`

	// RenderScale is the number of pixels per grid cell in rendered maps.
	RenderScale int `yaml:"render_scale" validate:"gte=1,lte=32"`

	// GridSpacing is the distance in cells between grid lines in rendered
	// maps. Zero disables the grid overlay.
	GridSpacing int `yaml:"grid_spacing" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GridSize:    targets.DefaultGridSize,
		LogLevel:    "warn",
		LogFormat:   "console",
		OutputFile:  "coords.txt",
		RenderScale: 8,
		GridSpacing: 10,
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the environment, then validates it.
// If path is empty, STRIKE_CONFIG is consulted.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnvironment(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the YAML file at path. Unknown keys are rejected.
func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// loadEnvironment overlays STRIKE_* variables read through getenv.
func (c *Config) loadEnvironment(getenv func(string) string) error {
	if v := getenv("STRIKE_GRID_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STRIKE_GRID_SIZE: %w", err)
		}
		c.GridSize = n
	}
	if v := getenv("STRIKE_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv("STRIKE_LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := getenv("STRIKE_OUTPUT_FILE"); v != "" {
		c.OutputFile = v
	}
	if v := getenv("STRIKE_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("STRIKE_SEED: %w", err)
		}
		c.Seed = n
	}
	if v := getenv("STRIKE_RENDER_PATH"); v != "" {
		c.RenderPath = v
	}
	if v := getenv("STRIKE_RENDER_SCALE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STRIKE_RENDER_SCALE: %w", err)
		}
		c.RenderScale = n
	}
	if v := getenv("STRIKE_GRID_SPACING"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STRIKE_GRID_SPACING: %w", err)
		}
		c.GridSpacing = n
	}
	return nil
}

var validate = validator.New()

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError formats validation errors into readable messages.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
