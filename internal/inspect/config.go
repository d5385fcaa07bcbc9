package inspect

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Input encodings
const (
	EncodingRaw    = "raw"
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds inspector settings. Values come from flags, then MANGO_*
// environment variables, then an optional YAML file, then defaults.
type Config struct {
	Kind     string `mapstructure:"kind" yaml:"kind" json:"kind" validate:"required,kind"`
	Input    string `mapstructure:"input" yaml:"input" json:"input" validate:"required"`
	Encoding string `mapstructure:"encoding" yaml:"encoding" json:"encoding" validate:"oneof=raw hex base64"`
	Format   string `mapstructure:"format" yaml:"format" json:"format" validate:"oneof=json yaml"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	Metrics  bool   `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Message
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("mango-inspect", pflag.ContinueOnError)
	fs.StringP("kind", "k", "", "record kind to decode ("+strings.Join(KindNames(), ", ")+")")
	fs.StringP("input", "i", "-", "input file, or - for stdin")
	fs.StringP("encoding", "e", EncodingRaw, "input encoding: raw, hex or base64")
	fs.StringP("format", "f", FormatJSON, "output format: json or yaml")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.Bool("metrics", false, "write decode metrics to stderr on exit")
	fs.StringP("config", "c", "", "optional YAML config file")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "-")
	v.SetDefault("encoding", EncodingRaw)
	v.SetDefault("format", FormatJSON)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics", false)
}

// LoadConfig parses command-line arguments and merges them with the
// environment and an optional config file. A single positional argument is
// taken as the input path.
func LoadConfig(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one input path, got %d", fs.NArg())
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MANGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	bindings := map[string]string{
		"kind":      "kind",
		"input":     "input",
		"encoding":  "encoding",
		"format":    "format",
		"log_level": "log-level",
		"metrics":   "metrics",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	configFile, _ := fs.GetString("config")
	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if fs.NArg() == 1 {
		cfg.Input = fs.Arg(0)
	}
	cfg.Kind = strings.ToLower(cfg.Kind)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = mustValidator()

var customRules = map[string]validator.Func{
	"kind": func(fl validator.FieldLevel) bool {
		_, ok := decoders[Kind(fl.Field().String())]
		return ok
	},
}

func newValidator(rules map[string]validator.Func) (*validator.Validate, error) {
	v := validator.New()
	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, rule); err != nil {
			return nil, fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return v, nil
}

func mustValidator() *validator.Validate {
	v, err := newValidator(customRules)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the configuration using its struct tags.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var validationErrs ValidationErrors
	for _, fe := range fieldErrs {
		validationErrs = append(validationErrs, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
			Message: errorMessage(fe),
		})
	}
	return validationErrs
}

func errorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "kind":
		return fmt.Sprintf("unknown kind %q", fe.Value())
	}
	return fmt.Sprintf("%s is invalid", field)
}
