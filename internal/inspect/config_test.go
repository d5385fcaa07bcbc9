package inspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]string{"--kind", "group", "dump.bin"})
	require.NoError(t, err)
	assert.Equal(t, "group", cfg.Kind)
	assert.Equal(t, "dump.bin", cfg.Input)
	assert.Equal(t, EncodingRaw, cfg.Encoding)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Metrics)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("MANGO_FORMAT", "yaml")
	t.Setenv("MANGO_LOG_LEVEL", "debug")
	t.Setenv("MANGO_ENCODING", "base64")

	cfg, err := LoadConfig([]string{"-k", "NODE", "-e", "hex"})
	require.NoError(t, err)
	assert.Equal(t, "node", cfg.Kind)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, EncodingHex, cfg.Encoding, "flags win over the environment")
	assert.Equal(t, "-", cfg.Input)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inspect.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: perp_market\nencoding: hex\nmetrics: true\n"), 0o600))

	cfg, err := LoadConfig([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "perp_market", cfg.Kind)
	assert.Equal(t, EncodingHex, cfg.Encoding)
	assert.True(t, cfg.Metrics)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig([]string{"-k", "group", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		tag  string
	}{
		{"missing kind", []string{}, "required"},
		{"unknown kind", []string{"-k", "cache"}, "kind"},
		{"bad format", []string{"-k", "group", "-f", "toml"}, "oneof"},
		{"bad encoding", []string{"-k", "group", "-e", "base58"}, "oneof"},
		{"bad log level", []string{"-k", "group", "--log-level", "trace"}, "oneof"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(tc.args)
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.tag, verrs[0].Tag)
			assert.NotEmpty(t, verrs[0].Message)
		})
	}
}

func TestLoadConfigRejectsExtraArgs(t *testing.T) {
	_, err := LoadConfig([]string{"-k", "group", "a.bin", "b.bin"})
	assert.Error(t, err)
}

func TestKindNames(t *testing.T) {
	names := KindNames()
	assert.Contains(t, names, "auto")
	assert.Contains(t, names, "instruction")
	assert.Len(t, names, len(decoders))
	assert.IsIncreasing(t, names)
}

func TestNewValidatorSurfacesRegistrationErrors(t *testing.T) {
	v, err := newValidator(customRules)
	require.NoError(t, err)
	require.NotNil(t, v)

	_, err = newValidator(map[string]validator.Func{"": customRules["kind"]})
	assert.Error(t, err)
	_, err = newValidator(map[string]validator.Func{"kind": nil})
	assert.Error(t, err)
}
