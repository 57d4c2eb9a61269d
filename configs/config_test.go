package configs

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromAppliesDefaults(t *testing.T) {
	v := viper.New()

	config, err := LoadConfigFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "text", config.OutputFormat)
	assert.Equal(t, 4, config.Output.Precision)
	assert.Equal(t, GetDefaultPlotConfig(), config.Plot)
	assert.Equal(t, GetDefaultConfig(), config)
	assert.NotEmpty(t, config.DataDir)
	assert.NoError(t, ValidateConfig(config))
}

func TestLoadConfigFromReadsYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
verbose: true
output_format: json
data_dir: /srv/tcs
profile_file: profiles/bench.yaml
plot:
  enabled: true
  format: svg
  width_in: 10
`)))

	config, err := LoadConfigFrom(v)
	require.NoError(t, err)

	assert.True(t, config.Verbose)
	assert.Equal(t, "json", config.OutputFormat)
	assert.Equal(t, "/srv/tcs", config.DataDir)
	assert.Equal(t, "profiles/bench.yaml", config.ProfileFile)
	assert.True(t, config.Plot.Enabled)
	assert.Equal(t, "svg", config.Plot.Format)
	assert.Equal(t, 10.0, config.Plot.WidthIn)
	assert.Equal(t, 6.0, config.Plot.HeightIn)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown format", mutate: func(c *Config) { c.OutputFormat = "xml" }, wantErr: "output format"},
		{name: "negative precision", mutate: func(c *Config) { c.Output.Precision = -1 }, wantErr: "precision"},
		{name: "zero plot height", mutate: func(c *Config) { c.Plot.HeightIn = 0 }, wantErr: "plot width and height"},
		{name: "empty plot format", mutate: func(c *Config) { c.Plot.Format = "" }, wantErr: "plot format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := GetDefaultConfig()
			tt.mutate(config)

			err := ValidateConfig(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
