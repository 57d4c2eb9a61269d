package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/spectral-calibration/configs"
	"github.com/RyanBlaney/spectral-calibration/internal/calibration"
)

// LoadProfile returns the profile stored at filePath, or the built-in
// profile when filePath is empty.
func LoadProfile(filePath string) (*calibration.Profile, error) {
	if filePath == "" {
		profile := calibration.DefaultProfile()
		return &profile, nil
	}
	return loadProfileFromFile(filePath)
}

// loadProfileFromFile loads a calibration profile from a file. Keys absent
// from the file keep their built-in defaults.
func loadProfileFromFile(filePath string) (*calibration.Profile, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("profile file does not exist: %s", filePath)
	}

	// Determine file format
	ext := filepath.Ext(filePath)
	switch ext {
	case ".yaml", ".yml":
		return loadProfileFromYAML(filePath)
	case ".json":
		return loadProfileFromJSON(filePath)
	default:
		// Try YAML first, then JSON
		if profile, err := loadProfileFromYAML(filePath); err == nil {
			return profile, nil
		}
		return loadProfileFromJSON(filePath)
	}
}

// loadProfileFromYAML loads a profile from a YAML file
func loadProfileFromYAML(filePath string) (*calibration.Profile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML profile file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML profile file: %w", err)
	}

	profile := calibration.DefaultProfile()
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
	}

	return &profile, nil
}

// loadProfileFromJSON loads a profile from a JSON file
func loadProfileFromJSON(filePath string) (*calibration.Profile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON profile file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON profile file: %w", err)
	}

	profile := calibration.DefaultProfile()
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse JSON profile: %w", err)
	}

	return &profile, nil
}

// mergeConfig overrides the loaded configuration with CLI flags
func mergeConfig(base *configs.Config, ctx *Context) *configs.Config {
	merged := *base

	if ctx.ProfileFile != "" {
		merged.ProfileFile = ctx.ProfileFile
	}
	if ctx.DataDir != "" {
		merged.DataDir = ctx.DataDir
	}
	if ctx.OutputFormat != "" {
		merged.OutputFormat = ctx.OutputFormat
	}
	if ctx.OutputFile != "" {
		merged.OutputFile = ctx.OutputFile
	}
	if ctx.LogFile != "" {
		merged.LogFile = ctx.LogFile
	}
	if ctx.PlotDir != "" {
		merged.Plot.Enabled = true
		merged.Plot.Dir = ctx.PlotDir
	}
	if ctx.Verbose {
		merged.Verbose = true
	}

	return &merged
}

// WriteProfile writes profile in the given format (yaml or json). It is used
// to produce a starting point for a custom profile file.
func WriteProfile(w io.Writer, profile calibration.Profile, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(profile); err != nil {
			return fmt.Errorf("failed to encode JSON profile: %w", err)
		}
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(profile); err != nil {
			return fmt.Errorf("failed to encode YAML profile: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported profile format %q", format)
	}
	return nil
}

// ValidateProfile loads and validates a profile file, reporting each check.
func ValidateProfile(w io.Writer, filePath string) error {
	profile, err := loadProfileFromFile(filePath)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Profile file parsed: %s\n", filePath)

	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid calibration profile: %w", err)
	}
	fmt.Fprintf(w, "✅ Profile %q is valid (%d LEDs, %d reference gamuts)\n",
		profile.Name, len(profile.LEDs), len(profile.Gamuts))

	return nil
}
