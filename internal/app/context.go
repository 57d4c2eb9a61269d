package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/RyanBlaney/latency-benchmark-common/output"
	"github.com/tunein/go-logging/v7/pkg/logger"
	"github.com/tunein/go-logging/v7/pkg/logger/logtypes"
	"github.com/tunein/go-logging/v7/pkg/rootlogger"

	"github.com/RyanBlaney/spectral-calibration/configs"
	"github.com/RyanBlaney/spectral-calibration/internal/calibration"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ProfileFile  string // Calibration profile file (optional)
	DataDir      string
	OutputFile   string
	OutputFormat string
	PlotDir      string
	LogFile      string
	Verbose      bool

	// Out receives console output; defaults to stdout
	Out io.Writer

	// Runtime context
	Logger  logging.Logger
	Config  *configs.Config
	Profile *calibration.Profile
}

// CalibrationApp handles the calibration application lifecycle
type CalibrationApp struct {
	ctx      *Context
	config   *configs.Config
	profile  calibration.Profile
	pipeline *calibration.Pipeline
	logger   logging.Logger
	out      io.Writer
}

// NewCalibrationApp creates a new calibration application. A Config already
// present on ctx is used instead of the viper-loaded one.
func NewCalibrationApp(ctx *Context) (*CalibrationApp, error) {
	// Load configuration
	config, profile, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config
	ctx.Profile = profile

	// Set up logging
	log := setupLogging(config)
	ctx.Logger = log

	pipeline, err := calibration.NewPipeline(*profile, calibration.DirLoader{Dir: config.DataDir}, log)
	if err != nil {
		return nil, err
	}

	out := ctx.Out
	if out == nil {
		out = os.Stdout
	}

	log.Debug("Calibration application initialized", logging.Fields{
		"profile":       profile.Name,
		"profile_file":  config.ProfileFile,
		"data_dir":      config.DataDir,
		"output_format": config.OutputFormat,
		"plots":         config.Plot.Enabled,
	})

	return &CalibrationApp{
		ctx:      ctx,
		config:   config,
		profile:  *profile,
		pipeline: pipeline,
		logger:   log,
		out:      out,
	}, nil
}

// Run executes the named analysis and outputs its result
func (app *CalibrationApp) Run(name string) error {
	analysis, err := LookupAnalysis(name)
	if err != nil {
		return err
	}

	app.logger.Debug("Starting calibration analysis", logging.Fields{
		"analysis": analysis.Name,
	})

	start := time.Now()
	result, err := analysis.run(app.pipeline)
	if err != nil {
		return fmt.Errorf("%s: %w", analysis.Name, err)
	}

	app.logger.Debug("Calibration analysis finished", logging.Fields{
		"analysis":    analysis.Name,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if err := app.outputResults(analysis, result); err != nil {
		return fmt.Errorf("failed to output results: %w", err)
	}

	if app.config.Plot.Enabled {
		if err := app.writePlots(result); err != nil {
			return fmt.Errorf("failed to write plots: %w", err)
		}
	}

	return nil
}

// Profile returns the calibration profile in use
func (app *CalibrationApp) Profile() calibration.Profile {
	return app.profile
}

// setupLogging configures logging based on configuration
func setupLogging(config *configs.Config) logging.Logger {
	if config.Verbose || config.LogLevel == "debug" {
		logging.SetLevel(logging.DebugLevel)
	} else {
		logging.SetLevel(logging.InfoLevel)
	}

	if config.LogFile != "" {
		err := rootlogger.Configure(logger.LogOptions{
			Out:          config.LogFile,
			ReopenSignal: syscall.SIGHUP,
			Level:        logtypes.InfoLevel,
		})
		if err != nil {
			logging.Error(err, "Failed configuring log writer")
		}
	}

	return logging.NewDefaultLogger()
}

// loadAndMergeConfig loads configuration and the calibration profile and
// merges them with CLI flags
func loadAndMergeConfig(ctx *Context) (*configs.Config, *calibration.Profile, error) {
	// Load base configuration
	baseConfig := ctx.Config
	if baseConfig == nil {
		var err error
		baseConfig, err = configs.LoadConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load base configuration: %w", err)
		}
	}

	// Merge configurations
	config := mergeConfig(baseConfig, ctx)

	if err := configs.ValidateConfig(config); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Load calibration profile from file, or fall back to the built-in one
	profile, err := LoadProfile(config.ProfileFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load calibration profile: %w", err)
	}

	return config, profile, nil
}

// outputResults handles all result output
func (app *CalibrationApp) outputResults(analysis Analysis, result any) error {
	if app.config.OutputFormat == "text" {
		var b strings.Builder
		t := &textWriter{w: &b, precision: app.config.Output.Precision}
		t.header(analysis.Title)
		analysis.text(t, result)
		return app.emit([]byte(b.String()))
	}

	outputData := map[string]any{
		"analysis":  analysis.Name,
		"profile":   app.profile.Name,
		"timestamp": time.Now(),
		"result":    result,
	}

	// Create formatter
	var formatter output.Formatter
	switch app.config.OutputFormat {
	case "json":
		formatter = &output.JSONFormatter{}
	case "yaml":
		formatter = &output.YAMLFormatter{}
	case "csv":
		formatter = &output.CSVFormatter{}
	case "table":
		formatter = &output.TableFormatter{}
	default:
		formatter = &output.JSONFormatter{}
	}

	// Format data
	formattedData, err := formatter.Format(outputData, true)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}

	return app.emit(formattedData)
}

// emit writes to the output file or the console
func (app *CalibrationApp) emit(data []byte) error {
	if app.config.OutputFile != "" {
		return app.writeToFile(data)
	}

	_, err := app.out.Write(data)
	return err
}

// writeToFile writes data to the specified output file
func (app *CalibrationApp) writeToFile(data []byte) error {
	// Ensure directory exists
	dir := filepath.Dir(app.config.OutputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Write file
	if err := os.WriteFile(app.config.OutputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	app.logger.Debug("Results written to file", logging.Fields{
		"output_file": app.config.OutputFile,
		"size_bytes":  len(data),
	})

	return nil
}
