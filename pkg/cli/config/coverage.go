package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Coverage holds staffing coverage policy configuration
type Coverage struct {
	Path string
}

// Flags returns CLI flags for Coverage configuration
func (c *Coverage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "coverage-config",
			Usage:       "Path to YAML file defining required jurisdictions and the partner position",
			Category:    "Coverage",
			Sources:     cli.EnvVars("DEALDESK_COVERAGE_CONFIG"),
			Destination: &c.Path,
		},
	}
}

// Configure loads the coverage policy, falling back to the built-in defaults
// when no file is given.
func (c *Coverage) Configure(ctx context.Context) (*model.CoverageConfig, error) {
	logger := ctxlog.From(ctx)

	if c.Path == "" {
		logger.Info("Using default coverage policy")
		return model.DefaultCoverageConfig(), nil
	}

	cfg, err := LoadCoverageFromFile(c.Path)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogValue returns structured log value
func (c Coverage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", c.Path),
	)
}

// LoadCoverageFromFile loads a coverage policy from a YAML file
func LoadCoverageFromFile(path string) (*model.CoverageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "coverage configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read coverage configuration file",
			goerr.V("path", path))
	}

	var config model.CoverageConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML coverage configuration",
			goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid coverage configuration",
			goerr.V("path", path))
	}

	return &config, nil
}
