package controllers

import (
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

const (
	envJobID        = "JOB_ID"
	envBaseRevision = "GIT_SHA"
	envMode         = "DEPENDENCIES_ENV"
)

// loadSettings reads the config file (explicit, auto-detected or none) and
// applies the command-line overrides.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		}
	}

	settings := entities.DefaultSettings()
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)

		var err error
		settings, err = entities.NewSettings(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	overrideString(cmd, "input", &settings.Input)
	overrideString(cmd, "report", &settings.Report)
	overrideString(cmd, "repository", &settings.Repository)
	overrideString(cmd, "vcs", &settings.VCS)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// resolveEnvironment builds the job environment from the process environment,
// with command-line flags taking precedence.
func resolveEnvironment(cmd *cobra.Command) entities.JobEnvironment {
	env := entities.JobEnvironment{
		JobID:        os.Getenv(envJobID),
		BaseRevision: os.Getenv(envBaseRevision),
		Mode:         entities.Mode(os.Getenv(envMode)),
	}

	overrideString(cmd, "job-id", &env.JobID)
	overrideString(cmd, "base", &env.BaseRevision)

	var mode string
	overrideString(cmd, "mode", &mode)
	if mode != "" {
		env.Mode = entities.Mode(mode)
	}
	return env
}

// overrideString copies a non-empty flag value into target.
func overrideString(cmd *cobra.Command, name string, target *string) {
	if cmd.Flags().Lookup(name) == nil {
		return
	}
	if value, _ := cmd.Flags().GetString(name); value != "" {
		*target = value
	}
}
