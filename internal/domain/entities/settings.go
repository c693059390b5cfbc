package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultInputPath is where the job scheduler drops the task description.
	DefaultInputPath = "/dependencies/input_data.json"

	defaultRemote             = "origin"
	defaultPullRequestCommand = "pullrequest"
	defaultAuthorName         = "dependactor"
	defaultAuthorEmail        = "dependactor@localhost"

	VCSBackendCLI   = "cli"
	VCSBackendGoGit = "gogit"
)

// Settings is the static configuration of the worker.
type Settings struct {
	Input              string          `yaml:"input"`                // task description file
	Report             string          `yaml:"report"`               // optional file receiving the final task
	Repository         string          `yaml:"repository"`           // working copy root
	Remote             string          `yaml:"remote"`               // remote pushed to outside test mode
	PullRequestCommand string          `yaml:"pull_request_command"` // external submission binary
	VCS                string          `yaml:"vcs"`                  // "cli" or "gogit"
	Author             Author          `yaml:"author"`
	Updaters           UpdatersSection `yaml:"updaters"`
}

// Author identifies commits made without the git CLI.
type Author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// UpdatersSection holds per-adapter settings.
type UpdatersSection struct {
	Command CommandUpdaterConfig `yaml:"command"`
}

// CommandUpdaterConfig holds the command lines of the generic adapter.
// Arguments may contain {path}, {dependency} and {version} placeholders.
type CommandUpdaterConfig struct {
	Lockfile string `yaml:"lockfile"`
	Manifest string `yaml:"manifest"`
	Collect  string `yaml:"collect"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// NewSettings reads and parses a configuration file, expanding environment variables.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	expanded := expandEnv(string(data))

	var settings Settings
	if unmarshalErr := yaml.Unmarshal([]byte(expanded), &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.applyDefaults()

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// Validate checks for unsupported configuration values.
func (s *Settings) Validate() error {
	if s.VCS != VCSBackendCLI && s.VCS != VCSBackendGoGit {
		return fmt.Errorf("vcs must be %q or %q, got %q", VCSBackendCLI, VCSBackendGoGit, s.VCS)
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.Input == "" {
		s.Input = DefaultInputPath
	}
	if s.Repository == "" {
		s.Repository = "."
	}
	if s.Remote == "" {
		s.Remote = defaultRemote
	}
	if s.PullRequestCommand == "" {
		s.PullRequestCommand = defaultPullRequestCommand
	}
	if s.VCS == "" {
		s.VCS = VCSBackendCLI
	}
	if s.Author.Name == "" {
		s.Author.Name = defaultAuthorName
	}
	if s.Author.Email == "" {
		s.Author.Email = defaultAuthorEmail
	}
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".dependactor.yaml",
		".dependactor.yml",
		"dependactor.yaml",
		"dependactor.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv replaces ${ENV_VAR} references with their values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
