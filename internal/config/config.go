package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	DefaultProfileName = "default"
	DefaultServerURL   = "http://localhost:8080"
	DefaultLogLevel    = "info"

	configDirName  = ".nile-cgpa"
	configFileName = "config.json"
	logFileName    = "nile-cgpa.log"

	// EnvHome overrides the directory that holds .nile-cgpa/.
	EnvHome = "NILE_CGPA_HOME"
	// EnvServerURL overrides the active profile's server URL.
	EnvServerURL = "NILE_CGPA_SERVER_URL"
)

// Profile describes one CGPA backend.
type Profile struct {
	ServerURL string `json:"server_url"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	LogFile        string             `json:"log_file,omitempty"`
	LogLevel       string             `json:"log_level,omitempty"`
	currentProfile *Profile
	path           string
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the config at configPath, creating a default one if
// the file does not exist.
func LoadConfigFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.path = configPath

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// GetServerURL returns the backend base URL. NILE_CGPA_SERVER_URL wins over
// the active profile. The result is not validated.
func (c *Config) GetServerURL() string {
	if env := os.Getenv(EnvServerURL); env != "" {
		return env
	}
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.ServerURL
}

func (c *Config) GetLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(c.path), logFileName)
}

func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

func (c *Config) Path() string {
	return c.path
}

// ProfileNames returns the profile names sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetActiveProfile switches the active profile. The change is not saved.
func (c *Config) SetActiveProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

// DeleteProfile removes a profile. Deleting the active profile activates
// another one, or recreates the default profile if none is left.
func (c *Config) DeleteProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(c.Profiles, name)

	if len(c.Profiles) == 0 {
		c.Profiles[DefaultProfileName] = Profile{ServerURL: DefaultServerURL}
	}
	if c.ActiveProfile == name {
		c.ActiveProfile = c.ProfileNames()[0]
	}
	return c.setCurrentProfile()
}

func getConfigPath() (string, error) {
	var configDir string

	// Use NILE_CGPA_HOME if set, otherwise use user's home directory
	if home := os.Getenv(EnvHome); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, configDirName, configFileName), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			DefaultProfileName: {ServerURL: DefaultServerURL},
		},
		ActiveProfile: DefaultProfileName,
		LogLevel:      DefaultLogLevel,
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = getConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile by name
		c.ActiveProfile = c.ProfileNames()[0]
		profile = c.Profiles[c.ActiveProfile]
	}

	profile.ServerURL = strings.TrimSpace(profile.ServerURL)
	c.currentProfile = &profile
	return nil
}
