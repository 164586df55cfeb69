package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAPIBaseURL    = "http://localhost:8000"
	DefaultSearchBaseURL = "http://localhost:8000"
	DefaultTimeout       = 30 * time.Second
)

type Profile struct {
	APIBaseURL     string `json:"api_base_url" mapstructure:"api_base_url"`
	SearchBaseURL  string `json:"search_base_url" mapstructure:"search_base_url"`
	CatalogPath    string `json:"catalog_path,omitempty" mapstructure:"catalog_path"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" mapstructure:"timeout_seconds"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles" mapstructure:"profiles"`
	ActiveProfile  string             `json:"active_profile" mapstructure:"active_profile"`
	currentProfile *Profile
	path           string
}

// LoadConfig reads the config file, creating it with a default profile on first
// run. RORIPARTS_API_BASE_URL, RORIPARTS_SEARCH_BASE_URL and RORIPARTS_CATALOG_PATH
// override the active profile without being saved.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	config.applyEnv()
	return config, nil
}

func DefaultProfile() Profile {
	return Profile{
		APIBaseURL:     DefaultAPIBaseURL,
		SearchBaseURL:  DefaultSearchBaseURL,
		TimeoutSeconds: int(DefaultTimeout / time.Second),
	}
}

// Current returns a copy of the active profile with environment overrides and
// defaults applied.
func (c *Config) Current() Profile {
	if c.currentProfile == nil {
		return DefaultProfile()
	}
	return *c.currentProfile
}

func (c *Config) GetAPIBaseURL() string {
	return c.Current().APIBaseURL
}

func (c *Config) GetSearchBaseURL() string {
	return c.Current().SearchBaseURL
}

func (c *Config) GetCatalogPath() string {
	return c.Current().CatalogPath
}

func (c *Config) GetTimeout() time.Duration {
	if s := c.Current().TimeoutSeconds; s > 0 {
		return time.Duration(s) * time.Second
	}
	return DefaultTimeout
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// NormalizeName maps a profile name to the key it is stored under. Viper folds
// keys to lower case.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func getConfigPath() (string, error) {
	var configDir string

	// Use RORIPARTS_HOME if set, otherwise use user's home directory
	if home := os.Getenv("RORIPARTS_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".roriparts", "config.json"), nil
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

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.ActiveProfile = NormalizeName(config.ActiveProfile)
	config.path = configPath

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": DefaultProfile(),
		},
		ActiveProfile: "default",
		path:          configPath,
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
		configPath, err = getConfigPath()
		if err != nil {
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
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	fillDefaults(&profile)
	c.currentProfile = &profile
	return nil
}

func fillDefaults(p *Profile) {
	if p.APIBaseURL == "" {
		p.APIBaseURL = DefaultAPIBaseURL
	}
	if p.SearchBaseURL == "" {
		p.SearchBaseURL = DefaultSearchBaseURL
	}
	if p.TimeoutSeconds <= 0 {
		p.TimeoutSeconds = int(DefaultTimeout / time.Second)
	}
}

func (c *Config) applyEnv() {
	v := viper.New()
	v.SetEnvPrefix("roriparts")
	for _, key := range []string{"api_base_url", "search_base_url", "catalog_path"} {
		_ = v.BindEnv(key)
	}

	if s := v.GetString("api_base_url"); s != "" {
		c.currentProfile.APIBaseURL = s
	}
	if s := v.GetString("search_base_url"); s != "" {
		c.currentProfile.SearchBaseURL = s
	}
	if s := v.GetString("catalog_path"); s != "" {
		c.currentProfile.CatalogPath = s
	}
}
