package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"shivansh.dev/internal/models"
	"shivansh.dev/internal/validation"
)

// DefaultConfigFile is read from the working directory when present
const DefaultConfigFile = "portfolio.toml"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Log      LogConfig      `toml:"log"`
	Showcase ShowcaseConfig `toml:"showcase"`

	Projects *models.ProjectList `toml:"-"`
	Site     *models.SiteContent `toml:"-"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	DevMode     bool     `toml:"dev_mode"`
	SessionIdle Duration `toml:"session_idle"`
}

// DataConfig locates the catalog, site content and static bundle
type DataConfig struct {
	Dir       string `toml:"dir"`
	StaticDir string `toml:"static_dir"`
	MediaDir  string `toml:"media_dir"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `toml:"level"`
}

// ShowcaseConfig holds carousel defaults for new visitor sessions
type ShowcaseConfig struct {
	Autoplay      bool     `toml:"autoplay"`
	AutoplayDelay Duration `toml:"autoplay_delay"`
	Loop          bool     `toml:"loop"`
}

// Duration decodes TOML strings such as "3s" or "30m"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns settings that work from the repository root
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			SessionIdle: Duration{30 * time.Minute},
		},
		Data: DataConfig{
			Dir:       "data",
			StaticDir: "public",
			MediaDir:  filepath.Join("public", "media"),
		},
		Log: LogConfig{Level: "info"},
		Showcase: ShowcaseConfig{
			Autoplay:      true,
			AutoplayDelay: Duration{3 * time.Second},
			Loop:          true,
		},
	}
}

// Load reads portfolio.toml (optional), applies environment overrides and
// then loads the catalog and site content from the data directory.
func Load(path string) (*Config, error) {
	cfg, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.LoadData(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSettings reads only the server settings, without touching data files.
// A missing file at the default path is not an error.
func LoadSettings(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PORTFOLIO_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("PORTFOLIO_STATIC_DIR"); v != "" {
		cfg.Data.StaticDir = v
	}
	if v := os.Getenv("PORTFOLIO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// LoadData reads projects.json and site.yaml from the data directory
func (c *Config) LoadData() error {
	projects, err := LoadProjects(filepath.Join(c.Data.Dir, "projects.json"))
	if err != nil {
		return err
	}
	site, err := LoadSite(filepath.Join(c.Data.Dir, "site.yaml"))
	if err != nil {
		return err
	}
	c.Projects = projects
	c.Site = site
	return nil
}

// LoadProjects reads and validates the project catalog
func LoadProjects(path string) (*models.ProjectList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	if err := validation.ValidateCatalog(data); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	var projects models.ProjectList
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse projects: %w", err)
	}
	if err := projects.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return &projects, nil
}

// LoadSite reads the section copy. A missing file yields the default navigation only.
func LoadSite(path string) (*models.SiteContent, error) {
	site := &models.SiteContent{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, site); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}

	if len(site.Nav) == 0 {
		site.Nav = models.DefaultNav()
	}
	return site, nil
}
