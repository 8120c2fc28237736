package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the optional TOML configuration file
type AppConfig struct {
	Locale     model.Locale     `toml:"locale"`
	Branding   BrandingDefaults `toml:"branding"`
	Storage    StorageKeys      `toml:"storage"`
	SaveStatus SaveStatus       `toml:"save_status"`
}

// BrandingDefaults seeds branding settings when none are stored
type BrandingDefaults struct {
	OrganizationName string `toml:"organization_name"`
	Address          string `toml:"address"`
	ContactInfo      string `toml:"contact_info"`
}

// StorageKeys overrides the keys the two blobs are stored under
type StorageKeys struct {
	Cases    string `toml:"cases_key"`
	Branding string `toml:"branding_key"`
}

// SaveStatus configures the "changes saved" indicator
type SaveStatus struct {
	Delay string `toml:"delay"`
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	cases, branding := a.Storage.Cases, a.Storage.Branding
	if cases == "" {
		cases = usecase.DefaultCasesKey
	}
	if branding == "" {
		branding = usecase.DefaultBrandingKey
	}
	if cases == branding {
		return goerr.Wrap(ErrInvalidConfig, "cases and branding storage keys must differ",
			goerr.V(FieldKey, "storage"),
			goerr.V("key", cases))
	}

	if a.SaveStatus.Delay != "" {
		d, err := time.ParseDuration(a.SaveStatus.Delay)
		if err != nil {
			return goerr.Wrap(ErrInvalidConfig, "save_status.delay is not a duration",
				goerr.V(FieldKey, "save_status.delay"),
				goerr.V("cause", err.Error()))
		}
		if d <= 0 {
			return goerr.Wrap(ErrInvalidConfig, "save_status.delay must be positive",
				goerr.V(FieldKey, "save_status.delay"),
				goerr.V("delay", d))
		}
	}

	return nil
}

// SaveStatusDelay returns the configured delay, or zero for the default
func (a *AppConfig) SaveStatusDelay() time.Duration {
	d, err := time.ParseDuration(a.SaveStatus.Delay)
	if err != nil {
		return 0
	}
	return d
}

// UseCaseOptions converts the file contents into use case options
func (a *AppConfig) UseCaseOptions() []usecase.Option {
	opts := []usecase.Option{
		usecase.WithStorageKeys(a.Storage.Cases, a.Storage.Branding),
		usecase.WithDefaultBranding(model.BrandingSettings{
			OrganizationName: a.Branding.OrganizationName,
			Address:          a.Branding.Address,
			ContactInfo:      a.Branding.ContactInfo,
		}),
	}
	if d := a.SaveStatusDelay(); d > 0 {
		opts = append(opts, usecase.WithSaveStatusDelay(d))
	}
	return opts
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// App holds the --config flag
type App struct {
	path string
}

// Flags returns CLI flags for the application config file
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML configuration file",
			Sources:     cli.EnvVars("CASEBOOK_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the config file, or returns an empty config when no
// path is set
func (a *App) Configure() (*AppConfig, error) {
	if a.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(a.path)
}
