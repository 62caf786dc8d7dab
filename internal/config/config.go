package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	ETL       ETLConfig       `yaml:"etl" mapstructure:"etl"`
	Geocoder  GeocoderConfig  `yaml:"geocoder" mapstructure:"geocoder"`
	Project   ProjectConfig   `yaml:"project" mapstructure:"project"`
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Map       MapConfig       `yaml:"map" mapstructure:"map"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ETLConfig configures the extract and transform stages.
type ETLConfig struct {
	RemoteURL     string `yaml:"remote_url" mapstructure:"remote_url"`
	DataFormat    string `yaml:"data_format" mapstructure:"data_format"` // "csv" or "xlsx"
	XLSXSheet     string `yaml:"xlsx_sheet" mapstructure:"xlsx_sheet"`
	AddressColumn string `yaml:"address_column" mapstructure:"address_column"`
	AddressSuffix string `yaml:"address_suffix" mapstructure:"address_suffix"`
}

// GeocoderConfig configures the one-line geocoding service.
// The request URL is built as prefix_url + url-encoded address + suffix_url.
type GeocoderConfig struct {
	PrefixURL   string `yaml:"prefix_url" mapstructure:"prefix_url"`
	SuffixURL   string `yaml:"suffix_url" mapstructure:"suffix_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ProjectConfig locates the working directory and the map project document.
type ProjectConfig struct {
	Dir  string `yaml:"dir" mapstructure:"dir"`
	File string `yaml:"file" mapstructure:"file"`
}

// WorkspaceConfig configures the shapefile workspace the load stage writes to.
type WorkspaceConfig struct {
	Path         string `yaml:"path" mapstructure:"path"`
	FeatureClass string `yaml:"feature_class" mapstructure:"feature_class"`
	SRSWKID      int    `yaml:"srs_wkid" mapstructure:"srs_wkid"`
}

// MapConfig configures the map styling and layout export steps.
type MapConfig struct {
	SRSWKID       int    `yaml:"srs_wkid" mapstructure:"srs_wkid"`
	AnalysisLayer string `yaml:"analysis_layer" mapstructure:"analysis_layer"`
	TargetLayer   string `yaml:"target_layer" mapstructure:"target_layer"`
	ExportName    string `yaml:"export_name" mapstructure:"export_name"`
}

// ReportConfig configures the spraying-address report.
type ReportConfig struct {
	Name   string   `yaml:"name" mapstructure:"name"`
	Query  string   `yaml:"query" mapstructure:"query"`
	Fields []string `yaml:"fields" mapstructure:"fields"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// Load reads configuration from file and environment. An empty path searches
// for wnvoutbreak.yaml in . and ./config; a non-empty path names the config
// file directly and must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wnvoutbreak")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment
	v.SetEnvPrefix("OUTBREAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("etl.data_format", "csv")
	v.SetDefault("etl.address_column", "Street Address")
	v.SetDefault("etl.address_suffix", "Boulder, CO")
	v.SetDefault("geocoder.prefix_url", "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress?address=")
	v.SetDefault("geocoder.suffix_url", "&benchmark=Public_AR_Current&format=json")
	v.SetDefault("geocoder.timeout_secs", 30)
	v.SetDefault("geocoder.user_agent", "outbreak-cli/1.0")
	v.SetDefault("project.dir", "./wnv")
	v.SetDefault("project.file", "boulder_wnv.yaml")
	v.SetDefault("workspace.path", "./wnv/workspace")
	v.SetDefault("workspace.feature_class", "avoid_points")
	v.SetDefault("workspace.srs_wkid", 4326)
	v.SetDefault("map.srs_wkid", 3743)
	v.SetDefault("map.analysis_layer", "Final_Analysis_Layer")
	v.SetDefault("map.target_layer", "Target_Addresses")
	v.SetDefault("map.export_name", "WestNileOutbreakMap.geojson")
	v.SetDefault("report.name", "WNV_spraying_addresses.csv")
	v.SetDefault("report.query", "Join_Count = 1")
	v.SetDefault("report.fields", []string{"OBJECTID_1", "FULLADDR", "ADDRNUM", "STREETNAME", "STREETSUFF"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// A search miss is fine. An explicitly named file that cannot be read
	// surfaces as a non-ConfigFileNotFoundError and fails the load.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable for the given mode.
// Modes: "etl" (extract/transform/load), "map" (project operations), "report".
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Project.Dir == "" {
		problems = append(problems, "project.dir is required")
	}

	switch mode {
	case "etl":
		if c.ETL.RemoteURL == "" {
			problems = append(problems, "etl.remote_url is required")
		}
		if c.ETL.DataFormat != "csv" && c.ETL.DataFormat != "xlsx" {
			problems = append(problems, "etl.data_format must be csv or xlsx")
		}
		if c.Geocoder.PrefixURL == "" {
			problems = append(problems, "geocoder.prefix_url is required")
		}
		if c.Geocoder.TimeoutSecs <= 0 {
			problems = append(problems, "geocoder.timeout_secs must be > 0")
		}
		if c.Workspace.Path == "" {
			problems = append(problems, "workspace.path is required")
		}
		if c.Workspace.FeatureClass == "" {
			problems = append(problems, "workspace.feature_class is required")
		}
	case "map":
		if c.Project.File == "" {
			problems = append(problems, "project.file is required")
		}
	case "report":
		if c.Report.Name == "" {
			problems = append(problems, "report.name is required")
		}
		if len(c.Report.Fields) == 0 {
			problems = append(problems, "report.fields must not be empty")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger. When cfg.File is set, log
// output goes to that file instead of stderr.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
