// Package config loads tidewatch configuration from defaults, an optional
// config file and TIDEWATCH_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Environment represents the running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds backend HTTP settings.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Host           string      `mapstructure:"HOST" yaml:"host"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	// StaticDir, when set, is served at / for a browser frontend.
	StaticDir string `mapstructure:"STATIC_DIR" yaml:"static_dir"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LocationConfig describes the single place the kiosk watches.
type LocationConfig struct {
	Name               string  `mapstructure:"NAME" yaml:"name"`
	Latitude           float64 `mapstructure:"LATITUDE" yaml:"latitude"`
	Longitude          float64 `mapstructure:"LONGITUDE" yaml:"longitude"`
	Timezone           string  `mapstructure:"TIMEZONE" yaml:"timezone"`
	PredictionStation  string  `mapstructure:"PREDICTION_STATION" yaml:"prediction_station"`
	ObservationStation string  `mapstructure:"OBSERVATION_STATION" yaml:"observation_station"`
	WeatherStation     string  `mapstructure:"WEATHER_STATION" yaml:"weather_station"`
	// StationName labels the tide stations in API responses.
	StationName string `mapstructure:"STATION_NAME" yaml:"station_name"`
}

// RefreshConfig holds the fixed poll periods of the dashboard.
type RefreshConfig struct {
	Tide      time.Duration `mapstructure:"TIDE" yaml:"tide"`
	Weather   time.Duration `mapstructure:"WEATHER" yaml:"weather"`
	Astronomy time.Duration `mapstructure:"ASTRONOMY" yaml:"astronomy"`
	Network   time.Duration `mapstructure:"NETWORK" yaml:"network"`
}

// UpstreamConfig points at the public data providers.
type UpstreamConfig struct {
	TidesURL    string        `mapstructure:"TIDES_URL" yaml:"tides_url"`
	WeatherURL  string        `mapstructure:"WEATHER_URL" yaml:"weather_url"`
	USNOURL     string        `mapstructure:"USNO_URL" yaml:"usno_url"`
	UserAgent   string        `mapstructure:"USER_AGENT" yaml:"user_agent"`
	Application string        `mapstructure:"APPLICATION" yaml:"application"`
	Timeout     time.Duration `mapstructure:"TIMEOUT" yaml:"timeout"`
}

// RedisConfig holds Redis connection details. An empty Address keeps the
// snapshot cache in process memory.
type RedisConfig struct {
	Address  string        `mapstructure:"ADDRESS" yaml:"address"`
	Password string        `mapstructure:"PASSWORD" yaml:"password"`
	DB       int           `mapstructure:"DB" yaml:"db"`
	TTL      time.Duration `mapstructure:"TTL" yaml:"ttl"`
}

// DashboardConfig holds terminal kiosk settings.
type DashboardConfig struct {
	BackendURL         string        `mapstructure:"BACKEND_URL" yaml:"backend_url"`
	DataDir            string        `mapstructure:"DATA_DIR" yaml:"data_dir"`
	LogFile            string        `mapstructure:"LOG_FILE" yaml:"log_file"`
	FetchTimeout       time.Duration `mapstructure:"FETCH_TIMEOUT" yaml:"fetch_timeout"`
	ProbeTimeout       time.Duration `mapstructure:"PROBE_TIMEOUT" yaml:"probe_timeout"`
	CellWidthPx        int           `mapstructure:"CELL_WIDTH_PX" yaml:"cell_width_px"`
	SwipeThreshold     int           `mapstructure:"SWIPE_THRESHOLD" yaml:"swipe_threshold"`
	DialSwipeThreshold int           `mapstructure:"DIAL_SWIPE_THRESHOLD" yaml:"dial_swipe_threshold"`
	ChartSettleDelay   time.Duration `mapstructure:"CHART_SETTLE_DELAY" yaml:"chart_settle_delay"`
	Theme              string        `mapstructure:"THEME" yaml:"theme"`
}

// Config aggregates all configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	Location  LocationConfig  `mapstructure:"LOCATION" yaml:"location"`
	Refresh   RefreshConfig   `mapstructure:"REFRESH" yaml:"refresh"`
	Upstream  UpstreamConfig  `mapstructure:"UPSTREAM" yaml:"upstream"`
	Redis     RedisConfig     `mapstructure:"REDIS" yaml:"redis"`
	Dashboard DashboardConfig `mapstructure:"DASHBOARD" yaml:"dashboard"`
	LogLevel  string          `mapstructure:"LOG_LEVEL" yaml:"log_level"`
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// Zone returns the configured IANA location. LoadConfig has already
// validated the name, so the UTC fallback is only reachable for
// hand-built configs.
func (c *Config) Zone() *time.Location {
	loc, err := time.LoadLocation(c.Location.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.HOST", "0.0.0.0")
	v.SetDefault("SERVER.PORT", "5000")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.STATIC_DIR", "")

	v.SetDefault("LOCATION.NAME", "Maple Grove Beach, Camano Island")
	v.SetDefault("LOCATION.LATITUDE", 48.2573)
	v.SetDefault("LOCATION.LONGITUDE", -122.5167)
	v.SetDefault("LOCATION.TIMEZONE", "America/Los_Angeles")
	// Subordinate stations near the beach do not serve API predictions, so
	// Seattle covers both products.
	v.SetDefault("LOCATION.PREDICTION_STATION", "9447130")
	v.SetDefault("LOCATION.OBSERVATION_STATION", "9447130")
	v.SetDefault("LOCATION.WEATHER_STATION", "KNUW")
	v.SetDefault("LOCATION.STATION_NAME", "Seattle")

	v.SetDefault("REFRESH.TIDE", 6*time.Minute)
	v.SetDefault("REFRESH.WEATHER", 10*time.Minute)
	v.SetDefault("REFRESH.ASTRONOMY", 12*time.Hour)
	v.SetDefault("REFRESH.NETWORK", time.Minute)

	v.SetDefault("UPSTREAM.TIDES_URL", "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter")
	v.SetDefault("UPSTREAM.WEATHER_URL", "https://api.weather.gov")
	v.SetDefault("UPSTREAM.USNO_URL", "https://aa.usno.navy.mil/api")
	v.SetDefault("UPSTREAM.USER_AGENT", "TideWatch/1.0 (github.com/ngmaloney/tidewatch)")
	v.SetDefault("UPSTREAM.APPLICATION", "TideWatch")
	v.SetDefault("UPSTREAM.TIMEOUT", 10*time.Second)

	v.SetDefault("REDIS.ADDRESS", "")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.TTL", 7*24*time.Hour)

	v.SetDefault("DASHBOARD.BACKEND_URL", "http://localhost:5000")
	v.SetDefault("DASHBOARD.DATA_DIR", "data")
	v.SetDefault("DASHBOARD.LOG_FILE", "data/dashboard.log")
	v.SetDefault("DASHBOARD.FETCH_TIMEOUT", 20*time.Second)
	v.SetDefault("DASHBOARD.PROBE_TIMEOUT", 5*time.Second)
	v.SetDefault("DASHBOARD.CELL_WIDTH_PX", 8)
	v.SetDefault("DASHBOARD.SWIPE_THRESHOLD", 50)
	v.SetDefault("DASHBOARD.DIAL_SWIPE_THRESHOLD", 30)
	v.SetDefault("DASHBOARD.CHART_SETTLE_DELAY", 100*time.Millisecond)
	v.SetDefault("DASHBOARD.THEME", "dark")

	v.SetDefault("LOG_LEVEL", "info")
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig builds the configuration. path may be empty, in which case
// only defaults and the environment are consulted.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("TIDEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed names still win over the file.
	envBindings := [][2]string{
		{"SERVER.PORT", "PORT"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"LOG_LEVEL", "LOG_LEVEL"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	loc := cfg.Location
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", loc.Latitude)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", loc.Longitude)
	}
	if _, err := time.LoadLocation(loc.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", loc.Timezone, err)
	}
	if loc.PredictionStation == "" || loc.ObservationStation == "" {
		return fmt.Errorf("tide prediction and observation stations are required")
	}

	r := cfg.Refresh
	if r.Tide <= 0 || r.Weather <= 0 || r.Astronomy <= 0 || r.Network <= 0 {
		return fmt.Errorf("refresh intervals must be positive")
	}

	if _, err := url.ParseRequestURI(cfg.Dashboard.BackendURL); err != nil {
		return fmt.Errorf("invalid backend url %q: %w", cfg.Dashboard.BackendURL, err)
	}
	if cfg.Dashboard.CellWidthPx <= 0 {
		return fmt.Errorf("cell width must be positive")
	}
	switch cfg.Dashboard.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("theme must be dark or light, got %q", cfg.Dashboard.Theme)
	}
	return nil
}
