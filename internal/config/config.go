// Package config loads server settings from defaults, an optional YAML file,
// OFFICE_SERVER_* environment variables and command line flags.
package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.alis.build/alog"

	imcp "github.com/negokaz/office-server/internal/mcp"
)

const EnvPrefix = "OFFICE_SERVER"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Office     OfficeConfig     `mapstructure:"office"`
	Screenshot ScreenshotConfig `mapstructure:"screenshot"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// MCP mounts the streamable HTTP MCP endpoint at /mcp.
	MCP bool `mapstructure:"mcp"`
	// CORSOrigins are "*" or http(s) origins; empty disables CORS.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// Format is "text" for console output or "json" for Cloud Logging
	// entries.
	Format string `mapstructure:"format"`
}

// Environment maps the log format to an alog environment.
func (c LogConfig) Environment() alog.LoggingEnvironment {
	if strings.EqualFold(c.Format, "json") {
		return alog.EnvironmentGoogle
	}
	return alog.EnvironmentLocal
}

type OfficeConfig struct {
	Visible       bool          `mapstructure:"visible"`
	Attach        bool          `mapstructure:"attach"`
	DisplayAlerts bool          `mapstructure:"display_alerts"`
	CallTimeout   time.Duration `mapstructure:"call_timeout"`
}

type ScreenshotConfig struct {
	MaxWidth int    `mapstructure:"max_width"`
	TempDir  string `mapstructure:"temp_dir"`
}

// Addr is the listen address of the HTTP server.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8765)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.mcp", true)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("office.visible", true)
	v.SetDefault("office.attach", true)
	v.SetDefault("office.display_alerts", false)
	v.SetDefault("office.call_timeout", 60*time.Second)
	v.SetDefault("screenshot.max_width", 1600)
	v.SetDefault("screenshot.temp_dir", "")
}

// Load reads the configuration. file may be empty; flags bound to v before
// Load take precedence over everything else.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", file)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var serverSchema = z.Struct(z.Shape{
	"host": z.String().Required(),
	"port": z.Int().Required().GTE(1).LTE(65535),
})

var screenshotSchema = z.Struct(z.Shape{
	"maxWidth": z.Int().GTE(0),
})

// Validate checks the values that cannot be used as loaded.
func (c *Config) Validate() error {
	issues := map[string][]string{}
	for field, list := range imcp.Issues(serverSchema.Validate(&c.Server)) {
		issues["server."+field] = list
	}
	for field, list := range imcp.Issues(screenshotSchema.Validate(&c.Screenshot)) {
		issues["screenshot."+field] = list
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		issues["log.level"] = []string{err.Error()}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		issues["log.format"] = []string{`must be "text" or "json"`}
	}
	for _, origin := range c.Server.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			issues["server.cors_origins"] = append(issues["server.cors_origins"], `"`+origin+`" must be "*" or start with http:// or https://`)
		}
	}
	if c.Server.ReadTimeout < 0 {
		issues["server.read_timeout"] = []string{"must not be negative"}
	}
	if c.Server.WriteTimeout < 0 {
		issues["server.write_timeout"] = []string{"must not be negative"}
	}
	if c.Office.CallTimeout < 0 {
		issues["office.call_timeout"] = []string{"must not be negative"}
	}
	if len(issues) != 0 {
		return errors.New("invalid configuration:\n" + imcp.FormatIssues(issues))
	}
	return nil
}

var levels = map[string]alog.LogLevel{
	"debug":   alog.LevelDebug,
	"info":    alog.LevelInfo,
	"notice":  alog.LevelNotice,
	"warn":    alog.LevelWarning,
	"warning": alog.LevelWarning,
	"error":   alog.LevelError,
}

// ParseLevel maps a level name to an alog level.
func ParseLevel(name string) (alog.LogLevel, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return alog.LevelDefault, errors.Errorf("unknown log level %q", name)
	}
	return level, nil
}
