// Package config loads run settings from a TOML or YAML file. Command line
// flags that were set explicitly take precedence over file values.
package config

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-sql-driver/mysql"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"tabledoc/internal/output"
	parser "tabledoc/internal/parser/mysql"
)

// DSNEnv names the environment variable holding the introspection DSN.
const DSNEnv = "TABLEDOC_MYSQL_DSN"

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// IsNotFound reports whether err was caused by a missing config file.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrConfigNotFound
}

// Config holds every setting of a documentation run.
type Config struct {
	Format  string   `toml:"format" yaml:"format"`
	Output  string   `toml:"output" yaml:"output"`
	Include []string `toml:"include" yaml:"include"`
	Exclude []string `toml:"exclude" yaml:"exclude"`
	Mode    string   `toml:"mode" yaml:"mode"`
	NoIndex bool     `toml:"no_index" yaml:"no_index"`
	Verbose bool     `toml:"verbose" yaml:"verbose"`

	MySQL MySQLConfig `toml:"mysql" yaml:"mysql"`
}

// MySQLConfig identifies the database read by live introspection. DSN wins
// over the individual fields.
type MySQLConfig struct {
	DSN      string `toml:"dsn" yaml:"dsn"`
	Host     string `toml:"host" yaml:"host"`
	Port     int    `toml:"port" yaml:"port"`
	User     string `toml:"user" yaml:"user"`
	Password string `toml:"password" yaml:"password"`
	Database string `toml:"database" yaml:"database"`
}

// UnsupportedFormatError is returned for config files that are neither
// TOML nor YAML.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported config file format: " + e.Path
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Format: string(output.FormatHTML),
		Mode:   string(parser.ModePattern),
	}
}

// Load reads the config file at path on top of the defaults. The format is
// chosen by extension; unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, ErrConfigNotFound)
		}
		return nil, errors.Annotate(err, "read config")
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Annotate(err, "parse config")
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return errors.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errors.Annotate(err, "parse config")
	}
	return nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return errors.NotValidf("format %q", c.Format)
	}
	if _, err := parser.ParseMode(c.Mode); err != nil {
		return errors.NotValidf("mode %q", c.Mode)
	}
	for _, name := range c.Include {
		if strings.TrimSpace(name) == "" {
			return errors.New("empty table name not allowed in include")
		}
	}
	for _, name := range c.Exclude {
		if strings.TrimSpace(name) == "" {
			return errors.New("empty table name not allowed in exclude")
		}
	}
	if p := c.MySQL.Port; p < 0 || p > 65535 {
		return errors.NotValidf("mysql port %d", p)
	}
	return nil
}

// ResolveDSN returns the DSN for introspection: the configured DSN, then
// the DSNEnv environment variable, then one built from the individual
// connection fields.
func (m MySQLConfig) ResolveDSN() (string, error) {
	if m.DSN != "" {
		return m.DSN, nil
	}
	if env := strings.TrimSpace(os.Getenv(DSNEnv)); env != "" {
		return env, nil
	}
	if m.Host == "" || m.Database == "" {
		return "", errors.Errorf("no MySQL connection configured; set --dsn, %s or mysql.host and mysql.database", DSNEnv)
	}

	port := m.Port
	if port == 0 {
		port = 3306
	}
	dsnCfg := mysql.NewConfig()
	dsnCfg.User = m.User
	dsnCfg.Passwd = m.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = net.JoinHostPort(m.Host, strconv.Itoa(port))
	dsnCfg.DBName = m.Database
	return dsnCfg.FormatDSN(), nil
}

// SplitList splits a comma separated flag value, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
