package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "tabledoc.toml", `
format = "markdown"
output = "docs"
include = ["users", "orders"]
mode = "ast"
no_index = true

[mysql]
host = "db.local"
database = "shop"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, "docs", cfg.Output)
	assert.Equal(t, []string{"users", "orders"}, cfg.Include)
	assert.Equal(t, "ast", cfg.Mode)
	assert.True(t, cfg.NoIndex)
	assert.Equal(t, "db.local", cfg.MySQL.Host)
	require.NoError(t, cfg.Validate())
}

func TestLoadTOMLRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "tabledoc.toml", "format = \"html\"\ncolour = \"blue\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config keys: colour")
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "tabledoc.yml", `
format: json
exclude:
  - logs
verbose: true
mysql:
  dsn: "user:pw@tcp(localhost:3306)/shop"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"logs"}, cfg.Exclude)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "pattern", cfg.Mode)
	assert.Equal(t, "user:pw@tcp(localhost:3306)/shop", cfg.MySQL.DSN)
}

func TestLoadYAMLRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "tabledoc.yaml", "format: html\ncolour: blue\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "tabledoc.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
		assert.Equal(t, ErrConfigNotFound, errors.Cause(err))
		assert.True(t, IsNotFound(err))
		assert.False(t, IsNotFound(errors.New("other")))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeConfig(t, "tabledoc.ini", "format=html"))
		var ufe *UnsupportedFormatError
		require.ErrorAs(t, err, &ufe)
		assert.Contains(t, ufe.Error(), "tabledoc.ini")
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "tabledoc.toml", "format = "))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"md alias", func(c *Config) { c.Format = "md" }, ""},
		{"bad format", func(c *Config) { c.Format = "pdf" }, `format "pdf" not valid`},
		{"bad mode", func(c *Config) { c.Mode = "regex" }, `mode "regex" not valid`},
		{"empty include", func(c *Config) { c.Include = []string{"users", " "} }, "empty table name not allowed in include"},
		{"empty exclude", func(c *Config) { c.Exclude = []string{""} }, "empty table name not allowed in exclude"},
		{"bad port", func(c *Config) { c.MySQL.Port = 70000 }, "mysql port 70000 not valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveDSN(t *testing.T) {
	t.Run("explicit dsn wins", func(t *testing.T) {
		t.Setenv(DSNEnv, "env:pw@tcp(env:3306)/envdb")
		dsn, err := MySQLConfig{DSN: "cfg:pw@tcp(cfg:3306)/cfgdb", Host: "ignored"}.ResolveDSN()
		require.NoError(t, err)
		assert.Equal(t, "cfg:pw@tcp(cfg:3306)/cfgdb", dsn)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(DSNEnv, "env:pw@tcp(env:3306)/envdb")
		dsn, err := MySQLConfig{Host: "ignored", Database: "x"}.ResolveDSN()
		require.NoError(t, err)
		assert.Equal(t, "env:pw@tcp(env:3306)/envdb", dsn)
	})

	t.Run("built from fields", func(t *testing.T) {
		t.Setenv(DSNEnv, "")
		dsn, err := MySQLConfig{Host: "db.local", User: "docs", Password: "secret", Database: "shop"}.ResolveDSN()
		require.NoError(t, err)
		assert.Contains(t, dsn, "docs:secret@tcp(db.local:3306)/shop")
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv(DSNEnv, "")
		_, err := MySQLConfig{}.ResolveDSN()
		require.Error(t, err)
		assert.Contains(t, err.Error(), DSNEnv)
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"users", "orders"}, SplitList("users, orders,,"))
	assert.Nil(t, SplitList(""))
}
