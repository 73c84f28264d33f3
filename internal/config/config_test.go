package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `connection:
  host: myhost
  port: 5433
  username: etl
  database: food
  sslmode: require
  auth_method: aws
  aws_region: eu-west-1
  retries: 3

inputs:
  users: users.csv
  recipes: /data/recipes.csv

timeout: 15m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "myhost", cfg.Connection.Host)
	assert.Equal(t, 5433, cfg.Connection.Port)
	assert.Equal(t, "etl", cfg.Connection.Username)
	assert.Equal(t, "food", cfg.Connection.Database)
	assert.Equal(t, "require", cfg.Connection.SSLMode)
	assert.Equal(t, "aws", cfg.Connection.AuthMethod)
	assert.Equal(t, "eu-west-1", cfg.Connection.AWSRegion)
	assert.Equal(t, 3, cfg.Connection.Retries)
	assert.Equal(t, "users.csv", cfg.Inputs.Users)
	assert.Equal(t, "/data/recipes.csv", cfg.Inputs.Recipes)
	assert.Equal(t, "", cfg.Inputs.Interactions)

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("timeout: 30s\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Connection.Host)
	assert.Equal(t, 0, cfg.Connection.Port)
	assert.Equal(t, 0, cfg.Connection.Retries)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestTimeoutDuration(t *testing.T) {
	var nilCfg *ProjectConfig
	d, err := nilCfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = (&ProjectConfig{Timeout: "soon"}).TimeoutDuration()
	assert.Error(t, err)
}
