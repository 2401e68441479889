package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  maxUploadMB: 20
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: rc
  password: secret
  name: realitycheck
  sslMode: require
detector:
  provider: huggingface
  endpoint: https://api.example.test/model
  apiKey: hf_key
  timeoutSeconds: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, int64(20<<20), cfg.MaxUploadBytes())
	require.Equal(t, "huggingface", cfg.Detector.Provider)
	require.Equal(t, 10*time.Second, cfg.DetectorTimeout())
	require.Equal(t,
		"host=db.internal port=5432 user=rc password=secret dbname=realitycheck sslmode=require",
		cfg.PostgresDSN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  driver: mysql
  host: localhost
  port: 3306
  user: root
  password: pw
  name: rc
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(50<<20), cfg.MaxUploadBytes())
	require.Equal(t, 30*time.Second, cfg.DetectorTimeout())
	require.Equal(t,
		"root:pw@tcp(localhost:3306)/rc?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())
	// sslMode omitted falls back to disable in the DSN
	require.Contains(t, cfg.PostgresDSN(), "sslmode=disable")
}
