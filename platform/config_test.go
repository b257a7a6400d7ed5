package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "s3cret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "s3cret", cfg.Secret)
	require.Equal(t, 168*time.Hour, cfg.AccessTTL)
	require.Equal(t, "mysql", cfg.DB.Driver)
	require.Equal(t, "messenger", cfg.DB.DBName)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "ACCESS_SECRET=from-file\nPORT=9090\nDB_DRIVER=postgres\nSQL_PORT=5432\nACCESS_TTL=30m\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	for _, key := range []string{"ACCESS_SECRET", "PORT", "DB_DRIVER", "SQL_PORT", "ACCESS_TTL"} {
		old, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			} else {
				os.Unsetenv(key)
			}
		})
	}

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.Secret)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "postgres", cfg.DB.Driver)
	require.Equal(t, 30*time.Minute, cfg.AccessTTL)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "")
	os.Unsetenv("ACCESS_SECRET")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "3306", User: "u", Password: "p", DBName: "messenger", SQLitePath: "file.db"}

	c.Driver = "mysql"
	dsn, err := c.DSN()
	require.NoError(t, err)
	require.Equal(t, "u:p@tcp(db:3306)/messenger?charset=utf8mb4&parseTime=True&loc=Local", dsn)

	c.Driver = "postgres"
	dsn, err = c.DSN()
	require.NoError(t, err)
	require.Equal(t, "host=db port=3306 user=u password=p dbname=messenger sslmode=disable TimeZone=UTC", dsn)

	c.Driver = "sqlite"
	dsn, err = c.DSN()
	require.NoError(t, err)
	require.Equal(t, "file.db", dsn)

	c.Driver = "oracle"
	_, err = c.DSN()
	require.Error(t, err)
}
