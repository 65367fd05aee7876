package config

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, SourceFile, cfg.DataSource)
	assert.Equal(t, "data/perDayData.json", cfg.DayData)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 256, cfg.RenderCacheSize)
	assert.Equal(t, "survey_responses", cfg.MySQL.Table)
	assert.Empty(t, cfg.OTelEndpoint)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DASH_HTTP_ADDR", ":9090")
	t.Setenv("DASH_DATA_SOURCE", "mysql")
	t.Setenv("DASH_MYSQL_HOST", "db")
	t.Setenv("DASH_MYSQL_PORT", "3307")
	t.Setenv("DASH_SESSION_IDLE", "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, SourceMySQL, cfg.DataSource)
	assert.Equal(t, "db", cfg.MySQL.Host)
	assert.Equal(t, 3307, cfg.MySQL.Port)
	assert.Equal(t, 45*time.Second, cfg.SessionIdle)
	assert.Equal(t, "root@tcp(db:3307)/myworld?parseTime=true", cfg.MySQL.DSN())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"неизвестный источник", "DASH_DATA_SOURCE", "ftp"},
		{"нулевой кэш", "DASH_RENDER_CACHE_SIZE", "0"},
		{"порт вне диапазона", "DASH_MYSQL_PORT", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMatrixLayoutArea(t *testing.T) {
	l := DefaultMatrixLayout()
	assert.Equal(t, 500.0, l.Width())
	assert.Equal(t, 500.0, l.Height())
}

func TestValidateRequiresDayDataForFileSource(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.DayData = ""
	assert.Error(t, cfg.Validate())

	cfg.DataSource = SourceMySQL
	assert.NoError(t, cfg.Validate())
}

func TestDSNWithSpecialPassword(t *testing.T) {
	c := MySQLConfig{Host: "db", Port: 3306, User: "survey", Password: "p@ss/w?rd:1", DBName: "myworld"}

	parsed, err := mysql.ParseDSN(c.DSN())
	require.NoError(t, err)
	assert.Equal(t, "survey", parsed.User)
	assert.Equal(t, "p@ss/w?rd:1", parsed.Passwd)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "myworld", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}
