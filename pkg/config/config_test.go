package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir()) // sin .env en el directorio de trabajo
	t.Setenv("HOME", "/home/cajero")
	for _, k := range []string{"APP_ENV", "DB_DRIVER", "RECEIPTS_DIR", "RECEIPT_SEQUENCE", "JWT_SECRET", "HTTP_PORT", "LOGIN_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "ventas-pos", cfg.App.Name)
	assert.Equal(t, filepath.Join("/home/cajero", "Documents", "recibos"), cfg.Receipt.Dir)
	assert.Equal(t, config.SequenceCounter, cfg.Receipt.Sequence)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5, cfg.HTTP.LoginBurst)
	assert.NotEmpty(t, cfg.JWT.Secret, "development usa un secreto local")
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/pos.db")
	t.Setenv("RECEIPTS_DIR", "/srv/recibos")
	t.Setenv("RECEIPT_SEQUENCE", "scan")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOGIN_RATE_PER_SECOND", "0.5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/pos.db", cfg.DB.SQLitePath)
	assert.Equal(t, "/srv/recibos", cfg.Receipt.Dir)
	assert.Equal(t, config.SequenceScan, cfg.Receipt.Sequence)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.InDelta(t, 0.5, cfg.HTTP.LoginRatePerSecond, 1e-9)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			DB:      config.DBConfig{Driver: config.DriverSQLite},
			JWT:     config.JWTConfig{Secret: "x", Expiration: 60},
			HTTP:    config.HTTPConfig{LoginRatePerSecond: 1, LoginBurst: 5},
			Receipt: config.ReceiptConfig{Dir: "/tmp/recibos", Sequence: config.SequenceCounter},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{"driver desconocido", func(c *config.Config) { c.DB.Driver = "mysql" }, "DB_DRIVER"},
		{"modo de consecutivo", func(c *config.Config) { c.Receipt.Sequence = "random" }, "RECEIPT_SEQUENCE"},
		{"sin secreto en producción", func(c *config.Config) { c.App.Env = "production"; c.JWT.Secret = "" }, "JWT_SECRET"},
		{"sin carpeta", func(c *config.Config) { c.Receipt.Dir = "" }, "RECEIPTS_DIR"},
		{"limitador en cero", func(c *config.Config) { c.HTTP.LoginBurst = 0 }, "LOGIN_BURST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDSN_EscapaLaClave(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/word", DBName: "ventas", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%2Fword@db:5432/ventas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
