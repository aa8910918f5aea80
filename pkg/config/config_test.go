package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "Fazenda Santa Luzia", cfg.Farm.Name)
	assert.Equal(t, "R$", cfg.Farm.Currency)
	assert.Equal(t, 60, cfg.JWT.Expiration)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Postgres")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_PASSWORD", "p@ss:word")
	v.Set("DB_HOST", "db")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%3Aword@db:5432")
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	c := config.DBConfig{DatabaseURL: "postgres://u:p@h:1/x", Host: "otro"}
	assert.Equal(t, "postgres://u:p@h:1/x", c.ConnectionString())
}
