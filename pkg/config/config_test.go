package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "قطعة", cfg.Grid.DefaultUnit)
	assert.Equal(t, "ر.س", cfg.Grid.Currency)
	assert.Equal(t, 10, cfg.Grid.MinRows)
	assert.Equal(t, 5, cfg.Grid.LookupLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.Grid.SearchDebounce)
	assert.Equal(t, CatalogMemory, cfg.Grid.CatalogSource)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("GRID_MIN_ROWS", "3")
	v.Set("GRID_LOOKUP_LIMIT", 8)
	v.Set("CATALOG_SOURCE", "Postgres")
	v.Set("DB_PORT", "not-a-number")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Grid.MinRows)
	assert.Equal(t, 8, cfg.Grid.LookupLimit)
	assert.Equal(t, CatalogPostgres, cfg.Grid.CatalogSource)
	assert.Equal(t, 5432, cfg.DB.Port, "un entero inválido usa el valor por defecto")
}

func TestFromViper_CatalogoInvalido(t *testing.T) {
	v := viper.New()
	v.Set("CATALOG_SOURCE", "redis")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "compras", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/compras?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
