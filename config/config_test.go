package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoicekit.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"listen": ":9000",
		"media_dir": "/srv/media",
		"address_templates": {"pdf": "{{.City}}"},
		"stores": [
			{"id": "de", "locale": "de-DE", "currency": "EUR", "timezone": "Europe/Berlin",
			 "address": ["Shop GmbH", "Berlin"], "put_order_id_shipment": false}
		]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "/srv/media", cfg.MediaDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "{{.City}}", cfg.AddressTemplates["pdf"])

	de, ok := cfg.Store("de")
	require.True(t, ok)
	assert.Equal(t, "EUR", de.Currency)
	assert.Equal(t, []string{"Shop GmbH", "Berlin"}, de.Address)
	assert.Nil(t, de.PutOrderIDInvoice)
	require.NotNil(t, de.PutOrderIDShipment)
	assert.False(t, *de.PutOrderIDShipment)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"listen": ":9000", "log_level": "debug"}`)
	t.Setenv(EnvListen, "127.0.0.1:7000")
	t.Setenv(EnvMediaDir, "/tmp/media")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Listen)
	assert.Equal(t, "/tmp/media", cfg.MediaDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	require.Len(t, cfg.Stores, 1)
	s := cfg.Stores[0]
	assert.Equal(t, DefaultStoreID, s.ID)
	assert.Equal(t, "en-US", s.Locale)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, "UTC", s.Timezone)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, `{"stores": [`))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(writeConfig(t, `{"log_level": "loud", "stores": [{"id": "a"}, {"id": "a"}, {"id": " "}]}`))
	require.Error(t, err)
	assert.ErrorContains(t, err, `duplicate id "a"`)
	assert.ErrorContains(t, err, "stores[2]: id is required")
	assert.ErrorContains(t, err, `unknown log level "loud"`)
}
