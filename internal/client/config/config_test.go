package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000", c.ServerURL)
	assert.Empty(t, c.Token)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{"server_url": "http://json:1", "request_timeout": "3s"})
	t.Setenv("CONFIG", "")
	t.Setenv("SHOP_SERVER_URL", "http://env:2")
	t.Setenv("SHOP_TOKEN", "env-token")

	os.Args = []string{"client", "-c", path, "-t", "7", "products"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://env:2", cfg.ServerURL)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)

	os.Args = []string{"client", "-c", path, "-a", "http://flag:3", "-token", "flag-token", "products"}
	cfg = LoadConfig()
	assert.Equal(t, "http://flag:3", cfg.ServerURL)
	assert.Equal(t, "flag-token", cfg.Token)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_EmptyIgnored(t *testing.T) {
	t.Setenv("SHOP_SERVER_URL", "")
	t.Setenv("SHOP_TOKEN", "")

	cfg := &Config{ServerURL: "keep", Token: "keep"}
	parseEnv(cfg)

	assert.Equal(t, "keep", cfg.ServerURL)
	assert.Equal(t, "keep", cfg.Token)
}
