package config

import "os"

const (
	envServerURL = "SHOP_SERVER_URL"
	envToken     = "SHOP_TOKEN"
)

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(envServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv(envToken); ok && v != "" {
		cfg.Token = v
	}
}
