package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotEnvFile is loaded before reading the environment. Variables that are
// already set in the process environment are not overridden by it.
var dotEnvFile = ".env"

// parseEnv overlays config with environment variables:
//
//	ADDRESS       full bind address, e.g. "0.0.0.0:3000"
//	PORT          port only; used when ADDRESS is unset
//	DATABASE_DSN  PostgreSQL DSN
//	JWT_SECRET    token signing key
//	TOKEN_TTL     token lifetime as a Go duration ("24h")
//	BCRYPT_COST   bcrypt work factor
//	LOG_LEVEL     debug, info, warn, error
//
// Malformed numeric or duration values panic, like a malformed JSON file.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv("ADDRESS"); ok && v != "" {
		config.EndpointAddrHTTP = v
	} else if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}

	if v, ok := os.LookupEnv("DATABASE_DSN"); ok && v != "" {
		config.DatabaseDSN = v
	}

	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		config.SecretKey = v
	}

	if v, ok := os.LookupEnv("TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}

	if v, ok := os.LookupEnv("BCRYPT_COST"); ok && v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BcryptCost = cost
	}

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		config.LogLevel = v
	}
}
