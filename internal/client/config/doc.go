// Package config loads runtime configuration for the shopkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c/-config or $CONFIG.
//  3. Environment: SHOP_SERVER_URL and SHOP_TOKEN.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string       base URL of the shopkeeper server
//	-token string   bearer token for product commands
//	-t int          request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "request_timeout": "5s"
//	}
//
// The token is deliberately not read from JSON.
package config
