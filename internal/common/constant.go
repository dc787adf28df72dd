package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// RequestIDHeaderName correlates a request with its log lines.
	RequestIDHeaderName = "X-Request-Id"

	// MinPasswordLength is counted in characters, not bytes.
	MinPasswordLength = 6

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)
