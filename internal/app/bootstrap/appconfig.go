// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service configuration.
//
// Values come from environment variables, with a .env file loaded first
// when present (see LoadConfig). Add fields here as the service grows;
// the struct is passed to every lifecycle step, so anything needed
// during startup, request handling, or shutdown should live here.
type AppConfig struct {
	// Runtime environment: "dev" or "prod". Dev mode uses the
	// development logger and includes panic stacks in 500 responses.
	Env string

	// HTTP listen port.
	Port string

	// MongoDB connection configuration.
	MongoURI      string
	MongoDatabase string

	// Bearer token configuration.
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// Base64 image upload storage.
	UploadDir       string
	UploadURLPrefix string

	// Allowed CORS origins (the web client URLs).
	ClientURLs []string

	// Password hashing work factor.
	BcryptCost int
}

// Addr returns the listen address for the HTTP server.
func (c AppConfig) Addr() string {
	return ":" + c.Port
}
