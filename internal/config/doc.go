// Package config manages application configuration for the Madoka API.
//
// Configuration comes from environment variables prefixed with MADOKA_,
// read through koanf. A .env file in the working directory is loaded first
// by godotenv. Anything not set keeps the value from Default().
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Environment Variables
//
//	MADOKA_SERVER_PORT              - HTTP port (default: 3000)
//	MADOKA_SERVER_ENV               - development, production or test
//	MADOKA_SERVER_READ_TIMEOUT      - e.g. 15s
//	MADOKA_SERVER_WRITE_TIMEOUT     - e.g. 15s
//	MADOKA_SERVER_IDLE_TIMEOUT      - e.g. 120s
//	MADOKA_SERVER_SHUTDOWN_TIMEOUT  - e.g. 30s
//	MADOKA_SERVER_ALLOWED_ORIGINS   - comma separated CORS origins (default: *)
//	MADOKA_DATABASE_HOST            - SurrealDB host (default: localhost)
//	MADOKA_DATABASE_PORT            - SurrealDB port (default: 8000)
//	MADOKA_DATABASE_USER            - root user
//	MADOKA_DATABASE_PASSWORD        - root password
//	MADOKA_DATABASE_NAMESPACE       - namespace (default: madoka)
//	MADOKA_DATABASE_DATABASE        - database (default: madokadb)
//	MADOKA_DATABASE_CONNECT_TIMEOUT - e.g. 10s
//	MADOKA_LOG_LEVEL                - trace, debug, info, warn or error
//
// Validation uses go-playground/validator struct tags. Validate reports
// every failure at once, naming the variable to fix.
package config
