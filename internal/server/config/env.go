package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays Config fields from environment variables. Only variables
// that are set and non-empty override the current value.
//
// Recognized variables:
//
//	PORT                 port number, turned into a ":<port>" bind address
//	STORE_BACKEND        file, postgres or s3
//	STORE_FILE           JSON data file path
//	DATABASE_DSN         PostgreSQL DSN
//	SECRET_KEY           session token HMAC secret
//	TOKEN_VALIDITY_HOURS session token lifetime, integer hours
//	ADMIN_PASSWORD       bootstrap admin password
//	DEV_USERNAMES        comma-separated usernames promoted to DEV
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	if v := os.Getenv("PORT"); v != "" {
		config.EndpointAddr = ":" + v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		config.StoreBackend = v
	}
	if v := os.Getenv("STORE_FILE"); v != "" {
		config.StoreFilePath = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		config.AdminPassword = v
	}
	if v := os.Getenv("DEV_USERNAMES"); v != "" {
		var names []string
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		config.DevUsernames = names
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		config.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		config.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		config.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		config.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		config.S3BaseEndpoint = v
	}
}
