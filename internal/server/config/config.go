// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Scheme names accepted in PasswordHashScheme.
const (
	HashSchemeSHA256   = "sha256"
	HashSchemeArgon2id = "argon2id"
)

// Config holds runtime settings for the Taskboard server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - TableName: DynamoDB table holding all entities (single-table layout).
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     test defaults in prod.
//   - AccessTokenValidityDuration: session token lifetime.
//   - ResetCodeValidityDuration: password reset code lifetime.
//   - UploadURLValidityDuration: presigned upload URL lifetime.
//   - PasswordHashScheme: "sha256" (legacy-compatible, default) or "argon2id".
//   - AWSRegion / AWSAccessKey / AWSSecretKey: credentials for DynamoDB and S3.
//   - AWSBaseEndpoint: override for local stacks (DynamoDB Local, MinIO);
//     empty means the real AWS endpoints.
//   - S3Bucket: bucket holding user images.
//   - PublicObjectBaseURL: base for stable public read URLs; when empty the
//     standard virtual-hosted S3 URL is derived from bucket and region.
type Config struct {
	EndpointAddrHTTP            string
	TableName                   string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ResetCodeValidityDuration   time.Duration
	UploadURLValidityDuration   time.Duration
	PasswordHashScheme          string
	AWSRegion                   string
	AWSAccessKey                string
	AWSSecretKey                string
	AWSBaseEndpoint             string
	S3Bucket                    string
	PublicObjectBaseURL         string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.TableName = "AppData"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 1 * time.Hour
	c.ResetCodeValidityDuration = 10 * time.Minute
	c.UploadURLValidityDuration = 5 * time.Minute
	c.PasswordHashScheme = HashSchemeSHA256
	c.AWSRegion = "sa-east-1"
	c.AWSAccessKey = "admin"
	c.AWSSecretKey = "secretpassword"
	c.AWSBaseEndpoint = ""
	c.S3Bucket = "task-manager-user-images"
	c.PublicObjectBaseURL = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
