package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/taskboard-dev/taskboard/internal/flagx"
	"github.com/taskboard-dev/taskboard/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "10m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	TableName                   string         `json:"table_name"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	ResetCodeValidityDuration   timex.Duration `json:"reset_code_validity_duration"`
	UploadURLValidityDuration   timex.Duration `json:"upload_url_validity_duration"`
	PasswordHashScheme          string         `json:"password_hash_scheme"`
	AWSRegion                   string         `json:"aws_region"`
	AWSAccessKey                string         `json:"aws_access_key"`
	AWSSecretKey                string         `json:"aws_secret_key"`
	AWSBaseEndpoint             string         `json:"aws_base_endpoint"`
	S3Bucket                    string         `json:"s3_bucket"`
	PublicObjectBaseURL         string         `json:"public_object_base_url"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.TableName = c.TableName
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.ResetCodeValidityDuration = time.Duration(c.ResetCodeValidityDuration.Duration)
	config.UploadURLValidityDuration = time.Duration(c.UploadURLValidityDuration.Duration)
	config.PasswordHashScheme = c.PasswordHashScheme
	config.AWSRegion = c.AWSRegion
	config.AWSAccessKey = c.AWSAccessKey
	config.AWSSecretKey = c.AWSSecretKey
	config.AWSBaseEndpoint = c.AWSBaseEndpoint
	config.S3Bucket = c.S3Bucket
	config.PublicObjectBaseURL = c.PublicObjectBaseURL
}
