package config

import (
	"flag"
	"os"
	"time"

	"github.com/taskboard-dev/taskboard/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-n string   DynamoDB table name
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-u string   AWS access key
//	-p string   AWS secret key
//	-b string   S3 bucket name
//	-g string   AWS region
//	-e string   AWS base endpoint override (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The duration
// flag is accepted as an integer in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-n", "-s", "-t", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.TableName, "n", config.TableName, "DynamoDB table name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.AWSAccessKey, "u", config.AWSAccessKey, "AWS access key")
	fs.StringVar(&config.AWSSecretKey, "p", config.AWSSecretKey, "AWS secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.AWSBaseEndpoint, "e", config.AWSBaseEndpoint, "AWS base endpoint override")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
