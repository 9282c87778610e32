// Package objectstore issues presigned upload URLs and stable public read
// URLs for the user image bucket.
package objectstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/taskboard-dev/taskboard/internal/server/config"
)

// Indirections over the AWS SDK so tests can stub the presigning path.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// Presigner builds time-windowed write URLs against the configured bucket.
type Presigner struct {
	config *sc.Config
}

func NewPresigner(config *sc.Config) *Presigner {
	return &Presigner{config: config}
}

// UserImageKey builds the object key for a user image upload. The timestamp
// keeps successive uploads from clobbering each other.
func (p *Presigner) UserImageKey(userID string, now time.Time) string {
	return fmt.Sprintf("users/%s_%d.png", userID, now.Unix())
}

func (p *Presigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(p.config.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.AWSAccessKey,
			p.config.AWSSecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if p.config.AWSBaseEndpoint != "" {
			o.BaseEndpoint = aws.String(p.config.AWSBaseEndpoint)
		}
	})

	return newS3PresignClient(client), nil
}

// UploadURL returns a presigned PUT URL for key, valid for the configured
// upload window.
func (p *Presigner) UploadURL(ctx context.Context, key string) (string, error) {
	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := p.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.config.UploadURLValidityDuration))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// PublicURL returns the stable read URL for key. Note the URL is handed out
// before the client has actually uploaded anything to it.
func (p *Presigner) PublicURL(key string) string {
	if base := p.config.PublicObjectBaseURL; base != "" {
		return strings.TrimSuffix(base, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.config.S3Bucket, p.config.AWSRegion, key)
}
