package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"quizzapp-service/internal/domain"
)

// S3Config holds configuration for S3 or MinIO avatar storage.
type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
	// PublicURL is prepended to object keys to build avatar URLs.
	PublicURL string `yaml:"public_url"`
	KeyPrefix string `yaml:"key_prefix"`
}

// objectPutter is the slice of the S3 client the store needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads avatars as objects.
type S3Store struct {
	client    objectPutter
	bucket    string
	keyPrefix string
	publicURL string
	maxBytes  int64
	now       func() time.Time
}

func NewS3Store(ctx context.Context, cfg S3Config, maxBytes int64) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket not configured")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3Store(client, cfg, maxBytes), nil
}

func newS3Store(client objectPutter, cfg S3Config, maxBytes int64) *S3Store {
	prefix := strings.Trim(cfg.KeyPrefix, "/")
	if prefix == "" {
		prefix = "images"
	}
	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: prefix,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// Save buffers the upload (bounded by maxBytes) so the object length is known up front.
func (s *S3Store) Save(ctx context.Context, up domain.Upload) (string, error) {
	body, err := io.ReadAll(io.LimitReader(up.Body, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(body)) > s.maxBytes {
		return "", domain.ErrFileTooLarge
	}

	key := s.keyPrefix + "/" + FileName(s.now(), up.Filename)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(up.ContentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return s.publicURL + "/" + key, nil
}
