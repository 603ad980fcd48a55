package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/marcos-nsantos/imgstore/internal/infrastructure/config"
)

// S3Mirror copies store artifacts to a bucket. Keys are store-relative paths
// (d1/d2/file), optionally nested under a prefix.
type S3Mirror struct {
	client  *s3.Client
	signer  *s3.PresignClient
	bucket  string
	prefix  string
	baseURL string
}

func NewS3Mirror(cfg config.S3Config) (*S3Mirror, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 mirror: bucket is required")
	}

	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		}
	})

	baseURL := strings.TrimRight(cfg.PublicURL, "/")
	if baseURL == "" {
		baseURL = "https://" + cfg.Bucket + ".s3.amazonaws.com"
	}

	return &S3Mirror{
		client:  client,
		signer:  s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		baseURL: baseURL,
	}, nil
}

func (m *S3Mirror) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(m.key(key)),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := m.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("putting s3://%s/%s: %w", m.bucket, m.key(key), err)
	}
	return nil
}

func (m *S3Mirror) GetURL(key string) string {
	u, err := url.JoinPath(m.baseURL, strings.Split(m.key(key), "/")...)
	if err != nil {
		return m.baseURL + "/" + m.key(key)
	}
	return u
}

func (m *S3Mirror) GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := m.signer.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(m.key(key)),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presigning s3://%s/%s: %w", m.bucket, m.key(key), err)
	}
	return req.URL, nil
}

func (m *S3Mirror) Delete(ctx context.Context, key string) error {
	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(m.key(key)),
	})
	if err != nil {
		return fmt.Errorf("deleting s3://%s/%s: %w", m.bucket, m.key(key), err)
	}
	return nil
}

func (m *S3Mirror) key(key string) string {
	key = strings.TrimLeft(key, "/")
	if m.prefix == "" {
		return key
	}
	return m.prefix + "/" + key
}
