package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/imgstore/internal/infrastructure/config"
	"github.com/marcos-nsantos/imgstore/internal/infrastructure/storage"
)

func TestNewS3Mirror(t *testing.T) {
	_, err := storage.NewS3Mirror(config.S3Config{Region: "us-east-1"})

	assert.Error(t, err)
}

func TestS3Mirror_GetURL(t *testing.T) {
	base := config.S3Config{
		Region:          "us-east-1",
		Bucket:          "images",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}

	t.Run("bucket host by default", func(t *testing.T) {
		m, err := storage.NewS3Mirror(base)
		require.NoError(t, err)

		assert.Equal(t, "https://images.s3.amazonaws.com/5/0e/abc50e.png", m.GetURL("5/0e/abc50e.png"))
	})

	t.Run("public url and prefix", func(t *testing.T) {
		cfg := base
		cfg.PublicURL = "https://cdn.example.com/"
		cfg.Prefix = "/store/"
		m, err := storage.NewS3Mirror(cfg)
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/store/5/0e/abc50e.sm.png", m.GetURL("/5/0e/abc50e.sm.png"))
	})
}

func TestS3Mirror_GetSignedURL(t *testing.T) {
	m, err := storage.NewS3Mirror(config.S3Config{
		Endpoint:        "http://localhost:9000",
		UsePathStyle:    true,
		Region:          "us-east-1",
		Bucket:          "images",
		Prefix:          "store",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	signed, err := m.GetSignedURL(context.Background(), "5/0e/abc50e.png", 15*time.Minute)

	require.NoError(t, err)
	assert.Contains(t, signed, "http://localhost:9000/images/store/5/0e/abc50e.png")
	assert.Contains(t, signed, "X-Amz-Expires=900")
	assert.Contains(t, signed, "X-Amz-Signature")
}
